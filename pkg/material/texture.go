package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides spatially-varying values for material parameters
type Texture interface {
	// Evaluate returns the value at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// ConstantTexture returns the same value everywhere
type ConstantTexture struct {
	Value core.Vec3
}

// NewConstantTexture creates a new constant texture
func NewConstantTexture(value core.Vec3) *ConstantTexture {
	return &ConstantTexture{Value: value}
}

// Evaluate returns the constant regardless of UV or position
func (c *ConstantTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return c.Value
}

// TextureSlot names the material parameter a texture drives
type TextureSlot int

const (
	SlotNormal TextureSlot = iota
	SlotAlbedo
	SlotRoughness
	SlotSpecular
	SlotGloss
	SlotDiffuse
)

func (s TextureSlot) String() string {
	switch s {
	case SlotNormal:
		return "normal"
	case SlotAlbedo:
		return "albedo"
	case SlotRoughness:
		return "roughness"
	case SlotSpecular:
		return "specular"
	case SlotGloss:
		return "gloss"
	case SlotDiffuse:
		return "diffuse"
	default:
		return "unknown"
	}
}

// TextureSet maps slots to textures. The zero value is an empty set.
type TextureSet struct {
	textures map[TextureSlot]Texture
}

// Texture returns the texture bound to slot. The bool is false when the
// slot is empty and the caller should use its constant parameter.
func (ts *TextureSet) Texture(slot TextureSlot) (Texture, bool) {
	if ts == nil || ts.textures == nil {
		return nil, false
	}
	tex, ok := ts.textures[slot]
	return tex, ok
}

// SetTexture binds tex to slot, or clears the slot when tex is nil
func (ts *TextureSet) SetTexture(slot TextureSlot, tex Texture) {
	if tex == nil {
		delete(ts.textures, slot)
		return
	}
	if ts.textures == nil {
		ts.textures = make(map[TextureSlot]Texture)
	}
	ts.textures[slot] = tex
}

// Len returns the number of bound slots
func (ts *TextureSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.textures)
}
