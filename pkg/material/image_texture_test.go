package material

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// gradientTexture is a 4x4 texture whose pixel (x, y) has brightness (y*4+x)/15
func gradientTexture() *ImageTexture {
	pixels := make([]core.Vec3, 16)
	for i := range pixels {
		v := float64(i) / 15
		pixels[i] = core.NewVec3(v, v, v)
	}
	return NewImageTexture(4, 4, pixels)
}

func TestImageTextureEvaluate(t *testing.T) {
	tex := gradientTexture()
	tests := []struct {
		name string
		uv   core.Vec2
		want float64
	}{
		// V is flipped: v near 1 reads the first image row
		{"top left", core.NewVec2(0.125, 0.875), 0},
		{"top right", core.NewVec2(0.875, 0.875), 3.0 / 15},
		{"bottom left", core.NewVec2(0.125, 0.125), 12.0 / 15},
		{"bottom right", core.NewVec2(0.875, 0.125), 1},
		{"second column third row", core.NewVec2(0.3, 0.3), 9.0 / 15},
		{"u wraps", core.NewVec2(1.125, 0.875), 0},
		{"negative wraps", core.NewVec2(-0.125, -0.875), 1},
		{"large values wrap", core.NewVec2(5.875, 7.125), 1},
		{"u exactly one wraps to zero", core.NewVec2(1, 0.875), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := core.NewVec3(tt.want, tt.want, tt.want)
			if got := tex.Evaluate(tt.uv, core.Vec3{}); !got.Equals(want) {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.uv, got, want)
			}
		})
	}
}

func TestConstantTexture(t *testing.T) {
	color := core.NewVec3(0.7, 0.3, 0.1)
	constant := NewConstantTexture(color)

	testCases := []struct {
		uv    core.Vec2
		point core.Vec3
	}{
		{core.NewVec2(0, 0), core.NewVec3(0, 0, 0)},
		{core.NewVec2(1, 1), core.NewVec3(5, 3, -2)},
		{core.NewVec2(0.5, 0.5), core.NewVec3(-1, -1, -1)},
	}

	for _, tc := range testCases {
		result := constant.Evaluate(tc.uv, tc.point)
		if !result.Equals(color) {
			t.Errorf("ConstantTexture at UV%v, Point%v: expected %v, got %v",
				tc.uv, tc.point, color, result)
		}
	}
}

// TestImageTextureFromImage tests conversion of a decoded image
func TestImageTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})

	texture := NewImageTextureFromImage(img)
	if texture.Width != 2 || texture.Height != 1 {
		t.Fatalf("Expected 2x1 texture, got %dx%d", texture.Width, texture.Height)
	}
	if result := texture.Evaluate(core.NewVec2(0.25, 0.5), core.Vec3{}); !result.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected red on the left, got %v", result)
	}
	if result := texture.Evaluate(core.NewVec2(0.75, 0.5), core.Vec3{}); !result.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected blue on the right, got %v", result)
	}
}

func TestImageTextureEmpty(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if result := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); !result.IsZero() {
		t.Errorf("Expected black from empty texture, got %v", result)
	}
}

func TestCheckerTexture(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	checker := NewCheckerTexture(white, black, 2)

	tests := []struct {
		uv       core.Vec2
		expected core.Vec3
	}{
		{core.NewVec2(0.1, 0.1), white},
		{core.NewVec2(0.6, 0.1), black},
		{core.NewVec2(0.6, 0.6), white},
		{core.NewVec2(0.1, 0.6), black},
	}
	for _, tt := range tests {
		if result := checker.Evaluate(tt.uv, core.Vec3{}); !result.Equals(tt.expected) {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, result)
		}
	}
}

func TestTextureSet(t *testing.T) {
	var set TextureSet
	if _, ok := set.Texture(SlotAlbedo); ok {
		t.Fatal("Empty set should report missing texture")
	}

	albedo := NewConstantTexture(core.NewVec3(0.5, 0.5, 0.5))
	set.SetTexture(SlotAlbedo, albedo)

	tex, ok := set.Texture(SlotAlbedo)
	if !ok || tex != albedo {
		t.Errorf("Expected albedo texture, got %v (ok=%t)", tex, ok)
	}
	if _, ok := set.Texture(SlotRoughness); ok {
		t.Error("Roughness slot should be empty")
	}

	set.SetTexture(SlotAlbedo, nil)
	if set.Len() != 0 {
		t.Errorf("Expected empty set after clearing, got %d entries", set.Len())
	}

	var nilSet *TextureSet
	if _, ok := nilSet.Texture(SlotNormal); ok {
		t.Error("Nil set should report missing texture")
	}
}
