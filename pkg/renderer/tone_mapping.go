package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrUnknownToneMapper is returned for a tone mapper name that is not recognised
var ErrUnknownToneMapper = errors.New("unknown tone mapper")

// ToneMapper maps linear radiance to display values before clamping
type ToneMapper interface {
	Map(c core.Vec3) core.Vec3
}

// IdentityToneMapper leaves colors unchanged
type IdentityToneMapper struct{}

func (IdentityToneMapper) Map(c core.Vec3) core.Vec3 { return c }

// GammaToneMapper applies c^(1/Gamma)
type GammaToneMapper struct {
	Gamma float64
}

func (g GammaToneMapper) Map(c core.Vec3) core.Vec3 {
	if g.Gamma <= 0 {
		return c
	}
	return c.GammaCorrect(g.Gamma)
}

// ReinhardToneMapper compresses each channel with c/(1+c)
type ReinhardToneMapper struct{}

func (ReinhardToneMapper) Map(c core.Vec3) core.Vec3 {
	return core.Vec3{
		X: reinhard(c.X),
		Y: reinhard(c.Y),
		Z: reinhard(c.Z),
	}
}

func reinhard(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (1 + x)
}

// NewToneMapper returns a tone mapper by name: "none", "gamma" or "reinhard"
func NewToneMapper(name string) (ToneMapper, error) {
	switch name {
	case "", "none", "identity":
		return IdentityToneMapper{}, nil
	case "gamma":
		return GammaToneMapper{Gamma: 2.2}, nil
	case "reinhard":
		return ReinhardToneMapper{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownToneMapper, name)
	}
}
