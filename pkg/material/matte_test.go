package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMatte_DistributionF(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.4, 0.2)
	matte := NewMatte(albedo)
	expected := albedo.Multiply(1.0 / math.Pi)

	tests := []struct {
		name     string
		wi, wo   core.Vec3
		expected core.Vec3
	}{
		{"normal incidence", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), expected},
		{"oblique", core.NewVec3(0.6, 0, 0.8), core.NewVec3(0, -0.6, 0.8), expected},
		{"grazing outgoing", core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := matte.DistributionF(tt.wi, tt.wo)
			if f.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, f)
			}
		})
	}
}

func TestMatte_Textured(t *testing.T) {
	matte := NewTexturedMatte(NewCheckerTexture(core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), 2))
	wi := core.NewVec3(0, 0, 1)

	si := NewSurfaceInteraction()
	si.TexCoord = core.NewVec2(0.1, 0.1)
	f := Evaluate(matte, &si, wi, wi)
	if f.Subtract(core.NewVec3(1/math.Pi, 0, 0)).Length() > 1e-12 {
		t.Errorf("Expected red lookup, got %v", f)
	}

	si.TexCoord = core.NewVec2(0.6, 0.1)
	f = Evaluate(matte, &si, wi, wi)
	if f.Subtract(core.NewVec3(0, 0, 1/math.Pi)).Length() > 1e-12 {
		t.Errorf("Expected blue lookup, got %v", f)
	}
}

func TestMatte_SampleDistributionF(t *testing.T) {
	matte := NewMatte(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for _, wo := range []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0.6, 0, -0.8)} {
		for i := 0; i < 100; i++ {
			wi, f, pdf := matte.SampleDistributionF(wo, sampler.Get2D())
			if wi.Z*wo.Z < 0 {
				t.Fatalf("Sampled wi %v on opposite side of wo %v", wi, wo)
			}
			expectedPDF := math.Abs(wi.Z) / math.Pi
			if math.Abs(pdf-expectedPDF) > 1e-12 {
				t.Fatalf("PDF mismatch: got %f, expected %f", pdf, expectedPDF)
			}
			if math.Abs(f.X-0.5/math.Pi) > 1e-12 {
				t.Fatalf("Unexpected BSDF value %v", f)
			}
		}
	}
}
