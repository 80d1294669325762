package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere_StaysAboveSurface(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 200; i++ {
			dir := SampleCosineHemisphere(normal, sampler.Get2D())
			if dir.Dot(normal) < -1e-12 {
				t.Fatalf("Sample %v below surface with normal %v", dir, normal)
			}
			if math.Abs(dir.Length()-1) > 1e-9 {
				t.Fatalf("Sample %v is not unit length", dir)
			}
		}
	}
}

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0.3, -0.4, 0.5).Normalize(),
	}
	for _, n := range normals {
		s, b := OrthonormalBasis(n)
		if math.Abs(s.Dot(n)) > 1e-12 || math.Abs(b.Dot(n)) > 1e-12 || math.Abs(s.Dot(b)) > 1e-12 {
			t.Errorf("Basis for %v is not orthogonal: s=%v b=%v", n, s, b)
		}
		if math.Abs(s.Length()-1) > 1e-12 || math.Abs(b.Length()-1) > 1e-12 {
			t.Errorf("Basis for %v is not unit length: s=%v b=%v", n, s, b)
		}
	}
}

func TestSampleUniformTriangle_InsideTriangle(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		b0, b1 := SampleUniformTriangle(sampler.Get2D())
		if b0 < 0 || b1 < 0 || b0+b1 > 1+1e-12 {
			t.Fatalf("Barycentrics (%f, %f) outside triangle", b0, b1)
		}
	}
}

func TestSampleOnUnitSphere_UnitLength(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
	for i := 0; i < 200; i++ {
		p := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Fatalf("Point %v not on unit sphere", p)
		}
	}
}
