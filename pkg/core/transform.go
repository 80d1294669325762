package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularTransform is returned when a matrix has no inverse
var ErrSingularTransform = errors.New("transform matrix is singular")

// Matrix44 is a row-major 4x4 matrix applied to column vectors (p' = M·p)
type Matrix44 [4][4]float64

// IdentityMatrix returns the 4x4 identity
func IdentityMatrix() Matrix44 {
	return Matrix44{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m·other
func (m Matrix44) Mul(other Matrix44) Matrix44 {
	var r Matrix44
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[i][0]*other[0][j] + m[i][1]*other[1][j] + m[i][2]*other[2][j] + m[i][3]*other[3][j]
		}
	}
	return r
}

// Transform pairs a matrix with its inverse so both directions are available
// without inverting on the hot path
type Transform struct {
	m   Matrix44
	inv Matrix44
}

// IdentityTransform returns the transform that leaves everything unchanged
func IdentityTransform() Transform {
	return Transform{m: IdentityMatrix(), inv: IdentityMatrix()}
}

// NewTransform builds a transform from a matrix, computing its inverse
func NewTransform(m Matrix44) (Transform, error) {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		data = append(data, m[i][:]...)
	}

	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(4, 4, data)); err != nil {
		return Transform{}, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}

	t := Transform{m: m}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t.inv[i][j] = inv.At(i, j)
		}
	}
	return t, nil
}

// Translate returns a translation transform
func Translate(delta Vec3) Transform {
	m := IdentityMatrix()
	m[0][3], m[1][3], m[2][3] = delta.X, delta.Y, delta.Z
	inv := IdentityMatrix()
	inv[0][3], inv[1][3], inv[2][3] = -delta.X, -delta.Y, -delta.Z
	return Transform{m: m, inv: inv}
}

// Scale returns a non-uniform scale transform
func Scale(factors Vec3) (Transform, error) {
	m := IdentityMatrix()
	m[0][0], m[1][1], m[2][2] = factors.X, factors.Y, factors.Z
	return NewTransform(m)
}

// RotateAxis returns a rotation of angle radians about axis
func RotateAxis(axis Vec3, angle float64) Transform {
	a := axis.Normalize()
	sin, cos := math.Sin(angle), math.Cos(angle)
	m := IdentityMatrix()

	m[0][0] = a.X*a.X + (1-a.X*a.X)*cos
	m[0][1] = a.X*a.Y*(1-cos) - a.Z*sin
	m[0][2] = a.X*a.Z*(1-cos) + a.Y*sin
	m[1][0] = a.X*a.Y*(1-cos) + a.Z*sin
	m[1][1] = a.Y*a.Y + (1-a.Y*a.Y)*cos
	m[1][2] = a.Y*a.Z*(1-cos) - a.X*sin
	m[2][0] = a.X*a.Z*(1-cos) - a.Y*sin
	m[2][1] = a.Y*a.Z*(1-cos) + a.X*sin
	m[2][2] = a.Z*a.Z + (1-a.Z*a.Z)*cos

	// Rotations are orthonormal: the inverse is the transpose
	var inv Matrix44
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = m[j][i]
		}
	}
	return Transform{m: m, inv: inv}
}

// LookAt returns the camera-to-world transform for a camera at eye looking at target.
// Camera space is +X right, +Y up, +Z forward.
func LookAt(eye, target, up Vec3) (Transform, error) {
	forward := target.Subtract(eye).Normalize()
	right := forward.Cross(up.Normalize())
	if right.LengthSquared() == 0 {
		return Transform{}, fmt.Errorf("look-at: up vector %v is parallel to view direction", up)
	}
	right = right.Normalize()
	newUp := right.Cross(forward)

	m := Matrix44{
		{right.X, newUp.X, forward.X, eye.X},
		{right.Y, newUp.Y, forward.Y, eye.Y},
		{right.Z, newUp.Z, forward.Z, eye.Z},
		{0, 0, 0, 1},
	}
	return NewTransform(m)
}

// Matrix returns the forward matrix
func (t Transform) Matrix() Matrix44 {
	return t.m
}

// Inverse returns the transform going the other way
func (t Transform) Inverse() Transform {
	return Transform{m: t.inv, inv: t.m}
}

// Compose returns the transform applying other first, then t
func (t Transform) Compose(other Transform) Transform {
	return Transform{m: t.m.Mul(other.m), inv: other.inv.Mul(t.inv)}
}

// ApplyPoint transforms a point (w = 1)
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	m := &t.m
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 || w == 0 {
		return Vec3{x, y, z}
	}
	return Vec3{x / w, y / w, z / w}
}

// ApplyVector transforms a direction (w = 0), ignoring translation
func (t Transform) ApplyVector(v Vec3) Vec3 {
	m := &t.m
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// ApplyNormal transforms a surface normal with the inverse transpose.
// The result is not normalized.
func (t Transform) ApplyNormal(n Vec3) Vec3 {
	inv := &t.inv
	return Vec3{
		X: inv[0][0]*n.X + inv[1][0]*n.Y + inv[2][0]*n.Z,
		Y: inv[0][1]*n.X + inv[1][1]*n.Y + inv[2][1]*n.Z,
		Z: inv[0][2]*n.X + inv[1][2]*n.Y + inv[2][2]*n.Z,
	}
}

// ApplyRay transforms a ray. The direction is not renormalized so the ray
// parameter t keeps its meaning in both spaces.
func (t Transform) ApplyRay(r Ray) Ray {
	return Ray{Origin: t.ApplyPoint(r.Origin), Direction: t.ApplyVector(r.Direction)}
}

// ApplyAABB returns the world box bounding the eight transformed corners
func (t Transform) ApplyAABB(box AABB) AABB {
	corners := make([]Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		corner := Vec3{box.Min.X, box.Min.Y, box.Min.Z}
		if i&1 != 0 {
			corner.X = box.Max.X
		}
		if i&2 != 0 {
			corner.Y = box.Max.Y
		}
		if i&4 != 0 {
			corner.Z = box.Max.Z
		}
		corners = append(corners, t.ApplyPoint(corner))
	}
	return NewAABBFromPoints(corners...)
}
