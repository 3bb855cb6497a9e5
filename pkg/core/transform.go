package core

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when a transform has no inverse
var ErrSingularMatrix = errors.New("matrix is not invertible")

// singularEpsilon is the smallest pivot accepted during inversion
const singularEpsilon = 1e-12

// Mat4 is a row-major 4x4 matrix acting on column vectors
type Mat4 struct {
	M [4][4]float64
}

// Identity returns the identity transform
func Identity() Mat4 {
	return Mat4{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Translate returns a translation by (x, y, z)
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m.M[0][3], m.M[1][3], m.M[2][3] = x, y, z
	return m
}

// Scale returns a non-uniform scale
func Scale(x, y, z float64) Mat4 {
	m := Identity()
	m.M[0][0], m.M[1][1], m.M[2][2] = x, y, z
	return m
}

// RotateX returns a rotation about the X axis by angle radians
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.M[1][1], m.M[1][2] = c, -s
	m.M[2][1], m.M[2][2] = s, c
	return m
}

// RotateY returns a rotation about the Y axis by angle radians
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.M[0][0], m.M[0][2] = c, s
	m.M[2][0], m.M[2][2] = -s, c
	return m
}

// RotateZ returns a rotation about the Z axis by angle radians
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.M[0][0], m.M[0][1] = c, -s
	m.M[1][0], m.M[1][1] = s, c
	return m
}

// LookAt returns the right-handed world-to-camera transform for an eye
// looking at target. The camera looks down its -Z axis with +Y up.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Subtract(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{M: [4][4]float64{
		{s.X, s.Y, s.Z, -s.Dot(eye)},
		{u.X, u.Y, u.Z, -u.Dot(eye)},
		{-f.X, -f.Y, -f.Z, f.Dot(eye)},
		{0, 0, 0, 1},
	}}
}

// Perspective returns an OpenGL-style projection mapping the view frustum
// to normalized device coordinates in [-1, 1]^3
func Perspective(aspect, vfov, near, far float64) Mat4 {
	f := 1.0 / math.Tan(vfov/2)
	var m Mat4
	m.M[0][0] = f / aspect
	m.M[1][1] = f
	m.M[2][2] = -(far + near) / (far - near)
	m.M[2][3] = -2 * far * near / (far - near)
	m.M[3][2] = -1
	return m
}

// Mul returns the product a*b (b is applied first)
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.M[row][k] * b.M[k][col]
			}
			r.M[row][col] = sum
		}
	}
	return r
}

// Inverse computes the inverse with Gauss-Jordan elimination and partial
// pivoting. Matrices with non-finite entries are reported as singular.
func (a Mat4) Inverse() (Mat4, error) {
	if !a.IsFinite() {
		return Mat4{}, ErrSingularMatrix
	}

	m := a.M
	inv := Identity().M

	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < singularEpsilon {
			return Mat4{}, ErrSingularMatrix
		}
		m[col], m[pivot] = m[pivot], m[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := 1.0 / m[col][col]
		for k := 0; k < 4; k++ {
			m[col][k] *= scale
			inv[col][k] *= scale
		}

		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			factor := m[row][col]
			if factor == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				m[row][k] -= factor * m[col][k]
				inv[row][k] -= factor * inv[col][k]
			}
		}
	}

	result := Mat4{M: inv}
	if !result.IsFinite() {
		return Mat4{}, ErrSingularMatrix
	}
	return result, nil
}

// IsFinite reports whether no element is NaN or infinite
func (a Mat4) IsFinite() bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.IsNaN(a.M[row][col]) || math.IsInf(a.M[row][col], 0) {
				return false
			}
		}
	}
	return true
}

// TransformPoint applies the affine part of the matrix including translation
func (a Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: a.M[0][0]*p.X + a.M[0][1]*p.Y + a.M[0][2]*p.Z + a.M[0][3],
		Y: a.M[1][0]*p.X + a.M[1][1]*p.Y + a.M[1][2]*p.Z + a.M[1][3],
		Z: a.M[2][0]*p.X + a.M[2][1]*p.Y + a.M[2][2]*p.Z + a.M[2][3],
	}
}

// TransformVector applies the linear part of the matrix, ignoring translation
func (a Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: a.M[0][0]*v.X + a.M[0][1]*v.Y + a.M[0][2]*v.Z,
		Y: a.M[1][0]*v.X + a.M[1][1]*v.Y + a.M[1][2]*v.Z,
		Z: a.M[2][0]*v.X + a.M[2][1]*v.Y + a.M[2][2]*v.Z,
	}
}

// ProjectPoint applies the full matrix and divides by the homogeneous w
func (a Mat4) ProjectPoint(p Vec3) Vec3 {
	x := a.M[0][0]*p.X + a.M[0][1]*p.Y + a.M[0][2]*p.Z + a.M[0][3]
	y := a.M[1][0]*p.X + a.M[1][1]*p.Y + a.M[1][2]*p.Z + a.M[1][3]
	z := a.M[2][0]*p.X + a.M[2][1]*p.Y + a.M[2][2]*p.Z + a.M[2][3]
	w := a.M[3][0]*p.X + a.M[3][1]*p.Y + a.M[3][2]*p.Z + a.M[3][3]
	if w == 0 || w == 1 {
		return Vec3{x, y, z}
	}
	return Vec3{x / w, y / w, z / w}
}

// ApproxEqual reports whether every element differs by at most tolerance
func (a Mat4) ApproxEqual(b Mat4, tolerance float64) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.Abs(a.M[row][col]-b.M[row][col]) > tolerance {
				return false
			}
		}
	}
	return true
}
