package math

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is zero.
var ErrSingularMatrix = errors.New("matrix is singular")

// Mat4 is a 4x4 matrix in row-major order, addressed as m[row][col].
// It transforms column vectors by left-multiplication: v' = M·v.
//
//	[m00 m01 m02 m03]
//	[m10 m11 m12 m13]
//	[m20 m21 m22 m23]
//	[m30 m31 m32 m33]
type Mat4 [4][4]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Scaling returns a matrix scaling each axis independently.
func Scaling(s Vec3) Mat4 {
	return Mat4{
		{s.X, 0, 0, 0},
		{0, s.Y, 0, 0},
		{0, 0, s.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotationX returns a counterclockwise rotation about the X axis.
// angle is in radians.
func RotationX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)

	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a counterclockwise rotation about the Y axis.
// angle is in radians.
func RotationY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)

	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a counterclockwise rotation about the Z axis.
// angle is in radians.
func RotationZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)

	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a translation matrix. The offset sits in the last column.
func Translation(t Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, t.X},
		{0, 1, 0, t.Y},
		{0, 0, 1, t.Z},
		{0, 0, 0, 1},
	}
}

// Row returns row i.
func (m Mat4) Row(i int) Vec4 {
	return Vec4(m[i])
}

// Col returns column j.
func (m Mat4) Col(j int) Vec4 {
	return Vec4{m[0][j], m[1][j], m[2][j], m[3][j]}
}

// Transpose returns m with rows and columns swapped.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Scale multiplies every entry by s. See Scaling for a scale transform.
func (m Mat4) Scale(s float64) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[i][j] * s
		}
	}
	return r
}

// Mul returns the product m·n. Entry (i, j) is row i of m dotted with column j of n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var product Mat4
	nT := n.Transpose()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			product[i][j] = m.Row(i).Dot(nT.Row(j))
		}
	}
	return product
}

// MulPiped multiplies the matrices in application order: MulPiped(A, B, C)
// returns C·B·A, so A is the first transform applied to a vector.
// With no arguments it returns the identity.
func MulPiped(matrices ...Mat4) Mat4 {
	product := Identity()
	for _, m := range matrices {
		product = m.Mul(product)
	}
	return product
}

// MulVector returns m·v. If perspectiveDivide is set and the resulting w is
// not 1, all four components are divided by w. A w of 0 yields ±Inf/NaN
// components (a point at infinity); preventing that is up to the caller.
func (m Mat4) MulVector(v Vec4, perspectiveDivide bool) Vec4 {
	var product Vec4
	for i := 0; i < 4; i++ {
		product[i] = m.Row(i).Dot(v)
	}

	w := product[3]
	if !perspectiveDivide || w == 1 {
		return product
	}
	return product.Scale(1 / w)
}

// TransformPoint transforms a 3D point (w=1) with perspective divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVector(p.Point(), true).XYZ()
}

// TransformDirection transforms a direction (w=0), ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return m.MulVector(d.Direction(), false).XYZ()
}

// subDeterminants returns the twelve 2x2 sub-determinants of the top two and
// bottom two rows that both Determinant and Inverse expand over.
func (m Mat4) subDeterminants() [12]float64 {
	a00, a01, a02, a03 := m[0][0], m[0][1], m[0][2], m[0][3]
	a10, a11, a12, a13 := m[1][0], m[1][1], m[1][2], m[1][3]
	a20, a21, a22, a23 := m[2][0], m[2][1], m[2][2], m[2][3]
	a30, a31, a32, a33 := m[3][0], m[3][1], m[3][2], m[3][3]

	return [12]float64{
		a00*a11 - a01*a10,
		a00*a12 - a02*a10,
		a00*a13 - a03*a10,
		a01*a12 - a02*a11,
		a01*a13 - a03*a11,
		a02*a13 - a03*a12,
		a20*a31 - a21*a30,
		a20*a32 - a22*a30,
		a20*a33 - a23*a30,
		a21*a32 - a22*a31,
		a21*a33 - a23*a31,
		a22*a33 - a23*a32,
	}
}

func determinantOf(b [12]float64) float64 {
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Determinant returns the determinant of m.
func (m Mat4) Determinant() float64 {
	return determinantOf(m.subDeterminants())
}

// Inverse returns the inverse of m, computed as adjugate / determinant.
// It returns ErrSingularMatrix if the determinant is zero.
func (m Mat4) Inverse() (Mat4, error) {
	b := m.subDeterminants()
	det := determinantOf(b)
	if det == 0 {
		return Mat4{}, fmt.Errorf("%w: determinant %g", ErrSingularMatrix, det)
	}
	inv := 1 / det

	a00, a01, a02, a03 := m[0][0], m[0][1], m[0][2], m[0][3]
	a10, a11, a12, a13 := m[1][0], m[1][1], m[1][2], m[1][3]
	a20, a21, a22, a23 := m[2][0], m[2][1], m[2][2], m[2][3]
	a30, a31, a32, a33 := m[3][0], m[3][1], m[3][2], m[3][3]

	return Mat4{
		{
			(a11*b[11] - a12*b[10] + a13*b[9]) * inv,
			(a02*b[10] - a01*b[11] - a03*b[9]) * inv,
			(a31*b[5] - a32*b[4] + a33*b[3]) * inv,
			(a22*b[4] - a21*b[5] - a23*b[3]) * inv,
		},
		{
			(a12*b[8] - a10*b[11] - a13*b[7]) * inv,
			(a00*b[11] - a02*b[8] + a03*b[7]) * inv,
			(a32*b[2] - a30*b[5] - a33*b[1]) * inv,
			(a20*b[5] - a22*b[2] + a23*b[1]) * inv,
		},
		{
			(a10*b[10] - a11*b[8] + a13*b[6]) * inv,
			(a01*b[8] - a00*b[10] - a03*b[6]) * inv,
			(a30*b[4] - a31*b[2] + a33*b[0]) * inv,
			(a21*b[2] - a20*b[4] - a23*b[0]) * inv,
		},
		{
			(a11*b[7] - a10*b[9] - a12*b[6]) * inv,
			(a00*b[9] - a01*b[7] + a02*b[6]) * inv,
			(a31*b[1] - a30*b[3] - a32*b[0]) * inv,
			(a20*b[3] - a21*b[1] + a22*b[0]) * inv,
		},
	}, nil
}

// ApproxEqual reports whether every entry of m is within tol of the one in n.
func (m Mat4) ApproxEqual(n Mat4, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-n[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// Flat returns the entries in row-major order.
func (m Mat4) Flat() [16]float64 {
	var f [16]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			f[i*4+j] = m[i][j]
		}
	}
	return f
}

// Float32s returns the entries in row-major order as float32, ready for a
// uniformMatrix4fv upload with transpose set.
func (m Mat4) Float32s() [16]float32 {
	var f [16]float32
	for i, v := range m.Flat() {
		f[i] = float32(v)
	}
	return f
}

// String formats m one row per line.
func (m Mat4) String() string {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i := 0; i < 4; i++ {
		sb.WriteString("  [")
		for j := 0; j < 4; j++ {
			if j > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(strconv.FormatFloat(m[i][j], 'g', -1, 64))
		}
		sb.WriteString("]")
		if i < 3 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]")
	return sb.String()
}
