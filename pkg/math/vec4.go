package math

// Vec4 is a homogeneous 4-component vector (x, y, z, w).
// w=1 denotes a point, w=0 a direction.
type Vec4 [4]float64

// Origin returns the homogeneous origin point (0, 0, 0, 1).
func Origin() Vec4 {
	return Vec4{0, 0, 0, 1}
}

// Dot returns the dot product over all four components.
func (v Vec4) Dot(other Vec4) float64 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// Scale returns v * s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// W returns the homogeneous component.
func (v Vec4) W() float64 {
	return v[3]
}
