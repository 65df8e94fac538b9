package math

import "math"

// WorldUp is the up direction LookAt orients cameras against.
var WorldUp = Vec3{0, 1, 0}

// LookAt returns the camera-to-world matrix of a camera at camera looking at
// target. The camera looks down its negative local Z axis; the columns of the
// result are the camera's X, Y and Z axes followed by its position.
//
// The view direction must not be parallel to WorldUp, otherwise the result
// contains NaN.
func LookAt(camera, target Vec3) Mat4 {
	zAxis := camera.Sub(target).Normalize()
	xAxis := WorldUp.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis).Normalize()

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, camera.X},
		{xAxis.Y, yAxis.Y, zAxis.Y, camera.Y},
		{xAxis.Z, yAxis.Z, zAxis.Z, camera.Z},
		{0, 0, 0, 1},
	}
}

// OrthographicFrustum returns an orthographic projection of the box bounded by
// the given planes onto the [-1, 1] cube. The box is first centred on the
// origin, then scaled by the inverse of its half extents.
func OrthographicFrustum(left, right, bottom, top, near, far float64) Mat4 {
	w := math.Abs(right - left)
	h := math.Abs(top - bottom)
	d := math.Abs(far - near)

	translation := Translation(Vec3{
		-(left + right) / 2,
		-(bottom + top) / 2,
		-(near + far) / 2,
	})
	scaling := Scaling(Vec3{2 / w, 2 / h, 2 / d})

	return MulPiped(translation, scaling)
}

// OrthographicProjection returns an orthographic projection whose box matches
// the near plane of a perspective camera with the same parameters.
// fov is the vertical field of view in radians, aspect is width/height.
func OrthographicProjection(fov, aspect, near, far float64) Mat4 {
	top := math.Tan(fov/2) * near
	right := top * aspect
	return OrthographicFrustum(-right, right, -top, top, near, far)
}

// PerspectiveProjection returns a right-handed perspective projection for a
// camera looking down -Z. Depth maps to [-1, 1]: the near plane lands on -1 and
// the far plane on +1 after the perspective divide.
// fov is the vertical field of view in radians, aspect is width/height; near
// and far are positive distances.
func PerspectiveProjection(fov, aspect, near, far float64) Mat4 {
	// tan(π/2 - θ) == 1/tan(θ) without the division
	s := math.Tan(math.Pi/2 - fov/2)
	r := 1 / (near - far)

	return Mat4{
		{s / aspect, 0, 0, 0},
		{0, s, 0, 0},
		{0, 0, (near + far) * r, 2 * near * far * r},
		{0, 0, -1, 0},
	}
}
