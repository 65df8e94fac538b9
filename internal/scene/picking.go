package scene

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/gl-experiments/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// BoundsOf returns the world-space bounds of points transformed by m.
func BoundsOf(points []math.Vec3, m math.Mat4) AABB {
	box := AABB{
		Min: math.Vec3{X: gomath.Inf(1), Y: gomath.Inf(1), Z: gomath.Inf(1)},
		Max: math.Vec3{X: gomath.Inf(-1), Y: gomath.Inf(-1), Z: gomath.Inf(-1)},
	}
	for _, p := range points {
		w := m.TransformPoint(p)
		box.Min = math.Vec3{X: gomath.Min(box.Min.X, w.X), Y: gomath.Min(box.Min.Y, w.Y), Z: gomath.Min(box.Min.Z, w.Z)}
		box.Max = math.Vec3{X: gomath.Max(box.Max.X, w.X), Y: gomath.Max(box.Max.Y, w.Y), Z: gomath.Max(box.Max.Z, w.Z)}
	}
	return box
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top left;
// worldToClip is the camera's view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, worldToClip math.Mat4) (Ray, error) {
	clipToWorld, err := worldToClip.Inverse()
	if err != nil {
		return Ray{}, fmt.Errorf("unprojecting: %w", err)
	}

	// Screen to normalized device coordinates (-1 to 1), flipping Y
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	// Unproject points on the near and far planes
	near := clipToWorld.MulVector(math.Vec4{ndcX, ndcY, -1, 1}, true).XYZ()
	far := clipToWorld.MulVector(math.Vec4{ndcX, ndcY, 1, 1}, true).XYZ()

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}, nil
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := gomath.Inf(-1)
	tmax := gomath.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
