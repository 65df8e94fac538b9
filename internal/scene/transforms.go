// Package scene builds the transform chains of the experiments: model
// placement (local to world), the virtual camera (world to camera) and the
// projection (camera to clip), plus the single directional light.
package scene

import (
	"fmt"

	"github.com/Faultbox/gl-experiments/pkg/math"
)

// Transforms holds the matrices a draw call needs.
type Transforms struct {
	LocalToWorld math.Mat4
	LocalToClip  math.Mat4
	// NormalMatrix is the inverse transpose of LocalToWorld, so normals stay
	// perpendicular to surfaces under non-uniform scaling.
	NormalMatrix math.Mat4
}

// NewTransforms composes localToWorld with worldToClip and derives the normal matrix.
func NewTransforms(localToWorld, worldToClip math.Mat4) (Transforms, error) {
	inv, err := localToWorld.Inverse()
	if err != nil {
		return Transforms{}, fmt.Errorf("normal matrix: %w", err)
	}

	return Transforms{
		LocalToWorld: localToWorld,
		LocalToClip:  math.MulPiped(localToWorld, worldToClip),
		NormalMatrix: inv.Transpose(),
	}, nil
}

// WorldNormal maps a local normal to a unit world-space normal.
func (t Transforms) WorldNormal(n math.Vec3) math.Vec3 {
	return t.NormalMatrix.TransformDirection(n).Normalize()
}
