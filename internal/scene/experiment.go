package scene

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gl-experiments/internal/logger"
	"github.com/Faultbox/gl-experiments/pkg/geometry"
	"github.com/Faultbox/gl-experiments/pkg/math"
)

var (
	// ErrUnknownExperiment is returned by ParseKind for unrecognised names.
	ErrUnknownExperiment = errors.New("unknown experiment")
	// ErrInvalidProjection is returned for projections that cannot produce an image.
	ErrInvalidProjection = errors.New("invalid projection")
)

// Kind identifies one step of the experiment sequence.
type Kind string

// Experiment kinds, in the order they introduce concepts.
const (
	KindTransforms   Kind = "transforms"   // Static scale and rotations
	KindAnimation    Kind = "animation"    // Rotations driven by time
	KindOrthographic Kind = "orthographic" // Cubes seen through an orthographic camera
	KindPerspective  Kind = "perspective"  // Orbiting perspective camera
	KindLighting     Kind = "lighting"     // Perspective plus a directional light
)

// Kinds lists every experiment in order.
var Kinds = []Kind{KindTransforms, KindAnimation, KindOrthographic, KindPerspective, KindLighting}

// ParseKind returns the experiment named s.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExperiment, s)
}

// Projection holds the camera-to-clip parameters.
// FOV is in radians; Near and Far are positive distances.
type Projection struct {
	FOV  float64
	Near float64
	Far  float64
}

// Validate checks that FOV lies in (0, π), Near is positive and Far lies beyond Near.
func (p Projection) Validate() error {
	// Negated comparisons also reject NaN.
	if !(p.FOV > 0 && p.FOV < gomath.Pi) {
		return fmt.Errorf("%w: fov %g", ErrInvalidProjection, p.FOV)
	}
	if !(p.Near > 0) {
		return fmt.Errorf("%w: near %g", ErrInvalidProjection, p.Near)
	}
	if !(p.Far > p.Near) {
		return fmt.Errorf("%w: far %g not beyond near %g", ErrInvalidProjection, p.Far, p.Near)
	}
	return nil
}

// Object is a cube placed in the world.
type Object struct {
	Position math.Vec3
	Scale    float64
	// Spin scales the rotation speed; +1 is counterclockwise, -1 clockwise, 0 static.
	Spin float64
}

// LocalToWorld places the object at time t (milliseconds): scale, rotate
// about X, Y and Z, then translate.
func (o Object) LocalToWorld(t float64) math.Mat4 {
	return math.MulPiped(
		math.Scaling(math.Vec3{X: o.Scale, Y: o.Scale, Z: o.Scale}),
		math.RotationX(o.Spin*t/2000),
		math.RotationY(o.Spin*t/1000),
		math.RotationZ(o.Spin*t/2000),
		math.Translation(o.Position),
	)
}

// Experiment is a renderable scene.
type Experiment struct {
	Kind       Kind
	Mesh       geometry.Mesh
	Colors     []geometry.Color
	Objects    []Object
	Projection Projection
	// Orbit is the distance the camera circles around; 0 keeps the camera
	// fixed at the origin.
	Orbit float64
	// Light is nil when the scene is unlit.
	Light *DirectionalLight
	// Cull drops back faces. Scenes without a camera leave it off and rely on
	// the depth test alone.
	Cull bool
}

// Draw is one object ready for rasterization.
type Draw struct {
	Transforms
	Colors []geometry.Color
	Cull   bool
}

// New builds the experiment of the given kind with its default projection.
func New(kind Kind) (*Experiment, error) {
	cube := geometry.Cube()
	e := &Experiment{
		Kind:   kind,
		Mesh:   cube,
		Colors: geometry.VertexColors(cube),
	}

	switch kind {
	case KindTransforms:
		e.Objects = []Object{{Scale: 0.5}}
	case KindAnimation:
		e.Objects = []Object{{Scale: 0.5, Spin: 1}}
	case KindOrthographic:
		e.Objects = []Object{
			{Position: math.Vec3{X: -0.6, Y: 0.4, Z: 20}, Scale: 0.3, Spin: -1},
			{Position: math.Vec3{X: 0.6, Y: 0.4, Z: 20}, Scale: 0.3, Spin: -1},
			{Position: math.Vec3{X: 0, Y: -0.5, Z: 20}, Scale: 0.3, Spin: -1},
		}
		e.Projection = Projection{FOV: 0.6 * (0.5 * gomath.Pi), Near: 1, Far: 1000}
		e.Cull = true
	case KindPerspective, KindLighting:
		spin := 0.0
		if kind == KindLighting {
			spin = 1
		}
		e.Objects = []Object{
			{Position: math.Vec3{X: -0.6, Y: 0.4, Z: -5}, Scale: 0.3, Spin: spin},
			{Position: math.Vec3{X: 0.6, Y: 0.4, Z: -5}, Scale: 0.3, Spin: spin},
			{Position: math.Vec3{X: 0, Y: -0.5, Z: -5}, Scale: 0.3, Spin: spin},
			{Position: math.Vec3{X: 0, Y: 0, Z: -6}, Scale: 0.3, Spin: spin},
		}
		e.Projection = Projection{FOV: 0.3 * (0.5 * gomath.Pi), Near: 1, Far: 1000}
		e.Cull = true
		if kind == KindPerspective {
			// Halfway between the front row and the back cube.
			e.Orbit = 5.5
		} else {
			light := DefaultLight()
			e.Light = &light
			e.Colors = geometry.UniformColors(cube, geometry.Green)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExperiment, kind)
	}

	return e, nil
}

// UsesProjection reports whether the scene is seen through Projection.
func (e *Experiment) UsesProjection() bool {
	switch e.Kind {
	case KindOrthographic, KindPerspective, KindLighting:
		return true
	}
	return false
}

// SetProjection replaces the projection. The orthographic scene derives its
// half width from tan(FOV), so it also needs FOV below π/2.
func (e *Experiment) SetProjection(p Projection) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if e.Kind == KindOrthographic && p.FOV >= gomath.Pi/2 {
		return fmt.Errorf("%w: orthographic fov %g", ErrInvalidProjection, p.FOV)
	}
	e.Projection = p
	return nil
}

// staticAngle is the fixed rotation of the transforms experiment.
const staticAngle = 0.3 * gomath.Pi

// localToWorld places o at time t.
func (e *Experiment) localToWorld(o Object, t float64) math.Mat4 {
	if e.Kind == KindTransforms {
		return math.MulPiped(
			math.Scaling(math.Vec3{X: o.Scale, Y: o.Scale, Z: o.Scale}),
			math.RotationY(staticAngle),
			math.RotationZ(staticAngle),
		)
	}
	return o.LocalToWorld(t)
}

// WorldToCamera returns the view transform at time t (milliseconds).
func (e *Experiment) WorldToCamera(t float64) math.Mat4 {
	if e.Orbit == 0 {
		return math.Identity()
	}
	// Move to the orbit centre, turn around it, then step back out.
	return math.MulPiped(
		math.Translation(math.Vec3{Z: e.Orbit}),
		math.RotationY((t / 2000) * gomath.Pi),
		math.Translation(math.Vec3{Z: -e.Orbit}),
	)
}

// CameraToClip returns the projection for a viewport of the given aspect ratio.
func (e *Experiment) CameraToClip(aspect float64) math.Mat4 {
	p := e.Projection
	switch e.Kind {
	case KindOrthographic:
		// The field of view is horizontal here; the height follows the aspect.
		right := gomath.Tan(p.FOV) * p.Near
		top := right / aspect
		return math.OrthographicFrustum(-right, right, -top, top, p.Near, p.Far)
	case KindPerspective, KindLighting:
		return math.PerspectiveProjection(p.FOV, aspect, p.Near, p.Far)
	default:
		// No camera: correct only for the aspect ratio.
		return math.Scaling(math.Vec3{X: 1 / aspect, Y: 1, Z: 1})
	}
}

// WorldToClip composes the camera and projection transforms.
func (e *Experiment) WorldToClip(t, aspect float64) math.Mat4 {
	return math.MulPiped(e.WorldToCamera(t), e.CameraToClip(aspect))
}

// Frame returns the draws for time t (milliseconds) on a viewport of the given aspect.
func (e *Experiment) Frame(t, aspect float64) ([]Draw, error) {
	worldToClip := e.WorldToClip(t, aspect)

	draws := make([]Draw, 0, len(e.Objects))
	for i, o := range e.Objects {
		tf, err := NewTransforms(e.localToWorld(o, t), worldToClip)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		draws = append(draws, Draw{Transforms: tf, Colors: e.Colors, Cull: e.Cull})
	}

	logger.Debug("frame built",
		zap.String("experiment", string(e.Kind)),
		zap.Float64("time_ms", t),
		zap.Int("draws", len(draws)),
	)
	return draws, nil
}

// Pick returns the index of the nearest object under the pixel (x, y) of a
// width×height viewport at time t, or -1 if none is hit. Objects are tested
// against their world-space bounding boxes.
func (e *Experiment) Pick(x, y float64, width, height int, t float64) (int, error) {
	aspect := float64(width) / float64(height)
	ray, err := ScreenToRay(x, y, float64(width), float64(height), e.WorldToClip(t, aspect))
	if err != nil {
		return -1, err
	}

	best, bestT := -1, gomath.Inf(1)
	for i, o := range e.Objects {
		box := BoundsOf(e.Mesh.Vertices, e.localToWorld(o, t))
		if d, hit := ray.IntersectAABB(box); hit && d < bestT {
			best, bestT = i, d
		}
	}
	return best, nil
}
