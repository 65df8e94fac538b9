package scene

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gl-experiments/pkg/geometry"
	"github.com/Faultbox/gl-experiments/pkg/math"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"transforms", KindTransforms, false},
		{"Perspective", KindPerspective, false},
		{" lighting ", KindLighting, false},
		{"raytracing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownExperiment) {
					t.Errorf("ParseKind(%q) error = %v, want ErrUnknownExperiment", tt.in, err)
				}
				return
			}
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewEveryKind(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			e, err := New(k)
			require.NoError(t, err)
			if len(e.Objects) == 0 {
				t.Error("experiment has no objects")
			}
			if len(e.Colors) != len(e.Mesh.Vertices) {
				t.Errorf("expected %d colours, got %d", len(e.Mesh.Vertices), len(e.Colors))
			}

			draws, err := e.Frame(1234, 4.0/3.0)
			require.NoError(t, err)
			if len(draws) != len(e.Objects) {
				t.Errorf("expected %d draws, got %d", len(e.Objects), len(draws))
			}
		})
	}

	if _, err := New("bogus"); !errors.Is(err, ErrUnknownExperiment) {
		t.Errorf("New(bogus) error = %v, want ErrUnknownExperiment", err)
	}
}

func TestCulling(t *testing.T) {
	tests := map[Kind]bool{
		KindTransforms:   false,
		KindAnimation:    false,
		KindOrthographic: true,
		KindPerspective:  true,
		KindLighting:     true,
	}
	for k, want := range tests {
		e, err := New(k)
		require.NoError(t, err)
		if e.Cull != want {
			t.Errorf("%s: Cull = %v, want %v", k, e.Cull, want)
		}

		draws, err := e.Frame(0, 1)
		require.NoError(t, err)
		for i, d := range draws {
			if d.Cull != want {
				t.Errorf("%s: draw %d Cull = %v, want %v", k, i, d.Cull, want)
			}
		}
	}
}

func TestSetProjection(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		p       Projection
		wantErr bool
	}{
		{"valid perspective", KindPerspective, Projection{FOV: 1, Near: 0.5, Far: 50}, false},
		{"near beyond far", KindPerspective, Projection{FOV: 1, Near: 2000, Far: 1000}, true},
		{"near equals far", KindLighting, Projection{FOV: 1, Near: 5, Far: 5}, true},
		{"zero near", KindPerspective, Projection{FOV: 1, Near: 0, Far: 10}, true},
		{"NaN fov", KindPerspective, Projection{FOV: gomath.NaN(), Near: 1, Far: 10}, true},
		{"straight angle", KindPerspective, Projection{FOV: gomath.Pi, Near: 1, Far: 10}, true},
		{"wide orthographic", KindOrthographic, Projection{FOV: 2, Near: 1, Far: 10}, true},
		{"narrow orthographic", KindOrthographic, Projection{FOV: 1, Near: 1, Far: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.kind)
			require.NoError(t, err)
			before := e.Projection

			err = e.SetProjection(tt.p)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProjection) {
					t.Fatalf("expected ErrInvalidProjection, got %v", err)
				}
				assert.Equal(t, before, e.Projection, "projection changed on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.p, e.Projection)
		})
	}
}

func TestUsesProjection(t *testing.T) {
	for _, k := range Kinds {
		e, err := New(k)
		require.NoError(t, err)
		want := k != KindTransforms && k != KindAnimation
		if got := e.UsesProjection(); got != want {
			t.Errorf("%s: UsesProjection = %v, want %v", k, got, want)
		}
		if want {
			assert.NoError(t, e.Projection.Validate(), "default projection of %s", k)
		}
	}
}

func TestObjectLocalToWorld(t *testing.T) {
	o := Object{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Scale: 0.3}

	// Without spin the cube is scaled then moved.
	got := o.LocalToWorld(5000).TransformPoint(math.Vec3{X: 1, Y: 1, Z: 1})
	want := math.Vec3{X: 1.3, Y: 2.3, Z: 3.3}
	assert.InDelta(t, 0, got.Distance(want), 1e-12)

	// Rotation happens about the local origin: the centre stays at Position.
	o.Spin = 1
	centre := o.LocalToWorld(777).TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, centre.Distance(o.Position), 1e-12)
}

func TestPerspectiveCameraOrbit(t *testing.T) {
	e, err := New(KindPerspective)
	require.NoError(t, err)

	// At t=0 the camera sits at the origin.
	if !e.WorldToCamera(0).ApproxEqual(math.Identity(), 1e-12) {
		t.Errorf("WorldToCamera(0) = %v, want identity", e.WorldToCamera(0))
	}

	// The orbit centre is fixed at any time.
	centre := math.Vec3{Z: -e.Orbit}
	for _, ts := range []float64{0, 500, 1000, 3000} {
		got := e.WorldToCamera(ts).TransformPoint(centre)
		assert.InDeltaf(t, 0, got.Distance(centre), 1e-9, "t=%v", ts)
	}

	// Half a turn later (t=2000) the camera looks at the scene from behind.
	behind := e.WorldToCamera(2000).TransformPoint(math.Vec3{})
	assert.InDelta(t, -2*e.Orbit, behind.Z, 1e-9)
}

func TestPerspectiveFrameInsideClipVolume(t *testing.T) {
	e, err := New(KindPerspective)
	require.NoError(t, err)

	draws, err := e.Frame(0, 800.0/600.0)
	require.NoError(t, err)

	for i, d := range draws {
		for _, v := range e.Mesh.Vertices {
			ndc := d.LocalToClip.TransformPoint(v)
			if gomath.Abs(ndc.X) > 1 || gomath.Abs(ndc.Y) > 1 || gomath.Abs(ndc.Z) > 1 {
				t.Errorf("draw %d: vertex %v lands outside NDC at %v", i, v, ndc)
			}
		}
	}

	// The back cube is deeper than the front row.
	front := draws[0].LocalToClip.TransformPoint(math.Vec3{})
	back := draws[3].LocalToClip.TransformPoint(math.Vec3{})
	if back.Z <= front.Z {
		t.Errorf("back cube depth %v should exceed front cube depth %v", back.Z, front.Z)
	}
}

func TestOrthographicFrameInsideClipVolume(t *testing.T) {
	e, err := New(KindOrthographic)
	require.NoError(t, err)

	draws, err := e.Frame(2500, 800.0/600.0)
	require.NoError(t, err)

	for i, d := range draws {
		for _, v := range e.Mesh.Vertices {
			ndc := d.LocalToClip.MulVector(v.Point(), true)
			if ndc[3] != 1 {
				t.Errorf("draw %d: orthographic w = %v, want 1", i, ndc[3])
			}
			if gomath.Abs(ndc[0]) > 1 || gomath.Abs(ndc[1]) > 1 || gomath.Abs(ndc[2]) > 1 {
				t.Errorf("draw %d: vertex %v lands outside NDC at %v", i, v, ndc)
			}
		}
	}
}

func TestNewTransforms(t *testing.T) {
	localToWorld := math.MulPiped(
		math.Scaling(math.Vec3{X: 1, Y: 4, Z: 1}),
		math.RotationZ(0.5),
		math.Translation(math.Vec3{X: 3}),
	)
	worldToClip := math.PerspectiveProjection(1, 1, 1, 100)

	tf, err := NewTransforms(localToWorld, worldToClip)
	require.NoError(t, err)
	assert.True(t, tf.LocalToClip.ApproxEqual(worldToClip.Mul(localToWorld), 1e-12))

	// Normals stay perpendicular to transformed surface tangents under
	// non-uniform scaling.
	tangent := localToWorld.TransformDirection(math.Vec3{X: 1, Y: 1})
	normal := tf.WorldNormal(math.Vec3{X: 1, Y: -1})
	assert.InDelta(t, 0, tangent.Dot(normal), 1e-12)
	assert.InDelta(t, 1, normal.Length(), 1e-12)

	_, err = NewTransforms(math.Scaling(math.Vec3{X: 1, Y: 0, Z: 1}), worldToClip)
	if !errors.Is(err, math.ErrSingularMatrix) {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestDirectionalLight(t *testing.T) {
	l := DefaultLight()

	tests := []struct {
		name   string
		normal math.Vec3
		want   float64
	}{
		{"facing the light", math.Vec3{X: -1, Y: 1, Z: 1}, 1},
		{"facing away", math.Vec3{X: 1, Y: -1, Z: -1}, 0},
		{"top face", math.Vec3{Y: 1}, 1 / gomath.Sqrt(3)},
		{"grazing", math.Vec3{X: 1, Y: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, l.Intensity(tt.normal), 1e-12)
		})
	}

	// Unit and non-unit normals shade the same.
	assert.InDelta(t, l.Intensity(math.Vec3{Y: 1}), l.Intensity(math.Vec3{Y: 7}), 1e-12)

	lit := l.Shade(geometry.Green, math.Vec3{X: -1, Y: 1, Z: 1})
	unlit := l.Shade(geometry.Green, math.Vec3{X: 1, Y: -1, Z: -1})
	assert.InDelta(t, 0.8, lit.G, 1e-12)
	assert.InDelta(t, 0.4, unlit.G, 1e-12)
	assert.Equal(t, 1.0, lit.A)
}

func TestLightingExperimentIsLit(t *testing.T) {
	e, err := New(KindLighting)
	require.NoError(t, err)
	require.NotNil(t, e.Light)
	if e.Colors[0] != geometry.Green {
		t.Errorf("lit cube colour = %v, want green", e.Colors[0])
	}

	p, err := New(KindPerspective)
	require.NoError(t, err)
	if p.Light != nil {
		t.Error("perspective experiment should be unlit")
	}
}
