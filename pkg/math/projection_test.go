package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrthographicFrustum(t *testing.T) {
	m := OrthographicFrustum(-1, 1, -1, 1, 1, 10)

	tests := []struct {
		name string
		in   Vec4
		want Vec4
	}{
		{"near top right corner", Vec4{1, 1, 1, 1}, Vec4{1, 1, -1, 1}},
		{"far bottom left corner", Vec4{-1, -1, 10, 1}, Vec4{-1, -1, 1, 1}},
		{"centre", Vec4{0, 0, 5.5, 1}, Vec4{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec4Near(t, tt.want, m.MulVector(tt.in, true), 1e-12)
		})
	}
}

func TestOrthographicFrustumOffCentre(t *testing.T) {
	m := OrthographicFrustum(2, 6, -3, 1, 0, 4)

	assertVec4Near(t, Vec4{0, 0, 0, 1}, m.MulVector(Vec4{4, -1, 2, 1}, true), 1e-12)
	assertVec4Near(t, Vec4{1, 1, 1, 1}, m.MulVector(Vec4{6, 1, 4, 1}, true), 1e-12)
	assertVec4Near(t, Vec4{-1, -1, -1, 1}, m.MulVector(Vec4{2, -3, 0, 1}, true), 1e-12)
}

func TestOrthographicProjection(t *testing.T) {
	// fov 90° at near=1 gives a half-height of 1; aspect 2 doubles the width.
	m := OrthographicProjection(math.Pi/2, 2, 1, 9)
	assertMatNear(t, OrthographicFrustum(-2, 2, -1, 1, 1, 9), m, 1e-12)
	assertVec4Near(t, Vec4{1, 1, -1, 1}, m.MulVector(Vec4{2, 1, 1, 1}, true), 1e-12)
}

func TestPerspectiveProjection(t *testing.T) {
	fov := math.Pi / 3
	aspect := 16.0 / 9.0
	near, far := 1.0, 1000.0
	m := PerspectiveProjection(fov, aspect, near, far)

	s := 1 / math.Tan(fov/2)
	assert.InDelta(t, s/aspect, m[0][0], 1e-12)
	assert.InDelta(t, s, m[1][1], 1e-12)
	if m[3] != [4]float64{0, 0, -1, 0} {
		t.Errorf("last row = %v, want [0 0 -1 0]", m[3])
	}

	// Near plane centre lands on -1, far plane centre on +1.
	assertVec4Near(t, Vec4{0, 0, -1, 1}, m.MulVector(Vec4{0, 0, -near, 1}, true), 1e-9)
	assertVec4Near(t, Vec4{0, 0, 1, 1}, m.MulVector(Vec4{0, 0, -far, 1}, true), 1e-9)

	// Top right corner of the near plane maps to the NDC corner.
	top := math.Tan(fov/2) * near
	right := top * aspect
	assertVec4Near(t, Vec4{1, 1, -1, 1}, m.MulVector(Vec4{right, top, -near, 1}, true), 1e-9)

	// Clip w is the distance in front of the camera.
	clip := m.MulVector(Vec4{0.3, 0.2, -7, 1}, false)
	assert.InDelta(t, 7.0, clip[3], 1e-12)
}

func TestPerspectiveForeshortening(t *testing.T) {
	m := PerspectiveProjection(math.Pi/2, 1, 1, 100)

	nearer := m.TransformPoint(Vec3{1, 1, -5})
	farther := m.TransformPoint(Vec3{1, 1, -10})

	if !(farther.X < nearer.X && farther.Y < nearer.Y) {
		t.Errorf("farther point should project closer to the centre: near %v, far %v", nearer, farther)
	}
	if !(farther.Z > nearer.Z) {
		t.Errorf("depth should grow with distance: near %v, far %v", nearer.Z, farther.Z)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0})

	// Looking down -Z from +Z: pure translation.
	assertMatNear(t, Translation(Vec3{0, 0, 5}), m, 1e-12)

	view, err := m.Inverse()
	require.NoError(t, err)
	got := view.TransformPoint(Vec3{0, 0, 0})
	assert.InDelta(t, -5.0, got.Z, 1e-12)
}

func TestLookAtTargetOnNegativeZ(t *testing.T) {
	camera := Vec3{1, 2, 3}
	target := Vec3{-0.6, 0.4, -5}
	m := LookAt(camera, target)

	if m.Row(3) != (Vec4{0, 0, 0, 1}) {
		t.Errorf("last row = %v, want (0, 0, 0, 1)", m.Row(3))
	}
	if got := m.Col(3).XYZ(); got != camera {
		t.Errorf("position column = %v, want %v", got, camera)
	}

	// The three axes form an orthonormal right-handed basis.
	x, y, z := m.Col(0).XYZ(), m.Col(1).XYZ(), m.Col(2).XYZ()
	assert.InDelta(t, 1.0, x.Length(), 1e-12)
	assert.InDelta(t, 1.0, y.Length(), 1e-12)
	assert.InDelta(t, 1.0, z.Length(), 1e-12)
	assert.InDelta(t, 0.0, x.Dot(y), 1e-12)
	assert.InDelta(t, 0.0, y.Dot(z), 1e-12)
	assert.InDelta(t, 1.0, m.Determinant(), 1e-12)
	// Camera X stays horizontal.
	assert.InDelta(t, 0.0, x.Y, 1e-12)

	view, err := m.Inverse()
	require.NoError(t, err)
	local := view.TransformPoint(target)
	assert.InDelta(t, 0.0, local.X, 1e-9)
	assert.InDelta(t, 0.0, local.Y, 1e-9)
	assert.InDelta(t, -camera.Distance(target), local.Z, 1e-9)
}

func TestLookAtParallelToUp(t *testing.T) {
	// Degenerate: the view direction is parallel to world up.
	m := LookAt(Vec3{0, 5, 0}, Vec3{0, 0, 0})
	if !m.Col(0).XYZ().IsNaN() {
		t.Errorf("expected NaN X axis, got %v", m.Col(0))
	}
}
