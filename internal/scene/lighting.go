package scene

import (
	"github.com/Faultbox/gl-experiments/pkg/geometry"
	"github.com/Faultbox/gl-experiments/pkg/math"
)

// DirectionalLight is a light infinitely far away, shining along Direction.
type DirectionalLight struct {
	Direction math.Vec3 // Direction the light travels in
	Ambient   float64   // Share of the colour kept on unlit surfaces, in [0, 1]
}

// DefaultLight shines from the top left, slightly from behind the viewer.
func DefaultLight() DirectionalLight {
	return DirectionalLight{
		Direction: math.Vec3{X: 1, Y: -1, Z: -1},
		Ambient:   0.5,
	}
}

// Intensity returns how directly a surface with the given normal faces the
// light, clamped to [0, 1].
func (l DirectionalLight) Intensity(normal math.Vec3) float64 {
	toLight := l.Direction.Negate().Normalize()
	return clamp(normal.Normalize().Dot(toLight), 0, 1)
}

// Shade lights c on a surface with the given world-space normal.
func (l DirectionalLight) Shade(c geometry.Color, normal math.Vec3) geometry.Color {
	diffuse := l.Intensity(normal) * (1 - l.Ambient)
	return c.Scale(l.Ambient).Add(c.Scale(diffuse))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
