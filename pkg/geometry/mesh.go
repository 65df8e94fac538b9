// Package geometry provides the meshes drawn by the experiments.
package geometry

import (
	"image/color"

	"github.com/Faultbox/gl-experiments/pkg/math"
)

// Mesh is an indexed triangle mesh. Counter-clockwise triangles face forward.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3 // One per vertex
	Indices  []uint16
}

// Triangles returns the number of triangles in the mesh.
func (m Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m Mesh) Triangle(i int) (a, b, c uint16) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// Cube returns a cube spanning [-1, 1] on every axis, four vertices per face
// so that each face carries its own normal. The coordinate system is
// right-handed with +Z pointing towards the viewer.
func Cube() Mesh {
	vertices := []math.Vec3{
		{X: -1, Y: -1, Z: +1}, {X: +1, Y: -1, Z: +1}, {X: +1, Y: +1, Z: +1}, {X: -1, Y: +1, Z: +1}, // Front
		{X: -1, Y: -1, Z: -1}, {X: -1, Y: +1, Z: -1}, {X: +1, Y: +1, Z: -1}, {X: +1, Y: -1, Z: -1}, // Back
		{X: -1, Y: +1, Z: -1}, {X: -1, Y: +1, Z: +1}, {X: +1, Y: +1, Z: +1}, {X: +1, Y: +1, Z: -1}, // Top
		{X: -1, Y: -1, Z: -1}, {X: +1, Y: -1, Z: -1}, {X: +1, Y: -1, Z: +1}, {X: -1, Y: -1, Z: +1}, // Bottom
		{X: +1, Y: -1, Z: -1}, {X: +1, Y: +1, Z: -1}, {X: +1, Y: +1, Z: +1}, {X: +1, Y: -1, Z: +1}, // Right
		{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: +1}, {X: -1, Y: +1, Z: +1}, {X: -1, Y: +1, Z: -1}, // Left
	}

	faceNormals := []math.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
	}
	normals := make([]math.Vec3, 0, len(vertices))
	for _, n := range faceNormals {
		normals = append(normals, n, n, n, n)
	}

	indices := []uint16{
		0, 1, 2, 0, 2, 3, // Front
		4, 5, 6, 4, 6, 7, // Back
		8, 9, 10, 8, 10, 11, // Top
		12, 13, 14, 12, 14, 15, // Bottom
		16, 17, 18, 16, 18, 19, // Right
		20, 21, 22, 20, 22, 23, // Left
	}

	return Mesh{Vertices: vertices, Normals: normals, Indices: indices}
}

// FaceNormal returns the unit normal of the counter-clockwise triangle abc.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Scale multiplies the RGB channels by s, leaving alpha untouched.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Add sums the RGB channels, keeping the alpha of c.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// RGBA converts to an 8-bit colour, clamping each channel to [0, 1].
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// FacePalette holds one colour per cube face.
var FacePalette = []Color{
	{0.8, 0, 0, 1},
	{0, 1, 0, 1},
	{0, 0, 1, 1},
	{0.5, 0.5, 0, 1},
	{0.5, 0, 0.5, 1},
	{0, 0.5, 0.5, 1},
}

// Green is the flat colour of the lit cube.
var Green = Color{0, 0.8, 0, 1}

// VertexColors colours every group of four vertices (one cube face) from
// FacePalette, cycling through the palette.
func VertexColors(m Mesh) []Color {
	colors := make([]Color, len(m.Vertices))
	for i := range colors {
		colors[i] = FacePalette[(i/4)%len(FacePalette)]
	}
	return colors
}

// UniformColors returns c for every vertex of m.
func UniformColors(m Mesh, c Color) []Color {
	colors := make([]Color, len(m.Vertices))
	for i := range colors {
		colors[i] = c
	}
	return colors
}
