package geometry

import (
	"image/color"
	"testing"
)

func TestCubeCounts(t *testing.T) {
	c := Cube()

	if len(c.Vertices) != 24 {
		t.Errorf("expected 24 vertices, got %d", len(c.Vertices))
	}
	if len(c.Normals) != len(c.Vertices) {
		t.Errorf("expected one normal per vertex, got %d", len(c.Normals))
	}
	if len(c.Indices) != 36 {
		t.Errorf("expected 36 indices, got %d", len(c.Indices))
	}
	if c.Triangles() != 12 {
		t.Errorf("expected 12 triangles, got %d", c.Triangles())
	}
	for i, idx := range c.Indices {
		if int(idx) >= len(c.Vertices) {
			t.Errorf("index %d out of range: %d", i, idx)
		}
	}
}

func TestCubeWindingFacesOutward(t *testing.T) {
	c := Cube()

	for i := 0; i < c.Triangles(); i++ {
		ia, ib, ic := c.Triangle(i)
		a, b, v := c.Vertices[ia], c.Vertices[ib], c.Vertices[ic]

		n := FaceNormal(a, b, v)
		if n != c.Normals[ia] {
			t.Errorf("triangle %d: winding normal %v, stored normal %v", i, n, c.Normals[ia])
		}

		// Outward: the normal points away from the cube centre.
		centroid := a.Add(b).Add(v).Scale(1.0 / 3.0)
		if n.Dot(centroid) <= 0 {
			t.Errorf("triangle %d faces inward: normal %v, centroid %v", i, n, centroid)
		}
	}
}

func TestCubeNormalsUnit(t *testing.T) {
	for i, n := range Cube().Normals {
		if n.Length() != 1 {
			t.Errorf("normal %d has length %v", i, n.Length())
		}
	}
}

func TestVertexColors(t *testing.T) {
	c := Cube()
	colors := VertexColors(c)

	if len(colors) != len(c.Vertices) {
		t.Fatalf("expected %d colours, got %d", len(c.Vertices), len(colors))
	}
	for i, col := range colors {
		if want := FacePalette[i/4]; col != want {
			t.Errorf("vertex %d: got %v, want %v", i, col, want)
		}
	}
}

func TestUniformColors(t *testing.T) {
	for _, col := range UniformColors(Cube(), Green) {
		if col != Green {
			t.Fatalf("got %v, want %v", col, Green)
		}
	}
}

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		in   Color
		want color.RGBA
	}{
		{Color{0, 0, 0, 1}, color.RGBA{0, 0, 0, 255}},
		{Color{1, 0.5, 0, 1}, color.RGBA{255, 128, 0, 255}},
		{Color{2, -1, 0.8, 0}, color.RGBA{255, 0, 204, 0}},
	}
	for _, tt := range tests {
		if got := tt.in.RGBA(); got != tt.want {
			t.Errorf("RGBA(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorArithmetic(t *testing.T) {
	got := Green.Scale(0.5).Add(Green.Scale(0.25))
	if got.A != 1 || got.R != 0 || got.B != 0 || got.G < 0.599 || got.G > 0.601 {
		t.Errorf("got %v, want ~{0 0.6 0 1}", got)
	}
}
