// Package raster draws transformed meshes into an in-memory image, standing in
// for the GPU: viewport mapping, back-face culling, depth testing and flat
// shading.
package raster

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/Faultbox/gl-experiments/pkg/math"
)

// Canvas is a colour image with a depth buffer of the same size.
type Canvas struct {
	Image *image.RGBA
	depth []float64
}

// NewCanvas creates a width×height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.Image.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.Image.Bounds().Dy()
}

// Aspect returns width/height.
func (c *Canvas) Aspect() float64 {
	return float64(c.Width()) / float64(c.Height())
}

// Clear fills the image with col and resets every depth to 1 (the far plane).
func (c *Canvas) Clear(col color.RGBA) {
	pix := c.Image.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = col.R, col.G, col.B, col.A
	}
	for i := range c.depth {
		c.depth[i] = 1
	}
}

// Viewport maps normalized device coordinates to pixel coordinates with the
// origin at the top left, and NDC depth [-1, 1] to [0, 1].
func (c *Canvas) Viewport(ndc math.Vec3) (x, y, depth float64) {
	x = (ndc.X + 1) / 2 * float64(c.Width())
	y = (1 - ndc.Y) / 2 * float64(c.Height())
	depth = (ndc.Z + 1) / 2
	return x, y, depth
}

// At returns the colour at pixel (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.Image.RGBAAt(x, y)
}

// DepthAt returns the stored depth at pixel (x, y).
func (c *Canvas) DepthAt(x, y int) float64 {
	return c.depth[y*c.Width()+x]
}

// setPixel writes col if depth passes the LEQUAL test and lies within [0, 1].
func (c *Canvas) setPixel(x, y int, depth float64, col color.RGBA) bool {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return false
	}
	if depth < 0 || depth > 1 {
		return false
	}
	i := y*c.Width() + x
	if depth > c.depth[i] {
		return false
	}
	c.depth[i] = depth
	c.Image.SetRGBA(x, y, col)
	return true
}

// screenVertex is a vertex after viewport mapping.
type screenVertex struct {
	x, y, depth float64
}

// edge is twice the signed area of the triangle abp in screen space.
func edge(a, b screenVertex, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// fillTriangle rasterizes a triangle, sampling pixel centres and
// interpolating depth. It returns the number of pixels written.
func (c *Canvas) fillTriangle(v0, v1, v2 screenVertex, col color.RGBA) int {
	area := edge(v0, v1, v2.x, v2.y)
	if area == 0 {
		return 0
	}

	minX, maxX, okX := pixelSpan(v0.x, v1.x, v2.x, c.Width())
	minY, maxY, okY := pixelSpan(v0.y, v1.y, v2.y, c.Height())
	if !okX || !okY {
		return 0
	}

	written := 0
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			// Barycentric weights; dividing by area makes them winding-independent.
			w0 := edge(v1, v2, px, py) / area
			w1 := edge(v2, v0, px, py) / area
			w2 := edge(v0, v1, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.depth + w1*v1.depth + w2*v2.depth
			if c.setPixel(x, y, depth, col) {
				written++
			}
		}
	}
	return written
}

// pixelSpan returns the pixel range [lo, hi] covered by three coordinates,
// clamped to [0, size). ok is false when the range misses the canvas or a
// coordinate is NaN. Bounds are clamped in float64 before converting, as
// coordinates near w = 0 overflow int.
func pixelSpan(a, b, c float64, size int) (lo, hi int, ok bool) {
	fLo := gomath.Floor(gomath.Min(a, gomath.Min(b, c)))
	fHi := gomath.Ceil(gomath.Max(a, gomath.Max(b, c)))
	last := float64(size - 1)
	if !(fLo <= last && fHi >= 0) {
		return 0, 0, false
	}
	return int(gomath.Max(0, fLo)), int(gomath.Min(last, fHi)), true
}

// drawEdge draws the part of the segment ab that lies on the canvas.
func (c *Canvas) drawEdge(a, b screenVertex, col color.RGBA) {
	x0, y0, x1, y1, ok := clipSegment(a.x, a.y, b.x, b.y, float64(c.Width()-1), float64(c.Height()-1))
	if !ok {
		return
	}
	c.DrawLine(int(gomath.Round(x0)), int(gomath.Round(y0)), int(gomath.Round(x1)), int(gomath.Round(y1)), col)
}

// clipSegment clips a segment to [0, xMax]×[0, yMax] (Liang-Barsky). ok is
// false when nothing remains or an endpoint is not finite.
func clipSegment(x0, y0, x1, y1, xMax, yMax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0, xMax - x0, y0, yMax - y0}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = gomath.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = gomath.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// DrawLine draws a line from (x1, y1) to (x2, y2) by stepping along the
// longer axis. Lines ignore the depth buffer.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.RGBA) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := gomath.Max(gomath.Abs(dx), gomath.Abs(dy))
	if steps == 0 {
		if image.Pt(x1, y1).In(c.Image.Bounds()) {
			c.Image.SetRGBA(x1, y1, col)
		}
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x := float64(x1)
	y := float64(y1)

	for i := 0; i <= int(steps); i++ {
		ix := int(gomath.Round(x))
		iy := int(gomath.Round(y))
		if ix >= 0 && ix < c.Width() && iy >= 0 && iy < c.Height() {
			c.Image.SetRGBA(ix, iy, col)
		}
		x += xInc
		y += yInc
	}
}
