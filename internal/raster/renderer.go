package raster

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/gl-experiments/internal/logger"
	"github.com/Faultbox/gl-experiments/internal/scene"
	"github.com/Faultbox/gl-experiments/pkg/geometry"
	"github.com/Faultbox/gl-experiments/pkg/math"
)

// ErrInvalidSize is returned for a non-positive canvas size.
var ErrInvalidSize = errors.New("invalid canvas size")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background geometry.Color
	Wireframe  bool // Outline triangles instead of filling them
}

// Stats counts what happened to the triangles submitted in a frame.
type Stats struct {
	Triangles int // Submitted
	Culled    int // Facing away from the viewer
	Clipped   int // A vertex at or behind the camera plane (w <= 0)
	Pixels    int // Pixels written
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Culled += o.Culled
	s.Clipped += o.Clipped
	s.Pixels += o.Pixels
}

// Renderer draws scenes into a Canvas.
type Renderer struct {
	config Config
	canvas *Canvas
	frame  Stats
}

// New creates a new renderer.
func New(cfg Config) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}

	r := &Renderer{
		config: cfg,
		canvas: NewCanvas(cfg.Width, cfg.Height),
	}

	logger.Info("software renderer initialized",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("wireframe", cfg.Wireframe),
	)
	return r, nil
}

// Canvas returns the render target.
func (r *Renderer) Canvas() *Canvas {
	return r.canvas
}

// Image returns the rendered image.
func (r *Renderer) Image() image.Image {
	return r.canvas.Image
}

// Aspect returns the viewport width/height ratio.
func (r *Renderer) Aspect() float64 {
	return r.canvas.Aspect()
}

// Begin starts a new frame: clears colour and depth.
func (r *Renderer) Begin() {
	r.canvas.Clear(r.config.Background.RGBA())
	r.frame = Stats{}
}

// End finishes the current frame and returns its stats.
func (r *Renderer) End() Stats {
	logger.Debug("frame rasterized",
		zap.Int("triangles", r.frame.Triangles),
		zap.Int("culled", r.frame.Culled),
		zap.Int("clipped", r.frame.Clipped),
		zap.Int("pixels", r.frame.Pixels),
	)
	return r.frame
}

// DrawMesh rasterizes mesh with the transforms and colours of d. When light is
// non-nil each triangle is flat shaded from its world-space normal.
// Counter-clockwise triangles face forward; with d.Cull set the rest are dropped.
func (r *Renderer) DrawMesh(mesh geometry.Mesh, d scene.Draw, light *scene.DirectionalLight) Stats {
	var stats Stats

	for i := 0; i < mesh.Triangles(); i++ {
		stats.Triangles++
		ia, ib, ic := mesh.Triangle(i)

		var clip [3]math.Vec4
		clipped := false
		for k, idx := range [3]uint16{ia, ib, ic} {
			clip[k] = d.LocalToClip.MulVector(mesh.Vertices[idx].Point(), false)
			if clip[k][3] <= 0 {
				clipped = true
			}
		}
		if clipped {
			stats.Clipped++
			continue
		}

		// Perspective divide, now that w is known to be positive.
		var ndc [3]math.Vec3
		for k := range clip {
			ndc[k] = clip[k].Scale(1 / clip[k][3]).XYZ()
		}

		if d.Cull && signedArea(ndc[0], ndc[1], ndc[2]) <= 0 {
			stats.Culled++
			continue
		}

		col := d.Colors[ia]
		if light != nil {
			col = light.Shade(col, d.WorldNormal(mesh.Normals[ia]))
		}

		var sv [3]screenVertex
		for k := range ndc {
			x, y, depth := r.canvas.Viewport(ndc[k])
			sv[k] = screenVertex{x, y, depth}
		}

		if r.config.Wireframe {
			rgba := col.RGBA()
			for k := 0; k < 3; k++ {
				r.canvas.drawEdge(sv[k], sv[(k+1)%3], rgba)
			}
			continue
		}
		stats.Pixels += r.canvas.fillTriangle(sv[0], sv[1], sv[2], col.RGBA())
	}

	r.frame.Add(stats)
	return stats
}

// DrawFrame draws every object of a scene frame.
func (r *Renderer) DrawFrame(e *scene.Experiment, draws []scene.Draw) Stats {
	var stats Stats
	for _, d := range draws {
		stats.Add(r.DrawMesh(e.Mesh, d, e.Light))
	}
	return stats
}

// signedArea is twice the signed area of abc projected onto the XY plane;
// positive when abc winds counter-clockwise.
func signedArea(a, b, c math.Vec3) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}
