// Package raster is the pixel-rasterizer collaborator nanosvg's core
// scene graph hands off to: it walks a *nanosvg.Image and paints it
// into an image.RGBA using github.com/srwiley/rasterx, the same
// scanline filler/dasher the teacher's canvas package links against.
// Kept out of the nanosvg package itself so the parser and animation
// engine stay free of a concrete pixel format.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/tdewolff/nanosvg"
)

// Rasterizer paints a nanosvg.Image into an *image.RGBA. Prepare
// allocates a fresh, cleared target (cmd/svgview calls it before every
// frame), Rasterize is called once per shape in document order, so
// later shapes paint over earlier ones, and RasterizeFinish once the
// whole tree has been drawn.
type Rasterizer interface {
	Prepare(width, height int)
	Rasterize(img *nanosvg.Image, shapeIdx int)
	RasterizeFinish() *image.RGBA
}

// Canvas is the rasterx-backed Rasterizer implementation.
type Canvas struct {
	width, height int
	target        *image.RGBA
	painter       *rasterx.RGBAPainter
	dasher        *rasterx.Dasher
}

// NewCanvas returns a Canvas sized for a width x height target.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Prepare(width, height)
	return c
}

// Prepare (re)allocates the backing image.RGBA and rasterx scanner for
// a new target size.
func (c *Canvas) Prepare(width, height int) {
	c.width, c.height = width, height
	c.target = image.NewRGBA(image.Rect(0, 0, width, height))
	c.painter = rasterx.NewRGBAPainter(c.target)
	c.dasher = rasterx.NewDasher(width, height, rasterx.NewScannerGV(width, height, c.target, c.target.Bounds()))
}

// Rasterize draws one shape's fill and stroke into the target.
func (c *Canvas) Rasterize(img *nanosvg.Image, shapeIdx int) {
	shape := &img.Shapes[shapeIdx]
	if !shape.Visible || shape.Opacity <= 0 {
		return
	}

	if shape.Fill.Kind != nanosvg.PaintNone {
		c.dasher.Clear()
		filler := &c.dasher.Filler
		filler.UseNonZeroWinding = shape.FillRule == nanosvg.FillNonZero
		for _, pidx := range shape.Paths {
			addPathTo(filler, img, pidx)
		}
		c.setPaint(shape.Fill, shape.Opacity)
		filler.Rasterize(c.painter)
		filler.Clear()
	}

	if shape.Stroke.Kind != nanosvg.PaintNone && shape.StrokeWidth > 0 {
		c.dasher.Clear()
		c.dasher.SetStroke(
			fixed.Int26_6(shape.StrokeWidth*64),
			fixed.Int26_6(shape.MiterLimit*64),
			capFunc(shape.LineCap), capFunc(shape.LineCap), nil,
			joinMode(shape.LineJoin),
			dashArray(shape.DashArray, shape.DashCount),
			shape.DashOffset*64,
		)
		for _, pidx := range shape.Paths {
			addPathTo(c.dasher, img, pidx)
		}
		c.setPaint(shape.Stroke, shape.Opacity)
		c.dasher.Rasterize(c.painter)
		c.dasher.Clear()
	}
}

// RasterizeFinish returns the accumulated target image.
func (c *Canvas) RasterizeFinish() *image.RGBA { return c.target }

func (c *Canvas) setPaint(p nanosvg.Paint, groupOpacity float64) {
	switch p.Kind {
	case nanosvg.PaintColor:
		a := float64(p.Color.A) * clamp01(groupOpacity)
		c.painter.SetColor(color.NRGBA{p.Color.R, p.Color.G, p.Color.B, uint8(a + 0.5)})
	default:
		// Gradient paints are not rendered as gradients: the shape is
		// filled or stroked in flat opaque gray.
		c.painter.SetColor(color.NRGBA{0x80, 0x80, 0x80, 0xff})
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	} else if v > 1 {
		return 1
	}
	return v
}

// pathAdder is the subset of rasterx.Adder that both Filler and Dasher
// satisfy, used so addPathTo can feed either.
type pathAdder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// addPathTo feeds one nanosvg Path's cubic segments into a rasterx
// path adder, 64ths-of-a-pixel fixed point, mirroring the teacher's
// stack of AddTo-style walkers in the other example SVG rasterizers.
func addPathTo(a pathAdder, img *nanosvg.Image, pathIdx int) {
	path := img.Paths[pathIdx]
	pts := path.Points()
	if len(pts) == 0 {
		return
	}
	a.Start(toFixed(pts[0].X, pts[0].Y))
	for i := 1; i+2 < len(pts); i += 3 {
		a.CubeBezier(toFixed(pts[i].X, pts[i].Y), toFixed(pts[i+1].X, pts[i+1].Y), toFixed(pts[i+2].X, pts[i+2].Y))
	}
	a.Stop(path.Closed())
}

func capFunc(c nanosvg.LineCap) rasterx.CapFunc {
	switch c {
	case nanosvg.CapRound:
		return rasterx.RoundCap
	case nanosvg.CapSquare:
		return rasterx.SquareCap
	default:
		return rasterx.ButtCap
	}
}

func joinMode(j nanosvg.LineJoin) rasterx.JoinMode {
	switch j {
	case nanosvg.JoinRound:
		return rasterx.Round
	case nanosvg.JoinBevel:
		return rasterx.Bevel
	default:
		return rasterx.Miter
	}
}

// dashArray converts a fixed [8]float64/count dash pattern to rasterx's
// []fixed.Int26_6, in 64ths of a pixel. Returns nil for no dashing.
func dashArray(arr [8]float64, n int) []fixed.Int26_6 {
	if n == 0 {
		return nil
	}
	out := make([]fixed.Int26_6, n)
	for i := 0; i < n; i++ {
		out[i] = fixed.Int26_6(math.Max(arr[i], 0) * 64)
	}
	return out
}
