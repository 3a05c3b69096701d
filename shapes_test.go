package nanosvg

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestBuildRectSharpCorners(t *testing.T) {
	paths := buildRect(0, 0, 10, 20, 0, 0)
	test.T(t, len(paths), 1)
	p := paths[0]
	test.T(t, p.Segments(), 4)
	test.That(t, p.Closed())
}

func TestBuildRectZeroSizeIsEmpty(t *testing.T) {
	test.T(t, len(buildRect(0, 0, 0, 10, 0, 0)), 0)
	test.T(t, len(buildRect(0, 0, 10, 0, 0, 0)), 0)
}

func TestBuildRectRoundedClampsRadius(t *testing.T) {
	// rx larger than w/2 must clamp to w/2.
	paths := buildRect(0, 0, 10, 10, 100, 2)
	p := paths[0]
	p.captureBaseline()
	p.computeBounds()
	b := p.Bounds()
	test.That(t, math.Abs(b[2]-b[0]-10) < 1e-6)
}

func TestBuildRectOnlyRXSetMirrorsToRY(t *testing.T) {
	paths := buildRect(0, 0, 10, 10, 2, 0)
	test.That(t, len(paths) == 1)
	// Just verify it doesn't collapse to the sharp-corner 4-point form.
	test.That(t, paths[0].Segments() > 4)
}

func TestBuildEllipseDegenerate(t *testing.T) {
	test.T(t, len(buildEllipse(0, 0, 0, 5)), 0)
	test.T(t, len(buildEllipse(0, 0, 5, 0)), 0)
}

func TestBuildCircleBounds(t *testing.T) {
	p := buildCircle(5, 5, 3)[0]
	p.captureBaseline()
	p.computeBounds()
	b := p.Bounds()
	test.That(t, math.Abs(b[0]-2) < 1e-6)
	test.That(t, math.Abs(b[2]-8) < 1e-6)
}

func TestBuildLine(t *testing.T) {
	p := buildLine(0, 0, 10, 10)[0]
	test.That(t, !p.Closed())
	test.T(t, p.current(), Point{10, 10})
}

func TestBuildPolylineOpen(t *testing.T) {
	p := buildPolyline([]float64{0, 0, 10, 0, 10, 10}, false)[0]
	test.That(t, !p.Closed())
	test.T(t, p.Segments(), 2)
}

func TestBuildPolygonClosed(t *testing.T) {
	p := buildPolyline([]float64{0, 0, 10, 0, 10, 10}, true)[0]
	test.That(t, p.Closed())
}

func TestBuildPolylineTooFewCoordsIsEmpty(t *testing.T) {
	test.T(t, len(buildPolyline([]float64{1}, false)), 0)
}
