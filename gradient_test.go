package nanosvg

import (
	"image/color"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestBakeGradientStopsSortedAscending(t *testing.T) {
	img := &Image{}
	def := &gradientDef{
		id: "g1",
		stops: []GradStop{
			{Offset: 0.8, Color: PaintOfColor(color.RGBA{1, 0, 0, 255})},
			{Offset: 0.1, Color: PaintOfColor(color.RGBA{2, 0, 0, 255})},
			{Offset: 0.5, Color: PaintOfColor(color.RGBA{3, 0, 0, 255})},
		},
	}
	idx := bakeGradient(img, def, [4]float64{0, 0, 10, 10})
	g := img.Gradients[idx]
	test.T(t, len(g.Stops), 3)
	test.T(t, g.Stops[0].Offset, 0.1)
	test.T(t, g.Stops[1].Offset, 0.5)
	test.T(t, g.Stops[2].Offset, 0.8)
}

func TestBakeGradientSortsNonMonotonicOffsets(t *testing.T) {
	img := &Image{}
	def := &gradientDef{
		stops: []GradStop{
			{Offset: 0.5, Color: PaintOfColor(color.RGBA{})},
			{Offset: 0.2, Color: PaintOfColor(color.RGBA{})},
		},
	}
	idx := bakeGradient(img, def, [4]float64{0, 0, 1, 1})
	g := img.Gradients[idx]
	// After stable sort by offset, 0.2 comes first, 0.5 second -- already
	// monotonic, so no clamping needed in this particular input order.
	test.T(t, g.Stops[0].Offset, 0.2)
	test.T(t, g.Stops[1].Offset, 0.5)
}

func TestBakeGradientDefaultsLinearEndpoints(t *testing.T) {
	img := &Image{}
	def := &gradientDef{}
	idx := bakeGradient(img, def, [4]float64{0, 0, 1, 1})
	g := img.Gradients[idx]
	test.T(t, g.Units, ObjectBoundingBox)
	test.T(t, g.X1, Coordinate{0, UnitUser})
	test.T(t, g.X2, Coordinate{1, UnitUser})
	test.T(t, g.Spread, SpreadPad)
}

func TestBakeGradientUserSpaceDefaultsArePercent(t *testing.T) {
	img := &Image{}
	def := &gradientDef{hasUnits: true, units: UserSpaceOnUse}
	idx := bakeGradient(img, def, [4]float64{0, 0, 1, 1})
	g := img.Gradients[idx]
	test.T(t, g.X2, Coordinate{100, UnitPercent})
}

func TestMergeGradientDefInheritsUnsetFields(t *testing.T) {
	parent := &gradientDef{hasX2: true, x2: Coordinate{5, UnitUser}, stops: []GradStop{{Offset: 0, Color: PaintOfNone()}}}
	child := &gradientDef{hasX1: true, x1: Coordinate{1, UnitUser}}
	merged := mergeGradientDef(child, parent)
	test.That(t, merged.hasX1)
	test.T(t, merged.x1, Coordinate{1, UnitUser})
	test.That(t, merged.hasX2)
	test.T(t, merged.x2, Coordinate{5, UnitUser})
	test.T(t, len(merged.stops), 1)
}

func TestMergeGradientDefChildOverridesParent(t *testing.T) {
	parent := &gradientDef{hasX1: true, x1: Coordinate{9, UnitUser}}
	child := &gradientDef{hasX1: true, x1: Coordinate{1, UnitUser}}
	merged := mergeGradientDef(child, parent)
	test.T(t, merged.x1, Coordinate{1, UnitUser})
}

func TestChaseGradientHrefsCycleSafe(t *testing.T) {
	defs := map[string]*gradientDef{
		"a": {id: "a", href: "b"},
		"b": {id: "b", href: "a"},
	}
	// Must terminate rather than loop forever.
	merged := chaseGradientHrefs(defs, defs["a"], []string{"a"})
	test.That(t, merged != nil)
}

func TestResolvePaintRefUnknownIDReturnsNone(t *testing.T) {
	img := &Image{}
	p := resolvePaintRef(img, map[string]*gradientDef{}, "missing", [4]float64{0, 0, 1, 1})
	test.T(t, p.Kind, PaintNone)
}

func TestResolvePaintRefLinear(t *testing.T) {
	img := &Image{}
	defs := map[string]*gradientDef{
		"g": {id: "g", radial: false, stops: []GradStop{
			{Offset: 0, Color: PaintOfColor(color.RGBA{A: 255})},
			{Offset: 1, Color: PaintOfColor(color.RGBA{R: 255, A: 255})},
		}},
	}
	p := resolvePaintRef(img, defs, "g", [4]float64{0, 0, 1, 1})
	test.T(t, p.Kind, PaintLinearGradient)
	test.T(t, len(img.Gradients), 1)
}

func TestResolvePaintRefNoStopsAnywhereResolvesToNone(t *testing.T) {
	img := &Image{}
	defs := map[string]*gradientDef{
		"g": {id: "g", radial: false, href: "parent"},
		"parent": {id: "parent"},
	}
	p := resolvePaintRef(img, defs, "g", [4]float64{0, 0, 1, 1})
	test.T(t, p.Kind, PaintNone)
	test.T(t, len(img.Gradients), 0)
}

func TestBakeGradientLinearAxisFromExplicitEndpoints(t *testing.T) {
	img := &Image{DPI: 96}
	def := &gradientDef{
		hasUnits: true, units: UserSpaceOnUse,
		hasX1: true, x1: Coordinate{0, UnitUser},
		hasY1: true, y1: Coordinate{0, UnitUser},
		hasX2: true, x2: Coordinate{10, UnitUser},
		hasY2: true, y2: Coordinate{0, UnitUser},
	}
	idx := bakeGradient(img, def, [4]float64{0, 0, 1, 1})
	g := img.Gradients[idx]
	// dx=10, dy=0: axis aligned to the line then rotated 90 degrees
	// (spec.md §4.7 step 3 / nanosvg.h:1175-1177).
	test.T(t, g.orig.xform, Transform{0, -10, 10, 0, 0, 0})
}

func TestBakeGradientRadialAxisFromExplicitCenter(t *testing.T) {
	img := &Image{DPI: 96}
	def := &gradientDef{
		radial: true, hasUnits: true, units: UserSpaceOnUse,
		hasCX: true, cx: Coordinate{5, UnitUser},
		hasCY: true, cy: Coordinate{5, UnitUser},
		hasR: true, r: Coordinate{3, UnitUser},
	}
	idx := bakeGradient(img, def, [4]float64{0, 0, 1, 1})
	g := img.Gradients[idx]
	test.T(t, g.orig.xform, Transform{3, 0, 0, 3, 5, 5})
}

func TestBakeGradientObjectBoundingBoxAnchorsToBoundsOrigin(t *testing.T) {
	// Default endpoints (0,0)-(1,0) in objectBoundingBox space: the
	// gradient's start point must land on the shape's own bounds
	// origin once composed with the bbox remap.
	img := &Image{}
	def := &gradientDef{}
	idx := bakeGradient(img, def, [4]float64{10, 20, 30, 50})
	g := img.Gradients[idx]
	p := g.orig.xform.Dot(Point{0, 0})
	test.That(t, math.Abs(p.X-10) < 1e-9)
	test.That(t, math.Abs(p.Y-20) < 1e-9)
}

func TestBakeGradientComposesGradientTransform(t *testing.T) {
	img := &Image{DPI: 96}
	def := &gradientDef{
		hasUnits: true, units: UserSpaceOnUse,
		hasX1: true, x1: Coordinate{0, UnitUser},
		hasX2: true, x2: Coordinate{1, UnitUser},
		hasXform: true, xform: Translate(100, 0),
	}
	idx := bakeGradient(img, def, [4]float64{0, 0, 1, 1})
	g := img.Gradients[idx]
	// gradientTransform is applied in the gradient's own local space,
	// before the (identity, here) objectBoundingBox/userSpace remap --
	// so the translated axis origin shows up directly.
	p := g.orig.xform.Dot(Point{0, 0})
	test.That(t, math.Abs(p.X-100) < 1e-9)
}

func TestResolveShapeGradientsUsesShapeBounds(t *testing.T) {
	img := &Image{
		Shapes: []Shape{
			{Fill: PaintOfRef("g"), Bounds: [4]float64{0, 0, 10, 10}},
			{Fill: PaintOfRef("g"), Bounds: [4]float64{20, 20, 30, 30}},
		},
	}
	defs := map[string]*gradientDef{"g": {id: "g", stops: []GradStop{
		{Offset: 0, Color: PaintOfColor(color.RGBA{A: 255})},
		{Offset: 1, Color: PaintOfColor(color.RGBA{R: 255, A: 255})},
	}}}
	resolveShapeGradients(img, defs)
	test.T(t, img.Shapes[0].Fill.Kind, PaintLinearGradient)
	test.T(t, img.Shapes[1].Fill.Kind, PaintLinearGradient)
	// Each shape must bake its own Gradient entry sized to its own bounds.
	test.That(t, img.Shapes[0].Fill.Gradient != img.Shapes[1].Fill.Gradient)
	test.T(t, len(img.Gradients), 2)
}
