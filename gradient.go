package nanosvg

import (
	"math"
	"sort"
)

// gradientDef is the raw, unresolved gradient data collected while
// walking <linearGradient>/<radialGradient> elements, before href
// chains are followed and local transforms are baked. Grounded on
// benoitkugler-oksvg's gradient.go two-pass collect/resolve split.
type gradientDef struct {
	id     string
	radial bool

	hasX1, hasY1, hasX2, hasY2       bool
	x1, y1, x2, y2                   Coordinate
	hasCX, hasCY, hasR, hasFX, hasFY bool
	cx, cy, r, fx, fy                Coordinate

	hasUnits  bool
	units     GradientUnits
	hasSpread bool
	spread    SpreadMethod
	hasXform  bool
	xform     Transform

	href string // target id of xlink:href, "" if none

	stops []GradStop
}

// resolveShapeGradients walks every Shape's fill/stroke Paint and, for
// each unresolved url(#id) reference, chases the href chain and bakes a
// Gradient using that shape's own final (post-viewBox) bounds -- an
// objectBoundingBox gradient depends on the bounding box of whichever
// element references it, so (unlike most of this package's arenas) a
// gradient definition referenced by two shapes bakes to two distinct
// Image.Gradients entries. Spec.md §4.7, §4.8.
func resolveShapeGradients(img *Image, defs map[string]*gradientDef) {
	for i := range img.Shapes {
		bb := img.Shapes[i].Bounds
		patch := func(p *Paint) {
			if p.Kind != PaintUndefined {
				return
			}
			*p = resolvePaintRef(img, defs, p.RefID, bb)
		}
		patch(&img.Shapes[i].Fill)
		patch(&img.Shapes[i].Stroke)
	}
}

func resolvePaintRef(img *Image, defs map[string]*gradientDef, id string, bounds [4]float64) Paint {
	def, ok := defs[id]
	if !ok {
		return PaintOfNone()
	}
	merged := chaseGradientHrefs(defs, def, []string{id})
	if len(merged.stops) == 0 {
		return PaintOfNone()
	}
	idx := bakeGradient(img, merged, bounds)
	if def.radial {
		return Paint{Kind: PaintRadialGradient, Gradient: idx}
	}
	return Paint{Kind: PaintLinearGradient, Gradient: idx}
}

// chaseGradientHrefs walks the href chain (cycle-safe, capped at 32
// hops per spec.md §4.7) merging each ancestor's unset fields into the
// accumulator, nearest ancestor first.
func chaseGradientHrefs(defs map[string]*gradientDef, def *gradientDef, seen []string) *gradientDef {
	acc := def
	cur := def
	for len(seen) < 32 && cur.href != "" {
		parent, ok := defs[cur.href]
		if !ok {
			break
		}
		visited := false
		for _, s := range seen {
			if s == cur.href {
				visited = true
				break
			}
		}
		if visited {
			break
		}
		acc = mergeGradientDef(acc, parent)
		seen = append(seen, cur.href)
		cur = parent
	}
	return acc
}

// mergeGradientDef fills any field left unset in child with parent's
// value, per spec.md §4.7's href inheritance rule.
func mergeGradientDef(child, parent *gradientDef) *gradientDef {
	m := *child
	if !m.hasX1 && parent.hasX1 {
		m.x1, m.hasX1 = parent.x1, true
	}
	if !m.hasY1 && parent.hasY1 {
		m.y1, m.hasY1 = parent.y1, true
	}
	if !m.hasX2 && parent.hasX2 {
		m.x2, m.hasX2 = parent.x2, true
	}
	if !m.hasY2 && parent.hasY2 {
		m.y2, m.hasY2 = parent.y2, true
	}
	if !m.hasCX && parent.hasCX {
		m.cx, m.hasCX = parent.cx, true
	}
	if !m.hasCY && parent.hasCY {
		m.cy, m.hasCY = parent.cy, true
	}
	if !m.hasR && parent.hasR {
		m.r, m.hasR = parent.r, true
	}
	if !m.hasFX && parent.hasFX {
		m.fx, m.hasFX = parent.fx, true
	}
	if !m.hasFY && parent.hasFY {
		m.fy, m.hasFY = parent.fy, true
	}
	if !m.hasUnits && parent.hasUnits {
		m.units, m.hasUnits = parent.units, true
	}
	if !m.hasSpread && parent.hasSpread {
		m.spread, m.hasSpread = parent.spread, true
	}
	if !m.hasXform && parent.hasXform {
		m.xform, m.hasXform = parent.xform, true
	}
	if len(m.stops) == 0 {
		m.stops = parent.stops
	}
	return &m
}

// bakeGradient applies default endpoints/units/spread, sorts stops,
// computes the local gradient-space transform (including the
// objectBoundingBox remap when applicable), composes it with any
// gradientTransform, inverts it for shader-space lookup, and registers
// the Gradient in img.Gradients. bounds is the referencing shape's
// final bounding box, used only when units == ObjectBoundingBox.
func bakeGradient(img *Image, def *gradientDef, bounds [4]float64) int {
	g := Gradient{Radial: def.radial}
	if def.hasUnits {
		g.Units = def.units
	} else {
		g.Units = ObjectBoundingBox
	}
	if def.hasSpread {
		g.Spread = def.spread
	} else {
		g.Spread = SpreadPad
	}

	if g.Radial {
		g.CX = coordOrDefault(def.hasCX, def.cx, 0.5, g.Units)
		g.CY = coordOrDefault(def.hasCY, def.cy, 0.5, g.Units)
		g.R = coordOrDefault(def.hasR, def.r, 0.5, g.Units)
		if def.hasFX {
			g.FX = def.fx
		} else {
			g.FX = g.CX
		}
		if def.hasFY {
			g.FY = def.fy
		} else {
			g.FY = g.CY
		}
	} else {
		g.X1 = coordOrDefault(def.hasX1, def.x1, 0, g.Units)
		g.Y1 = coordOrDefault(def.hasY1, def.y1, 0, g.Units)
		g.X2 = coordOrDefault(def.hasX2, def.x2, 1, g.Units)
		g.Y2 = coordOrDefault(def.hasY2, def.y2, 0, g.Units)
	}

	stops := append([]GradStop(nil), def.stops...)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
	// SVG stop offsets must be monotonic; clamp any regression forward.
	for i := 1; i < len(stops); i++ {
		if stops[i].Offset < stops[i-1].Offset {
			stops[i].Offset = stops[i-1].Offset
		}
	}
	g.Stops = stops

	// ox/oy/sw/sh is the coordinate space g.X1..g.R are expressed in:
	// fractions of the unit square for objectBoundingBox (where a bare
	// UnitUser value like "0.5" already is the fraction, same as
	// nanosvg.h's nsvg__convertToPixels returning c.value unchanged for
	// NSVG_UNITS_USER), or the document viewport for userSpaceOnUse.
	var ox, oy, sw, sh float64
	local := Identity
	if g.Units == ObjectBoundingBox {
		sw, sh = bounds[2]-bounds[0], bounds[3]-bounds[1]
		local = Translate(bounds[0], bounds[1]).Mul(Scale(sw, sh))
	} else {
		ox, oy, sw, sh = img.gradientViewport()
	}
	sl := math.Hypot(sw, sh) / math.Sqrt2

	var axis Transform
	if g.Radial {
		cx := g.CX.ToPixels(img.DPI, ox, sw, 0)
		cy := g.CY.ToPixels(img.DPI, oy, sh, 0)
		r := g.R.ToPixels(img.DPI, 0, sl, 0)
		axis = Transform{r, 0, 0, r, cx, cy}
	} else {
		x1 := g.X1.ToPixels(img.DPI, ox, sw, 0)
		y1 := g.Y1.ToPixels(img.DPI, oy, sh, 0)
		x2 := g.X2.ToPixels(img.DPI, ox, sw, 0)
		y2 := g.Y2.ToPixels(img.DPI, oy, sh, 0)
		dx, dy := x2-x1, y2-y1
		// Align x-axis to (dx,dy), then rotate 90 degrees (spec.md
		// §4.7 step 3 / nanosvg.h:1175-1177): the gradient's sampling
		// axis ends up running along the *second* column, not the
		// first.
		axis = Transform{dy, -dx, dx, dy, x1, y1}
	}

	xform := axis
	if def.hasXform {
		xform = def.xform.Mul(xform)
	}
	xform = local.Mul(xform)
	g.orig.xform = xform
	if xform.Det() != 0 {
		g.Xform = xform.Inv()
	} else {
		g.Xform = Identity
	}

	return img.newGradientRef(g)
}

// gradientViewport returns the origin and extent userSpaceOnUse
// gradient coordinates (and their percentages) are resolved against:
// the document's viewBox if it declared one, else its pixel size
// (nanosvg.h:3810-3823 falls back to image width/height the same way
// when no viewBox was present).
func (img *Image) gradientViewport() (ox, oy, sw, sh float64) {
	if img.HasViewBox {
		return img.ViewMinX, img.ViewMinY, img.ViewWidth, img.ViewHeight
	}
	return 0, 0, img.Width, img.Height
}

func coordOrDefault(has bool, v Coordinate, def float64, units GradientUnits) Coordinate {
	if has {
		return v
	}
	if units == ObjectBoundingBox {
		return Coordinate{Value: def, Unit: UnitUser}
	}
	return Coordinate{Value: def * 100, Unit: UnitPercent}
}
