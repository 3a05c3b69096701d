package nanosvg

import "strings"

// attrFrame is one level of the attribute stack: the push/pop happens
// once per element, with inheritable fields copied from the parent and
// non-inheritable ones reset. Grounded on the teacher's svg.go, which
// keeps a similar running struct of "current" presentation values
// across the element stack instead of re-reading ancestors.
type attrFrame struct {
	fill          Paint
	fillOpacity   float64
	stroke        Paint
	strokeOpacity float64
	strokeWidth   Coordinate
	dashArray     [8]float64
	dashCount     int
	dashOffset    Coordinate
	lineJoin      LineJoin
	lineCap       LineCap
	miterLimit    float64
	fillRule      FillRule
	opacity       float64
	fontSize      Coordinate
	xform         Transform
	visible       bool
	display       bool // false => display:none, sticky for this subtree
	id            string
	stopColor     Paint
	stopOpacity   float64
	offset        float64
}

// defaultAttrFrame returns the SVG 1.1 initial presentation values
// (spec.md §4.5).
func defaultAttrFrame() attrFrame {
	return attrFrame{
		fill:          PaintOfColor(cssColors["black"]),
		fillOpacity:   1,
		stroke:        PaintOfNone(),
		strokeOpacity: 1,
		strokeWidth:   Coordinate{Value: 1, Unit: UnitPx},
		lineJoin:      JoinMiter,
		lineCap:       CapButt,
		miterLimit:    4,
		fillRule:      FillNonZero,
		opacity:       1,
		fontSize:      Coordinate{Value: 12, Unit: UnitPx},
		xform:         Identity,
		visible:       true,
		display:       true,
		stopOpacity:   1,
	}
}

// push returns a copy of f suitable as a child element's starting
// frame: id and the gradient-stop offset are element-local so they are
// cleared, everything else inherits by value copy (dashArray is a fixed array so the copy is
// automatic; no slice aliasing to worry about).
func (f attrFrame) push() attrFrame {
	child := f
	child.id = ""
	child.offset = 0
	return child
}

// applyStyleString parses an inline style="a:b;c:d" attribute and
// applies each declaration with the same semantics as the matching
// presentation attribute (spec.md §4.5).
func (f *attrFrame) applyStyleString(s string) {
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		f.applyAttr(strings.TrimSpace(k), strings.TrimSpace(v))
	}
}

// applyAttr dispatches one presentation attribute (or CSS property, the
// grammars coincide) into the frame, per spec.md §4.5's attribute list.
// Unknown names are ignored.
func (f *attrFrame) applyAttr(name, v string) {
	if v == "" {
		return
	}
	switch name {
	case "style":
		f.applyStyleString(v)
	case "display":
		if v == "none" {
			f.display = false
		}
	case "visibility":
		f.visible = v != "hidden" && v != "collapse"
	case "fill":
		f.fill = parsePaintValue(v)
	case "opacity":
		f.opacity = clamp01(parsePercentOrFloat(v))
	case "fill-opacity":
		f.fillOpacity = clamp01(parsePercentOrFloat(v))
	case "stroke":
		f.stroke = parsePaintValue(v)
	case "stroke-width":
		f.strokeWidth = parseCoordinate(v)
	case "stroke-dasharray":
		f.dashArray, f.dashCount = parseDashArray(v)
	case "stroke-dashoffset":
		f.dashOffset = parseCoordinate(v)
	case "stroke-opacity":
		f.strokeOpacity = clamp01(parsePercentOrFloat(v))
	case "stroke-linecap":
		f.lineCap = parseLineCap(v)
	case "stroke-linejoin":
		f.lineJoin = parseLineJoin(v)
	case "stroke-miterlimit":
		n, ok := parseFloat(v)
		if ok {
			f.miterLimit = n
		}
	case "fill-rule":
		if v == "evenodd" {
			f.fillRule = FillEvenOdd
		} else {
			f.fillRule = FillNonZero
		}
	case "font-size":
		f.fontSize = parseCoordinate(v)
	case "transform":
		f.xform = f.xform.Mul(parseTransformList(v))
	case "stop-color":
		if v == "none" {
			f.stopColor = PaintOfNone()
		} else {
			f.stopColor = PaintOfColor(parseColor(v))
		}
	case "stop-opacity":
		f.stopOpacity = clamp01(parsePercentOrFloat(v))
	case "offset":
		f.offset = clamp01(parsePercentOrFloat(v))
	case "id":
		f.id = v
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

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, n := scanNumber([]byte(s))
	return v, n > 0
}

// parsePercentOrFloat handles the opacity family's "0.5" or "50%" forms.
func parsePercentOrFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, _ := parseFloat(s[:len(s)-1])
		return v / 100.0
	}
	v, _ := parseFloat(s)
	return v
}

func parseLineCap(v string) LineCap {
	switch v {
	case "round":
		return CapRound
	case "square":
		return CapSquare
	}
	return CapButt
}

func parseLineJoin(v string) LineJoin {
	switch v {
	case "round":
		return JoinRound
	case "bevel":
		return JoinBevel
	}
	return JoinMiter
}

// parseDashArray parses a comma/whitespace separated dash list, capping
// at 8 entries per spec.md's fixed-size Shape.DashArray.
func parseDashArray(v string) ([8]float64, int) {
	var arr [8]float64
	if v == "none" {
		return arr, 0
	}
	n := 0
	b := []byte(v)
	i := 0
	for i < len(b) && n < 8 {
		i += skipSep(b[i:])
		if i >= len(b) {
			break
		}
		f, used := scanNumber(b[i:])
		if used == 0 {
			break
		}
		arr[n] = f
		n++
		i += used
	}
	return arr, n
}
