package nanosvg

import (
	"io"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// docParser is the single-pass XML driver: it walks the token stream
// with a stack of attrFrame values (one per open element) and a
// parallel node-tree stack, building the Image's Shapes/Paths/Gradients
// as it goes. Grounded on the teacher's svgParser/ParseSVG in svg.go --
// same z/l/tt/data token loop and push-per-StartTagToken,
// pop-per-EndTagToken structure, generalized from canvas-building to
// scene-graph-building.
type docParser struct {
	img *Image

	frames    []attrFrame
	nodeStack []int
	pushed    []bool
	lastChild map[int]int

	inDefsDepth int
	gradStack   []*gradientDef
	defs        map[string]*gradientDef

	styleCollecting bool
	styleBuf        strings.Builder
	cascade         []cssRule

	vpW, vpH, vpDiag, dpi float64
	haveRoot               bool
}

// ParseSVG parses an SVG document from r into a new Image, resolving
// gradients and baking the viewBox/preserveAspectRatio transform before
// returning. dpi controls unit conversion for pt/pc/mm/cm/in (spec.md
// §4.2); 96 is the conventional CSS default.
func ParseSVG(r io.Reader, dpi float64) (*Image, error) {
	if dpi <= 0 {
		dpi = 96
	}
	img := &Image{DPI: dpi, AlignX: AlignMid, AlignY: AlignMid, AlignType: AlignMeet}
	p := &docParser{
		img:       img,
		defs:      map[string]*gradientDef{},
		lastChild: map[int]int{},
		dpi:       dpi,
	}
	p.frames = append(p.frames, defaultAttrFrame())

	z := parse.NewInput(r)
	defer z.Restore()
	l := xml.NewLexer(z)

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return img, l.Err()
			}
			p.finish()
			return img, nil
		case xml.StartTagToken:
			tag := string(data[1:])
			attrs := map[string]string{}
			var closeTT xml.TokenType
			for {
				closeTT, _ = l.Next()
				if closeTT != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if len(val) >= 2 {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}
			p.startElement(tag, attrs)
			if closeTT == xml.StartTagCloseVoidToken {
				p.endElement(tag)
			}
		case xml.TextToken:
			if p.styleCollecting {
				p.styleBuf.Write(data)
			}
		case xml.EndTagToken:
			tag := strings.Trim(string(data), "</>")
			p.endElement(tag)
		}
	}
}

func (p *docParser) topFrame() *attrFrame { return &p.frames[len(p.frames)-1] }

func (p *docParser) curNode() int {
	if len(p.nodeStack) == 0 {
		return -1
	}
	return p.nodeStack[len(p.nodeStack)-1]
}

func (p *docParser) fontSizePx() float64 {
	parent := 16.0
	if len(p.frames) > 1 {
		parent = p.frames[len(p.frames)-2].fontSize.ToPixels(p.dpi, 0, 16, 16)
	}
	return p.topFrame().fontSize.ToPixels(p.dpi, 0, parent, parent)
}

func (p *docParser) px(c Coordinate, origin, length float64) float64 {
	return c.ToPixels(p.dpi, origin, length, p.fontSizePx())
}

// startElement applies the new frame, dispatches element-specific
// construction, and (for anything that participates in the scene tree)
// pushes a ShapeNode.
func (p *docParser) startElement(tag string, attrs map[string]string) {
	parent := p.topFrame().push()
	p.frames = append(p.frames, parent)
	frame := p.topFrame()

	for name, v := range attrs {
		switch name {
		case "style", "class", "id", "d", "points", "x", "y", "width", "height",
			"cx", "cy", "r", "rx", "ry", "x1", "y1", "x2", "y2",
			"viewBox", "preserveAspectRatio", "xlink:href", "href",
			"gradientUnits", "gradientTransform", "spreadMethod", "fx", "fy",
			"attributeName", "type", "from", "to", "by", "values", "keyTimes",
			"keySplines", "dur", "begin", "end", "repeatCount", "repeatDur",
			"calcMode", "additive", "fill-opacity-ignore":
			continue
		}
		frame.applyAttr(name, v)
	}
	classes := strings.Fields(attrs["class"])
	if id, ok := attrs["id"]; ok {
		frame.id = id
	}
	applyCascade(p.cascade, tag, frame.id, classes, frame)
	if s, ok := attrs["style"]; ok {
		frame.applyStyleString(s)
	}

	pushNode := false
	shapeIdx := -1

	switch tag {
	case "svg":
		if !p.haveRoot {
			p.configureRoot(attrs)
			p.haveRoot = true
		}
		pushNode = true
	case "g", "a", "switch", "symbol":
		pushNode = true
	case "defs":
		p.inDefsDepth++
	case "linearGradient", "radialGradient":
		p.gradStack = append(p.gradStack, p.newGradientDef(tag, attrs))
	case "stop":
		p.addGradientStop(frame)
	case "style":
		p.styleCollecting = true
		p.styleBuf.Reset()
	case "rect", "circle", "ellipse", "line", "polyline", "polygon", "path":
		if p.inDefsDepth == 0 {
			shapeIdx = p.buildShape(tag, attrs, frame)
			pushNode = true
		}
	case "animate", "animateTransform":
		p.buildAnimate(tag, attrs)
	default:
		pushNode = true
	}

	p.pushed = append(p.pushed, pushNode)
	if pushNode {
		nodeIdx := p.img.newNodeRef(ShapeNode{ShapeIdx: shapeIdx, Parent: p.curNode()})
		if parentIdx := p.curNode(); parentIdx >= 0 {
			if last, ok := p.lastChild[parentIdx]; ok {
				p.img.Nodes[last].NextSibling = nodeIdx
				p.img.Nodes[nodeIdx].PrevSibling = last
			}
		}
		p.img.Nodes[nodeIdx].Depth = len(p.nodeStack)
		p.lastChild[p.curNode()] = nodeIdx
		p.nodeStack = append(p.nodeStack, nodeIdx)
	}
}

func (p *docParser) endElement(tag string) {
	if tag == "style" && p.styleCollecting {
		p.cascade = append(p.cascade, parseStyleBlock(p.styleBuf.String())...)
		p.styleCollecting = false
	}
	switch tag {
	case "defs":
		if p.inDefsDepth > 0 {
			p.inDefsDepth--
		}
	case "linearGradient", "radialGradient":
		if n := len(p.gradStack); n > 0 {
			def := p.gradStack[n-1]
			p.gradStack = p.gradStack[:n-1]
			if def.id != "" {
				p.defs[def.id] = def
			}
		}
	}
	if n := len(p.pushed); n > 0 {
		if p.pushed[n-1] && len(p.nodeStack) > 0 {
			p.nodeStack = p.nodeStack[:len(p.nodeStack)-1]
		}
		p.pushed = p.pushed[:n-1]
	}
	if len(p.frames) > 1 {
		p.frames = p.frames[:len(p.frames)-1]
	}
}

// configureRoot reads the root <svg>'s width/height/viewBox/
// preserveAspectRatio, defaulting per spec.md §4.1.
func (p *docParser) configureRoot(attrs map[string]string) {
	img := p.img
	if vb, ok := attrs["viewBox"]; ok {
		nums := parseFloatList(vb)
		if len(nums) == 4 {
			img.ViewMinX, img.ViewMinY, img.ViewWidth, img.ViewHeight = nums[0], nums[1], nums[2], nums[3]
			img.HasViewBox = true
		}
	}
	if par, ok := attrs["preserveAspectRatio"]; ok {
		img.AlignX, img.AlignY, img.AlignType = parsePreserveAspectRatio(par)
	}
	if w, ok := attrs["width"]; ok {
		img.Width = parseCoordinate(w).ToPixels(p.dpi, 0, img.ViewWidth, p.fontSizePx())
	} else if img.HasViewBox {
		img.Width = img.ViewWidth
	}
	if h, ok := attrs["height"]; ok {
		img.Height = parseCoordinate(h).ToPixels(p.dpi, 0, img.ViewHeight, p.fontSizePx())
	} else if img.HasViewBox {
		img.Height = img.ViewHeight
	}
	p.vpW, p.vpH = img.Width, img.Height
	if img.HasViewBox {
		p.vpW, p.vpH = img.ViewWidth, img.ViewHeight
	}
	p.vpDiag = math.Hypot(p.vpW, p.vpH) / math.Sqrt2
}

func (p *docParser) buildShape(tag string, attrs map[string]string, frame *attrFrame) int {
	var paths []*Path
	switch tag {
	case "rect":
		x := p.px(parseCoordinate(attrs["x"]), 0, p.vpW)
		y := p.px(parseCoordinate(attrs["y"]), 0, p.vpH)
		w := p.px(parseCoordinate(attrs["width"]), 0, p.vpW)
		h := p.px(parseCoordinate(attrs["height"]), 0, p.vpH)
		rx := p.px(parseCoordinate(attrs["rx"]), 0, p.vpW)
		ry := p.px(parseCoordinate(attrs["ry"]), 0, p.vpH)
		paths = buildRect(x, y, w, h, rx, ry)
	case "circle":
		cx := p.px(parseCoordinate(attrs["cx"]), 0, p.vpW)
		cy := p.px(parseCoordinate(attrs["cy"]), 0, p.vpH)
		r := p.px(parseCoordinate(attrs["r"]), 0, p.vpDiag)
		paths = buildCircle(cx, cy, r)
	case "ellipse":
		cx := p.px(parseCoordinate(attrs["cx"]), 0, p.vpW)
		cy := p.px(parseCoordinate(attrs["cy"]), 0, p.vpH)
		rx := p.px(parseCoordinate(attrs["rx"]), 0, p.vpW)
		ry := p.px(parseCoordinate(attrs["ry"]), 0, p.vpH)
		paths = buildEllipse(cx, cy, rx, ry)
	case "line":
		x1 := p.px(parseCoordinate(attrs["x1"]), 0, p.vpW)
		y1 := p.px(parseCoordinate(attrs["y1"]), 0, p.vpH)
		x2 := p.px(parseCoordinate(attrs["x2"]), 0, p.vpW)
		y2 := p.px(parseCoordinate(attrs["y2"]), 0, p.vpH)
		paths = buildLine(x1, y1, x2, y2)
	case "polyline", "polygon":
		paths = buildPolyline(parseFloatList(attrs["points"]), tag == "polygon")
	case "path":
		paths = parsePathData(attrs["d"])
	}
	if len(paths) == 0 {
		return -1
	}

	shape := Shape{
		ID:          frame.id,
		Opacity:     frame.opacity,
		StrokeWidth: p.px(frame.strokeWidth, 0, p.vpDiag),
		DashOffset:  p.px(frame.dashOffset, 0, p.vpDiag),
		DashArray:   frame.dashArray,
		DashCount:   frame.dashCount,
		LineJoin:    frame.lineJoin,
		LineCap:     frame.lineCap,
		MiterLimit:  frame.miterLimit,
		FillRule:    frame.fillRule,
		Visible:     frame.visible && frame.display,
		Xform:       frame.xform,
	}
	shape.Fill = bakeAlpha(frame.fill, frame.fillOpacity)
	shape.Stroke = bakeAlpha(frame.stroke, frame.strokeOpacity)

	for _, pt := range paths {
		pt.xform = frame.xform
		pt.captureBaseline()
		pt.computeBounds()
		shape.Paths = append(shape.Paths, p.img.newPathRef(pt))
	}
	shape.Bounds = unionPathBounds(p.img, shape.Paths)
	shape.orig = shapeOrig{
		opacity:     shape.Opacity,
		fill:        shape.Fill,
		stroke:      shape.Stroke,
		xform:       shape.Xform,
		strokeWidth: shape.StrokeWidth,
		dashOffset:  shape.DashOffset,
		dashArray:   shape.DashArray,
		dashCount:   shape.DashCount,
	}
	return p.img.newShapeRef(shape)
}

// bakeAlpha combines an opacity value (0..1) into a PaintColor's alpha
// channel; gradient/none paints pass through unchanged since opacity
// for those is applied by the rasterizer collaborator per-stop/overall.
func bakeAlpha(paint Paint, opacity float64) Paint {
	if paint.Kind != PaintColor {
		return paint
	}
	a := float64(paint.Color.A) * clamp01(opacity)
	return paint.withAlpha(clamp255(a))
}

func (p *docParser) newGradientDef(tag string, attrs map[string]string) *gradientDef {
	def := &gradientDef{id: attrs["id"], radial: tag == "radialGradient"}
	if href, ok := attrs["xlink:href"]; ok {
		def.href = strings.TrimPrefix(href, "#")
	} else if href, ok := attrs["href"]; ok {
		def.href = strings.TrimPrefix(href, "#")
	}
	if v, ok := attrs["gradientUnits"]; ok {
		def.hasUnits = true
		if v == "userSpaceOnUse" {
			def.units = UserSpaceOnUse
		} else {
			def.units = ObjectBoundingBox
		}
	}
	if v, ok := attrs["spreadMethod"]; ok {
		def.hasSpread = true
		switch v {
		case "reflect":
			def.spread = SpreadReflect
		case "repeat":
			def.spread = SpreadRepeat
		default:
			def.spread = SpreadPad
		}
	}
	if v, ok := attrs["gradientTransform"]; ok {
		def.hasXform = true
		def.xform = parseTransformList(v)
	}
	if def.radial {
		if v, ok := attrs["cx"]; ok {
			def.hasCX, def.cx = true, parseCoordinate(v)
		}
		if v, ok := attrs["cy"]; ok {
			def.hasCY, def.cy = true, parseCoordinate(v)
		}
		if v, ok := attrs["r"]; ok {
			def.hasR, def.r = true, parseCoordinate(v)
		}
		if v, ok := attrs["fx"]; ok {
			def.hasFX, def.fx = true, parseCoordinate(v)
		}
		if v, ok := attrs["fy"]; ok {
			def.hasFY, def.fy = true, parseCoordinate(v)
		}
	} else {
		if v, ok := attrs["x1"]; ok {
			def.hasX1, def.x1 = true, parseCoordinate(v)
		}
		if v, ok := attrs["y1"]; ok {
			def.hasY1, def.y1 = true, parseCoordinate(v)
		}
		if v, ok := attrs["x2"]; ok {
			def.hasX2, def.x2 = true, parseCoordinate(v)
		}
		if v, ok := attrs["y2"]; ok {
			def.hasY2, def.y2 = true, parseCoordinate(v)
		}
	}
	return def
}

func (p *docParser) addGradientStop(frame *attrFrame) {
	if len(p.gradStack) == 0 {
		return
	}
	def := p.gradStack[len(p.gradStack)-1]
	rgba := cssColors["black"] // stop-color's SVG initial value
	if frame.stopColor.Kind == PaintColor {
		rgba = frame.stopColor.Color
	}
	rgba.A = clamp255(frame.stopOpacity * 255)
	def.stops = append(def.stops, GradStop{Offset: clamp01(frame.offset), Color: PaintOfColor(rgba)})
}

func (p *docParser) buildAnimate(tag string, attrs map[string]string) {
	node := p.curNode()
	if node < 0 || p.inDefsDepth > 0 {
		return
	}
	var d animDesc
	d.repeatCount = 0
	for name, v := range attrs {
		d.parseAnimateAttr(name, v)
	}
	idxs := buildAnimates(p.img, d, tag == "animateTransform")
	if len(idxs) == 0 {
		return
	}
	p.img.Nodes[node].Animates = append(p.img.Nodes[node].Animates, idxs...)
}

// finish bakes the viewBox/preserveAspectRatio transform and resolves
// every shape's gradient references, once the whole document has been
// read (spec.md §4.2, §4.7).
func (p *docParser) finish() {
	img := p.img
	if img.HasViewBox {
		t := computeViewBoxTransform(img.ViewMinX, img.ViewMinY, img.ViewWidth, img.ViewHeight, img.Width, img.Height, img.AlignX, img.AlignY, img.AlignType)
		applySceneTransform(img, t)
	} else {
		for i := range img.Shapes {
			img.Shapes[i].orig.xform = img.Shapes[i].Xform
		}
	}
	resolveShapeGradients(img, p.defs)
}
