package nanosvg

import "unsafe"

// LineJoin is the stroke-linejoin value of a Shape.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// LineCap is the stroke-linecap value of a Shape.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// FillRule is the fill-rule value of a Shape.
type FillRule uint8

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// shapeOrig is the immutable baseline snapshot of a Shape's animatable
// fields, captured once at parse time (spec.md §3).
type shapeOrig struct {
	opacity     float64
	fill        Paint
	stroke      Paint
	xform       Transform
	strokeWidth float64
	dashOffset  float64
	dashArray   [8]float64
	dashCount   int
}

// Shape is a single paintable element: id, fill/stroke paint, stroke
// metrics, a root transform, tight bounds, and the owned Paths that make
// up its geometry. Spec.md §3.
type Shape struct {
	ID    string
	Fill  Paint
	Stroke Paint

	Opacity     float64
	StrokeWidth float64
	DashOffset  float64
	DashArray   [8]float64
	DashCount   int

	LineJoin   LineJoin
	LineCap    LineCap
	MiterLimit float64
	FillRule   FillRule
	Visible    bool

	Xform  Transform
	Bounds [4]float64

	Paths []int // indices into Image.Paths, owned by this shape

	orig         shapeOrig
	StrokeScaled bool
}

// ShapeNode wraps a Shape (ShapeIdx == -1 for a group/<g>) in the parse
// tree. Sibling links and Parent are index pairs into Image.Nodes
// rather than pointers, per spec.md §9's arena design note.
type ShapeNode struct {
	ShapeIdx    int
	Depth       int
	Parent      int
	PrevSibling int
	NextSibling int
	Animates    []int // indices into Image.Animates, owned by this node
}

// gradientOrig is the baseline copy of a Gradient's transform.
type gradientOrig struct {
	xform Transform
}

// GradStop is one (offset, color) sample of a gradient, sorted
// ascending by offset after resolution (spec.md §3, §8 property 6).
type GradStop struct {
	Offset float64
	Color  Paint // always PaintColor after resolution
}

// GradientUnits selects the coordinate space gradient coordinates are
// expressed in.
type GradientUnits uint8

const (
	UserSpaceOnUse GradientUnits = iota
	ObjectBoundingBox
)

// SpreadMethod is the gradient spreadMethod attribute.
type SpreadMethod uint8

const (
	SpreadPad SpreadMethod = iota
	SpreadReflect
	SpreadRepeat
)

// Gradient holds a resolved linear or radial gradient: original
// unresolved endpoints, spread/units, stops sorted by offset, and the
// final baked transform (inverted, for shader-space lookup -- spec.md
// §4.7 step 4 and §4.8's "store the inverse in place").
type Gradient struct {
	Radial bool

	// Linear endpoints (only meaningful when !Radial).
	X1, Y1, X2, Y2 Coordinate

	// Radial center/radius/focus (only meaningful when Radial).
	CX, CY, R, FX, FY Coordinate

	Units  GradientUnits
	Spread SpreadMethod
	Xform  Transform // resolved, inverted shader transform
	Stops  []GradStop

	orig gradientOrig
}

// AnimateSeg is one animation segment, parsed from an <animate>/
// <animateTransform> descriptor and possibly one of several segments
// produced by a values/keyTimes expansion. Spec.md §3, §4.9, §4.10.
type AnimateSeg struct {
	BeginMs  int64
	DurMs    int64
	GroupDurMs int64
	RepeatCount int // -1 == indefinite

	Type AnimType

	CalcMode  CalcMode
	Additive  Additive
	Fill      FillMode

	Spline [4]float64 // only for CalcMode == CalcSpline

	Src     [10]float64
	SrcN    int
	Dst     [10]float64
	DstN    int

	// SegStartMs/SegEndMs bound this segment within one repeat cycle,
	// i.e. [BeginMs+SegStartMs, BeginMs+SegEndMs] is the segment's
	// absolute active window in the first cycle.
	SegStartMs int64
	SegEndMs   int64

	GroupFirst bool
	GroupLast  bool

	EndMs       int64 // 0 if unset
	RepeatDurMs int64 // 0 if unset
}

// AnimType is the attributeName/type an Animate targets.
type AnimType uint8

const (
	AnimTranslate AnimType = iota
	AnimScale
	AnimRotate
	AnimSkewX
	AnimSkewY
	AnimOpacity
	AnimFill
	AnimFillOpacity
	AnimStroke
	AnimStrokeOpacity
	AnimStrokeWidth
	AnimDashOffset
	AnimDashArray
)

// CalcMode is the calcMode attribute.
type CalcMode uint8

const (
	CalcLinear CalcMode = iota
	CalcDiscrete
	CalcPaced
	CalcSpline
)

// Additive is the additive attribute.
type Additive uint8

const (
	AdditiveReplace Additive = iota
	AdditiveSum
)

// FillMode is the animate fill attribute (remove/freeze).
type FillMode uint8

const (
	FillRemove FillMode = iota
	FillFreeze
)

// Align is one of {min,mid,max} for preserveAspectRatio alignment.
type Align uint8

const (
	AlignMin Align = iota
	AlignMid
	AlignMax
)

// AlignType is none/meet/slice for preserveAspectRatio.
type AlignType uint8

const (
	AlignNone AlignType = iota
	AlignMeet
	AlignSlice
)

// Image is the root of a parsed scene: declared size, viewBox, dpi,
// units, alignment, the arenas that own every Shape/Path/Gradient/
// Animate, and a running byte count (spec.md §3, §4.11).
type Image struct {
	Width, Height float64

	ViewMinX, ViewMinY, ViewWidth, ViewHeight float64
	HasViewBox                                bool

	DPI   float64
	Units Unit

	AlignX, AlignY Align
	AlignType      AlignType

	Nodes     []ShapeNode
	Shapes    []Shape
	Paths     []*Path
	Gradients []Gradient
	Animates  []AnimateSeg

	memorySize int64
}

// MemoryUsed returns the running byte count of every entity the Image
// owns, per spec.md §4.11's invariant.
func (img *Image) MemoryUsed() int64 { return img.memorySize }

func (img *Image) account(n int64) { img.memorySize += n }

// newPathRef allocates a new Path in the image's arena, accounting for
// its size, and returns its index.
func (img *Image) newPathRef(p *Path) int {
	img.Paths = append(img.Paths, p)
	img.account(int64(unsafe.Sizeof(*p)) + int64(cap(p.pts))*int64(unsafe.Sizeof(Point{})))
	return len(img.Paths) - 1
}

func (img *Image) newShapeRef(s Shape) int {
	img.Shapes = append(img.Shapes, s)
	img.account(int64(unsafe.Sizeof(s)))
	return len(img.Shapes) - 1
}

func (img *Image) newGradientRef(g Gradient) int {
	img.Gradients = append(img.Gradients, g)
	img.account(int64(unsafe.Sizeof(g)) + int64(cap(g.Stops))*int64(unsafe.Sizeof(GradStop{})))
	return len(img.Gradients) - 1
}

func (img *Image) newAnimateRef(a AnimateSeg) int {
	img.Animates = append(img.Animates, a)
	img.account(int64(unsafe.Sizeof(a)))
	return len(img.Animates) - 1
}

func (img *Image) newNodeRef(n ShapeNode) int {
	img.Nodes = append(img.Nodes, n)
	img.account(int64(unsafe.Sizeof(n)))
	return len(img.Nodes) - 1
}

