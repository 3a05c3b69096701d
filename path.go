package nanosvg

import "math"

// kappa90 approximates a quarter-circle arc with one cubic Bézier
// segment, per spec.md §4.4.
const kappa90 = 0.5522847493

// pathOrig is the immutable post-parse snapshot of a Path's animatable
// fields (spec.md §3: "orig.pts, orig.xform").
type pathOrig struct {
	pts   []Point
	xform Transform
}

// Path is an ordered sequence of cubic-Bézier segments stored as a flat
// point array: 1+3N points for N segments. See spec.md §3.
type Path struct {
	pts    []Point
	closed bool
	xform  Transform
	bounds [4]float64 // minx, miny, maxx, maxy

	orig   pathOrig
	scaled bool
}

// newPath returns an empty path positioned at the origin.
func newPath() *Path {
	return &Path{xform: Identity}
}

// Segments returns the number of cubic segments in the path.
func (p *Path) Segments() int {
	if len(p.pts) == 0 {
		return 0
	}
	return (len(p.pts) - 1) / 3
}

// Closed reports whether the path was closed with Z/z.
func (p *Path) Closed() bool { return p.closed }

// Bounds returns the path's tight bounding box [minx,miny,maxx,maxy].
func (p *Path) Bounds() [4]float64 { return p.bounds }

// Points returns the path's flat 1+3N control-point array, already
// transformed by its current (possibly animated) transform -- the
// representation an external rasterizer consumes directly.
func (p *Path) Points() []Point {
	out := make([]Point, len(p.pts))
	for i, pt := range p.pts {
		out[i] = p.xform.Dot(pt)
	}
	return out
}

func (p *Path) current() Point {
	if len(p.pts) == 0 {
		return Point{}
	}
	return p.pts[len(p.pts)-1]
}

// moveTo starts a new subpath at p. Invariant (npts-1)%3==0 is
// maintained by only ever appending in multiples of 3 after the first
// point.
func (p *Path) moveTo(pt Point) {
	p.pts = p.pts[:0]
	p.pts = append(p.pts, pt)
}

// cubeTo appends one cubic segment ending at p3, given control points
// p1, p2.
func (p *Path) cubeTo(p1, p2, p3 Point) {
	if len(p.pts) == 0 {
		p.pts = append(p.pts, Point{})
	}
	p.pts = append(p.pts, p1, p2, p3)
}

// lineTo appends a straight segment represented as a degenerate cubic
// with control points at 1/3 and 2/3 along the chord, so that Path's
// cubic-only invariant holds for every command.
func (p *Path) lineTo(pt Point) {
	p0 := p.current()
	p1 := Point{p0.X + (pt.X-p0.X)/3, p0.Y + (pt.Y-p0.Y)/3}
	p2 := Point{p0.X + 2*(pt.X-p0.X)/3, p0.Y + 2*(pt.Y-p0.Y)/3}
	p.cubeTo(p1, p2, pt)
}

// quadTo appends a quadratic Bézier lowered to cubic by the standard
// 2/3 control-point rule (spec.md §4.3).
func (p *Path) quadTo(c, pt Point) {
	p0 := p.current()
	p1 := Point{p0.X + 2.0/3.0*(c.X-p0.X), p0.Y + 2.0/3.0*(c.Y-p0.Y)}
	p2 := Point{pt.X + 2.0/3.0*(c.X-pt.X), pt.Y + 2.0/3.0*(c.Y-pt.Y)}
	p.cubeTo(p1, p2, pt)
}

// close injects a line to the first point of the subpath, if not
// already there, and marks the path closed (spec.md §4.3).
func (p *Path) close() {
	if len(p.pts) > 0 {
		first := p.pts[0]
		if !p.current().Equals(first) {
			p.lineTo(first)
		}
	}
	p.closed = true
}

func (a Point) Equals(b Point) bool {
	return a.X == b.X && a.Y == b.Y
}

// arcTo lowers an elliptical arc to a chain of at most ceil(|Δθ|/(π/2))
// cubic segments via center parameterization (SVG implementation note
// F.6), per spec.md §4.3.
func (p *Path) arcTo(rx, ry, rotDeg float64, large, sweep bool, end Point) {
	start := p.current()
	if rx < 0 {
		rx = -rx
	}
	if ry < 0 {
		ry = -ry
	}
	dx, dy := end.X-start.X, end.Y-start.Y
	d := math.Hypot(dx, dy)
	if d < 1e-6 || math.Abs(rx) < 1e-6 || math.Abs(ry) < 1e-6 {
		p.lineTo(end)
		return
	}

	cx, cy, theta1, theta2 := arcToCenter(start.X, start.Y, rx, ry, rotDeg, large, sweep, end.X, end.Y)
	rot := rotDeg * math.Pi / 180.0
	sinrot, cosrot := math.Sin(rot), math.Cos(rot)

	deltaTheta := theta2 - theta1
	nsegs := int(math.Ceil(math.Abs(deltaTheta) / (math.Pi / 2.0)))
	if nsegs < 1 {
		nsegs = 1
	}
	dtheta := deltaTheta / float64(nsegs)

	ellipsePoint := func(theta float64) Point {
		x := cx + rx*math.Cos(theta)*cosrot - ry*math.Sin(theta)*sinrot
		y := cy + rx*math.Cos(theta)*sinrot + ry*math.Sin(theta)*cosrot
		return Point{x, y}
	}
	ellipseTangent := func(theta float64) Point {
		x := -rx*math.Sin(theta)*cosrot - ry*math.Cos(theta)*sinrot
		y := -rx*math.Sin(theta)*sinrot + ry*math.Cos(theta)*cosrot
		return Point{x, y}
	}

	theta := theta1
	for i := 0; i < nsegs; i++ {
		thetaNext := theta + dtheta
		half := dtheta / 2.0
		var kappa float64
		if math.Abs(half) < 1e-3 {
			kappa = half * 2.0 / 3.0
		} else {
			kappa = (4.0 / 3.0) * (1 - math.Cos(half)) / math.Sin(half)
		}

		p0 := ellipsePoint(theta)
		p3 := ellipsePoint(thetaNext)
		t0 := ellipseTangent(theta)
		t1 := ellipseTangent(thetaNext)

		p1 := Point{p0.X + kappa*t0.X, p0.Y + kappa*t0.Y}
		p2 := Point{p3.X - kappa*t1.X, p3.Y - kappa*t1.Y}

		if i == nsegs-1 {
			p3 = end
		}
		p.cubeTo(p1, p2, p3)
		theta = thetaNext
	}
}

// arcToCenter converts SVG's endpoint arc parameterization to the
// center parameterization, per the W3C implementation note. Grounded on
// the teacher's path.go arcToCenter.
func arcToCenter(x1, y1, rx, ry, rotDeg float64, large, sweep bool, x2, y2 float64) (cx, cy, theta1, theta2 float64) {
	rot := rotDeg * math.Pi / 180.0
	sinr, cosr := math.Sin(rot), math.Cos(rot)

	x1p := cosr*(x1-x2)/2 + sinr*(y1-y2)/2
	y1p := -sinr*(x1-x2)/2 + cosr*(y1-y2)/2

	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		sq := math.Sqrt(lambda)
		rx *= sq
		ry *= sq
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	sq := 0.0
	if den != 0 {
		sq = num / den
	}
	if sq < 0 {
		sq = 0
	}
	co := math.Sqrt(sq)
	if large == sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := co * -ry * x1p / rx

	cx = cosr*cxp - sinr*cyp + (x1+x2)/2
	cy = sinr*cxp + cosr*cyp + (y1+y2)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		length := math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
		a := 0.0
		if length != 0 {
			r := dot / length
			if r < -1 {
				r = -1
			} else if r > 1 {
				r = 1
			}
			a = math.Acos(r)
		}
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 = angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	deltaTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && deltaTheta > 0 {
		deltaTheta -= 2 * math.Pi
	} else if sweep && deltaTheta < 0 {
		deltaTheta += 2 * math.Pi
	}
	theta2 = theta1 + deltaTheta
	return
}

// computeBounds recomputes the tight bounding box of every cubic
// segment by solving for the extrema of the Bézier's derivative on each
// axis, then applies the path's current transform.
func (p *Path) computeBounds() {
	if len(p.pts) < 4 {
		if len(p.pts) == 1 {
			tp := p.xform.Dot(p.pts[0])
			p.bounds = [4]float64{tp.X, tp.Y, tp.X, tp.Y}
		} else {
			p.bounds = [4]float64{}
		}
		return
	}
	minx, miny := math.Inf(1), math.Inf(1)
	maxx, maxy := math.Inf(-1), math.Inf(-1)
	expand := func(pt Point) {
		tp := p.xform.Dot(pt)
		if tp.X < minx {
			minx = tp.X
		}
		if tp.X > maxx {
			maxx = tp.X
		}
		if tp.Y < miny {
			miny = tp.Y
		}
		if tp.Y > maxy {
			maxy = tp.Y
		}
	}
	n := p.Segments()
	for i := 0; i < n; i++ {
		p0 := p.pts[i*3]
		p1 := p.pts[i*3+1]
		p2 := p.pts[i*3+2]
		p3 := p.pts[i*3+3]
		expand(p0)
		expand(p3)
		for _, t := range cubicExtremaT(p0.X, p1.X, p2.X, p3.X) {
			expand(cubicPointAt(p0, p1, p2, p3, t))
		}
		for _, t := range cubicExtremaT(p0.Y, p1.Y, p2.Y, p3.Y) {
			expand(cubicPointAt(p0, p1, p2, p3, t))
		}
	}
	p.bounds = [4]float64{minx, miny, maxx, maxy}
}

// cubicExtremaT returns the roots in (0,1) of the derivative of the
// cubic Bézier with the given single-axis control values.
func cubicExtremaT(c0, c1, c2, c3 float64) []float64 {
	a := -c0 + 3*c1 - 3*c2 + c3
	b := 2 * (c0 - 2*c1 + c2)
	c := c1 - c0
	var roots []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			t := -c / b
			if t > 0 && t < 1 {
				roots = append(roots, t)
			}
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	return roots
}

func cubicPointAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	x := mt*mt*mt*p0.X + 3*mt*mt*t*p1.X + 3*mt*t*t*p2.X + t*t*t*p3.X
	y := mt*mt*mt*p0.Y + 3*mt*mt*t*p1.Y + 3*mt*t*t*p2.Y + t*t*t*p3.Y
	return Point{x, y}
}

// applyTransform replaces every control point with its image under t,
// and sets the path's transform to identity, baking t into point
// storage.
func (p *Path) applyTransform(t Transform) {
	for i := range p.pts {
		p.pts[i] = t.Dot(p.pts[i])
	}
	p.xform = Identity
}

// clone returns a deep copy, used to build the immutable baseline and
// to reset a path's live points from it.
func (p *Path) clone() *Path {
	cp := *p
	cp.pts = append([]Point(nil), p.pts...)
	return &cp
}

// resetFromBaseline copies orig.pts through orig.xform back into the
// live fields, per spec.md §4.10 step 1.
func (p *Path) resetFromBaseline() {
	p.pts = append(p.pts[:0], p.orig.pts...)
	p.xform = p.orig.xform
	p.scaled = false
}

// captureBaseline snapshots the current points/xform as the immutable
// baseline. Must be called exactly once, at parse time, per spec.md §3.
func (p *Path) captureBaseline() {
	p.orig.pts = append([]Point(nil), p.pts...)
	p.orig.xform = p.xform
}
