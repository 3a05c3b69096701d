package nanosvg

import "math"

// Point is a coordinate in 2D space.
type Point struct {
	X, Y float64
}

// Transform is a 2x3 affine matrix [a b c d e f] mapping (x,y) to
// (a*x+c*y+e, b*x+d*y+f). Identity is the zero-value-free identity
// transform.
type Transform [6]float64

// Identity is the identity transform.
var Identity = Transform{1, 0, 0, 1, 0, 0}

// Mul returns the matrix product t·s: the result maps a point through s
// first and then through t.
func (t Transform) Mul(s Transform) Transform {
	return Transform{
		t[0]*s[0] + t[2]*s[1],
		t[1]*s[0] + t[3]*s[1],
		t[0]*s[2] + t[2]*s[3],
		t[1]*s[2] + t[3]*s[3],
		t[0]*s[4] + t[2]*s[5] + t[4],
		t[1]*s[4] + t[3]*s[5] + t[5],
	}
}

// Premultiply composes s on the left: it returns s.Mul(t), which maps a
// point through t first and then through s. The transform-list parser
// does not use it; it accumulates with Mul.
func Premultiply(t, s Transform) Transform {
	return s.Mul(t)
}

// Dot applies the transform to a point.
func (t Transform) Dot(p Point) Point {
	return Point{
		t[0]*p.X + t[2]*p.Y + t[4],
		t[1]*p.X + t[3]*p.Y + t[5],
	}
}

func Translate(x, y float64) Transform {
	return Transform{1, 0, 0, 1, x, y}
}

func Scale(x, y float64) Transform {
	return Transform{x, 0, 0, y, 0, 0}
}

func Rotate(deg float64) Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Transform{c, s, -s, c, 0, 0}
}

// RotateAbout lowers rotate(a,cx,cy) to translate(cx,cy)*rotate(a)*translate(-cx,-cy)
// per spec.md §4.5.
func RotateAbout(deg, cx, cy float64) Transform {
	return Translate(cx, cy).Mul(Rotate(deg)).Mul(Translate(-cx, -cy))
}

func SkewX(deg float64) Transform {
	return Transform{1, 0, math.Tan(deg * math.Pi / 180), 1, 0, 0}
}

func SkewY(deg float64) Transform {
	return Transform{1, math.Tan(deg * math.Pi / 180), 0, 1, 0, 0}
}

func Matrix(a, b, c, d, e, f float64) Transform {
	return Transform{a, b, c, d, e, f}
}

// Det returns the determinant of the linear part of t.
func (t Transform) Det() float64 {
	return t[0]*t[3] - t[2]*t[1]
}

// Inv returns the inverse transform. It does not check for a singular t:
// a zero determinant yields Inf/NaN entries rather than a panic.
func (t Transform) Inv() Transform {
	det := t.Det()
	return Transform{
		t[3] / det,
		-t[1] / det,
		-t[2] / det,
		t[0] / det,
		(t[2]*t[5] - t[3]*t[4]) / det,
		(t[1]*t[4] - t[0]*t[5]) / det,
	}
}

// AverageScale returns the average of the magnitudes of the two
// transform axes, used by spec.md §4.10 to rescale stroke widths after
// an animated or viewBox transform is applied.
func (t Transform) AverageScale() float64 {
	sx := math.Hypot(t[0], t[1])
	sy := math.Hypot(t[2], t[3])
	return (sx + sy) / 2
}

// parseTransformList parses the SVG transform="..." attribute grammar:
// a sequence of matrix/translate/scale/rotate/skewX/skewY functions,
// composed in document order by right-multiplying each onto the
// accumulator (m = m.Mul(f)), so the last function listed is applied to
// a point first (spec.md §4.5).
func parseTransformList(v string) Transform {
	m := Identity
	b := []byte(v)
	i, j := 0, 0
	fun := ""
	for i < len(b) {
		switch b[i] {
		case '(':
			fun = trimLower(string(b[j:i]))
			j = i + 1
		case ')':
			args := parseFloatList(string(b[j:i]))
			switch fun {
			case "matrix":
				if len(args) == 6 {
					m = m.Mul(Matrix(args[0], args[1], args[2], args[3], args[4], args[5]))
				}
			case "translate":
				if len(args) == 1 {
					m = m.Mul(Translate(args[0], 0))
				} else if len(args) == 2 {
					m = m.Mul(Translate(args[0], args[1]))
				}
			case "scale":
				if len(args) == 1 {
					m = m.Mul(Scale(args[0], args[0]))
				} else if len(args) == 2 {
					m = m.Mul(Scale(args[0], args[1]))
				}
			case "rotate":
				if len(args) == 1 {
					m = m.Mul(Rotate(args[0]))
				} else if len(args) == 3 {
					m = m.Mul(RotateAbout(args[0], args[1], args[2]))
				}
			case "skewx":
				if len(args) == 1 {
					m = m.Mul(SkewX(args[0]))
				}
			case "skewy":
				if len(args) == 1 {
					m = m.Mul(SkewY(args[0]))
				}
			}
			j = i + 1
		}
		i++
	}
	return m
}

func trimLower(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	s = s[i:j]
	out := make([]byte, len(s))
	for k := 0; k < len(s); k++ {
		c := s[k]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[k] = c
	}
	return string(out)
}

// parseFloatList parses a whitespace/comma separated list of numbers,
// used for transform() arguments and polyline/polygon "points".
func parseFloatList(s string) []float64 {
	b := []byte(s)
	var out []float64
	for i := 0; i < len(b); {
		i += skipSep(b[i:])
		if i >= len(b) {
			break
		}
		f, n := scanNumber(b[i:])
		if n == 0 {
			break
		}
		out = append(out, f)
		i += n
	}
	return out
}
