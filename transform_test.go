package nanosvg

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func near(a, b Transform) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestTransformIdentityDot(t *testing.T) {
	p := Identity.Dot(Point{3, 4})
	test.T(t, p, Point{3, 4})
}

func TestTransformTranslate(t *testing.T) {
	p := Translate(5, -2).Dot(Point{1, 1})
	test.T(t, p, Point{6, -1})
}

func TestTransformScale(t *testing.T) {
	p := Scale(2, 3).Dot(Point{1, 1})
	test.T(t, p, Point{2, 3})
}

func TestTransformRotate90(t *testing.T) {
	p := Rotate(90).Dot(Point{1, 0})
	test.That(t, math.Abs(p.X) < 1e-9)
	test.That(t, math.Abs(p.Y-1) < 1e-9)
}

func TestTransformMulOrderMatchesDotComposition(t *testing.T) {
	// (t.Mul(s)).Dot(p) must equal t.Dot(s.Dot(p)): s applied first.
	tt := Translate(10, 0)
	s := Scale(2, 2)
	p := Point{1, 1}
	combined := tt.Mul(s).Dot(p)
	stepwise := tt.Dot(s.Dot(p))
	test.T(t, combined, stepwise)
}

func TestPremultiplyOrder(t *testing.T) {
	// Premultiply(t, s) == s.Mul(t): s is composed to run after t in
	// document order (parent transform applied outside child's).
	tt := Translate(1, 0)
	s := Scale(2, 2)
	got := Premultiply(tt, s)
	want := s.Mul(tt)
	test.T(t, got, want)
}

func TestRotateAboutPivotFixed(t *testing.T) {
	// Rotating about a point leaves that point fixed.
	rt := RotateAbout(45, 5, 5)
	p := rt.Dot(Point{5, 5})
	test.That(t, math.Abs(p.X-5) < 1e-9)
	test.That(t, math.Abs(p.Y-5) < 1e-9)
}

func TestTransformInv(t *testing.T) {
	tt := Translate(3, 4).Mul(Scale(2, 5)).Mul(Rotate(33))
	inv := tt.Inv()
	test.That(t, near(tt.Mul(inv), Identity))
}

func TestAverageScale(t *testing.T) {
	test.T(t, Scale(2, 4).AverageScale(), 3.0)
	test.T(t, Identity.AverageScale(), 1.0)
}

func TestParseTransformListMatrix(t *testing.T) {
	got := parseTransformList("matrix(1,0,0,1,10,20)")
	test.T(t, got, Translate(10, 20))
}

func TestParseTransformListComposesInOrder(t *testing.T) {
	got := parseTransformList("translate(10,0) scale(2,2)")
	want := Translate(10, 0).Mul(Scale(2, 2))
	test.T(t, got, want)
}

func TestParseTransformListTranslateSingleArg(t *testing.T) {
	got := parseTransformList("translate(5)")
	test.T(t, got, Translate(5, 0))
}

func TestParseTransformListRotateThreeArgs(t *testing.T) {
	got := parseTransformList("rotate(90, 5, 5)")
	want := RotateAbout(90, 5, 5)
	test.That(t, near(got, want))
}

func TestParseTransformListSkew(t *testing.T) {
	got := parseTransformList("skewX(45)")
	want := SkewX(45)
	test.That(t, near(got, want))
}

func TestParseTransformListIgnoresUnknownFunction(t *testing.T) {
	got := parseTransformList("foo(1,2,3) translate(1,2)")
	test.T(t, got, Translate(1, 2))
}

func TestParseFloatList(t *testing.T) {
	got := parseFloatList("1,2 3.5 -4")
	test.T(t, got, []float64{1, 2, 3.5, -4})
}
