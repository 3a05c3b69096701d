package nanosvg

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParseClockValueBareSeconds(t *testing.T) {
	ms, ok := parseClockValue("2.5")
	test.That(t, ok)
	test.T(t, ms, int64(2500))
}

func TestParseClockValueSuffixed(t *testing.T) {
	ms, _ := parseClockValue("500ms")
	test.T(t, ms, int64(500))
	ms, _ = parseClockValue("2s")
	test.T(t, ms, int64(2000))
	ms, _ = parseClockValue("1.5min")
	test.T(t, ms, int64(90000))
	ms, _ = parseClockValue("1h")
	test.T(t, ms, int64(3600000))
}

func TestParseClockValueMinSec(t *testing.T) {
	ms, ok := parseClockValue("1:30")
	test.That(t, ok)
	test.T(t, ms, int64(90000))
}

func TestParseClockValueHourMinSec(t *testing.T) {
	ms, ok := parseClockValue("1:02:03")
	test.That(t, ok)
	test.T(t, ms, int64(3723000))
}

func TestParseClockValueEmptyInvalid(t *testing.T) {
	_, ok := parseClockValue("")
	test.That(t, !ok)
}

func TestAnimTypeOfTransform(t *testing.T) {
	typ, ok := animTypeOf(true, "", "rotate")
	test.That(t, ok)
	test.T(t, typ, AnimRotate)

	_, ok = animTypeOf(true, "", "bogus")
	test.That(t, !ok)
}

func TestAnimTypeOfAttribute(t *testing.T) {
	typ, ok := animTypeOf(false, "opacity", "")
	test.That(t, ok)
	test.T(t, typ, AnimOpacity)

	_, ok = animTypeOf(false, "d", "")
	test.That(t, !ok)
}

func TestParseComponentsNumeric(t *testing.T) {
	out, n := parseComponents(AnimOpacity, "0.5")
	test.T(t, n, 1)
	test.T(t, out[0], 0.5)
}

func TestParseComponentsColor(t *testing.T) {
	out, n := parseComponents(AnimFill, "#ff0000")
	test.T(t, n, 4)
	test.T(t, out[0], 255.0)
	test.T(t, out[1], 0.0)
	test.T(t, out[2], 0.0)
	test.T(t, out[3], 255.0)
}

func TestBuildAnimatesUnknownAttributeRejected(t *testing.T) {
	img := &Image{}
	d := animDesc{attrName: "no-such-attr", hasTo: true, to: "1"}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 0)
}

func TestBuildAnimatesFromTo(t *testing.T) {
	img := &Image{}
	d := animDesc{attrName: "opacity", hasFrom: true, from: "0", hasTo: true, to: "1", durMs: 1000, hasDur: true}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 1)
	a := img.Animates[idxs[0]]
	test.T(t, a.Src[0], 0.0)
	test.T(t, a.Dst[0], 1.0)
	test.That(t, a.GroupFirst)
	test.That(t, a.GroupLast)
}

func TestBuildAnimatesValuesListExpandsToSegments(t *testing.T) {
	img := &Image{}
	d := animDesc{attrName: "opacity", hasValues: true, values: "0;0.5;1", durMs: 1000, hasDur: true}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 2)
	test.That(t, img.Animates[idxs[0]].GroupFirst)
	test.That(t, !img.Animates[idxs[0]].GroupLast)
	test.That(t, img.Animates[idxs[1]].GroupLast)
	test.T(t, img.Animates[idxs[0]].SegStartMs, int64(0))
	test.T(t, img.Animates[idxs[0]].SegEndMs, int64(500))
	test.T(t, img.Animates[idxs[1]].SegStartMs, int64(500))
	test.T(t, img.Animates[idxs[1]].SegEndMs, int64(1000))
}

func TestBuildAnimatesSingleValueRejected(t *testing.T) {
	img := &Image{}
	d := animDesc{attrName: "opacity", hasValues: true, values: "0.5"}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 0)
}

func TestBuildAnimatesByOnly(t *testing.T) {
	img := &Image{}
	d := animDesc{attrName: "opacity", hasBy: true, by: "0.3", durMs: 1000, hasDur: true}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 1)
	a := img.Animates[idxs[0]]
	test.T(t, a.Src[0], 0.0)
	test.T(t, a.Dst[0], 0.3)
}

func TestBuildAnimatesMissingDurRejected(t *testing.T) {
	img := &Image{}
	d := animDesc{attrName: "opacity", hasFrom: true, from: "0", hasTo: true, to: "1"}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 0)
}

func TestBuildAnimatesKeyTimesCountMismatchRejected(t *testing.T) {
	img := &Image{}
	d := animDesc{
		attrName: "opacity", hasValues: true, values: "0;0.5;1",
		keyTimes: "0;1", // two entries for three values
		durMs:    1000, hasDur: true,
	}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 0)
}

func TestBuildAnimatesKeySplinesCountMismatchRejected(t *testing.T) {
	img := &Image{}
	d := animDesc{
		attrName: "opacity", hasValues: true, values: "0;0.5;1",
		keyTimes:   "0;0.5;1",
		keySplines: "0.1 0.2 0.3 0.4", // one spline, but two segments need splines
		calcMode:   CalcSpline,
		durMs:      1000, hasDur: true,
	}
	idxs := buildAnimates(img, d, false)
	test.T(t, len(idxs), 0)
}
