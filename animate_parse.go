package nanosvg

import (
	"strconv"
	"strings"
)

// animDesc is the raw parsed content of one <animate>/<animateTransform>
// element, before it is validated and expanded into Animate segments.
type animDesc struct {
	attrName string
	xformType string // only for animateTransform: translate/scale/rotate/skewX/skewY

	from, to, by string
	hasFrom, hasTo, hasBy bool
	values       string
	hasValues    bool
	keyTimes     string
	keySplines   string

	durMs       int64
	hasDur      bool
	beginMs     int64
	endMs       int64
	hasEnd      bool
	repeatCount int
	repeatDurMs int64
	hasRepeatDur bool

	calcMode CalcMode
	additive Additive
	fill     FillMode
}

// parseAnimateAttr folds one attribute of an <animate>/<animateTransform>
// element into desc, per spec.md §4.9.
func (d *animDesc) parseAnimateAttr(name, v string) {
	switch name {
	case "attributeName":
		d.attrName = v
	case "type":
		d.xformType = v
	case "from":
		d.from, d.hasFrom = v, true
	case "to":
		d.to, d.hasTo = v, true
	case "by":
		d.by, d.hasBy = v, true
	case "values":
		d.values, d.hasValues = v, true
	case "keyTimes":
		d.keyTimes = v
	case "keySplines":
		d.keySplines = v
	case "dur":
		if v == "indefinite" {
			d.hasDur = false
		} else if ms, ok := parseClockValue(v); ok {
			d.durMs, d.hasDur = ms, true
		}
	case "begin":
		if ms, ok := parseClockValue(v); ok {
			d.beginMs = ms
		}
	case "end":
		if ms, ok := parseClockValue(v); ok {
			d.endMs, d.hasEnd = ms, true
		}
	case "repeatCount":
		if v == "indefinite" {
			d.repeatCount = -1
		} else if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			d.repeatCount = n
		}
	case "repeatDur":
		if v == "indefinite" {
			d.hasRepeatDur = false
		} else if ms, ok := parseClockValue(v); ok {
			d.repeatDurMs, d.hasRepeatDur = ms, true
		}
	case "calcMode":
		switch v {
		case "discrete":
			d.calcMode = CalcDiscrete
		case "paced":
			// Folded to linear: see SPEC_FULL.md's Open Question decision
			// on calcMode="paced" -- distance-paced timing is not
			// implemented, linear keyTime interpolation is used instead.
			d.calcMode = CalcLinear
		case "spline":
			d.calcMode = CalcSpline
		default:
			d.calcMode = CalcLinear
		}
	case "additive":
		if v == "sum" {
			d.additive = AdditiveSum
		}
	case "fill":
		if v == "freeze" {
			d.fill = FillFreeze
		}
	}
}

// parseClockValue parses an SMIL clock value: "h:m:s.frac", "m:s.frac",
// a bare number of seconds, or a number suffixed with h/min/s/ms
// (spec.md §4.9).
func parseClockValue(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		var h, m int64
		var sec float64
		var err error
		switch len(parts) {
		case 2:
			m, err = strconv.ParseInt(parts[0], 10, 64)
			if err != nil {
				return 0, false
			}
			sec, err = strconv.ParseFloat(parts[1], 64)
		case 3:
			h, err = strconv.ParseInt(parts[0], 10, 64)
			if err != nil {
				return 0, false
			}
			m, err = strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, false
			}
			sec, err = strconv.ParseFloat(parts[2], 64)
		default:
			return 0, false
		}
		if err != nil {
			return 0, false
		}
		return h*3600_000 + m*60_000 + int64(sec*1000), true
	}
	switch {
	case strings.HasSuffix(s, "ms"):
		f, err := strconv.ParseFloat(s[:len(s)-2], 64)
		return int64(f), err == nil
	case strings.HasSuffix(s, "min"):
		f, err := strconv.ParseFloat(s[:len(s)-3], 64)
		return int64(f * 60_000), err == nil
	case strings.HasSuffix(s, "h"):
		f, err := strconv.ParseFloat(s[:len(s)-1], 64)
		return int64(f * 3600_000), err == nil
	case strings.HasSuffix(s, "s"):
		f, err := strconv.ParseFloat(s[:len(s)-1], 64)
		return int64(f * 1000), err == nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		return int64(f * 1000), err == nil
	}
}

// animTypeOf maps an attributeName (and, for animateTransform, the
// type="") to the AnimType enum. ok is false for anything unsupported,
// which causes the whole descriptor to be rejected (spec.md §4.9).
func animTypeOf(isTransform bool, attrName, xformType string) (AnimType, bool) {
	if isTransform {
		switch xformType {
		case "translate":
			return AnimTranslate, true
		case "scale":
			return AnimScale, true
		case "rotate":
			return AnimRotate, true
		case "skewX":
			return AnimSkewX, true
		case "skewY":
			return AnimSkewY, true
		}
		return 0, false
	}
	switch attrName {
	case "opacity":
		return AnimOpacity, true
	case "fill":
		return AnimFill, true
	case "fill-opacity":
		return AnimFillOpacity, true
	case "stroke":
		return AnimStroke, true
	case "stroke-opacity":
		return AnimStrokeOpacity, true
	case "stroke-width":
		return AnimStrokeWidth, true
	case "stroke-dashoffset":
		return AnimDashOffset, true
	case "stroke-dasharray":
		return AnimDashArray, true
	}
	return 0, false
}

// parseComponents parses one value-list entry into up to 10 floats,
// using color parsing for fill/stroke and numeric parsing otherwise.
func parseComponents(typ AnimType, s string) ([10]float64, int) {
	var out [10]float64
	s = strings.TrimSpace(s)
	switch typ {
	case AnimFill, AnimStroke:
		c := parseColor(s)
		out[0], out[1], out[2], out[3] = float64(c.R), float64(c.G), float64(c.B), float64(c.A)
		return out, 4
	case AnimDashArray:
		arr, n := parseDashArray(s)
		for i := 0; i < n && i < 10; i++ {
			out[i] = arr[i]
		}
		return out, n
	}
	n := 0
	b := []byte(s)
	for i := 0; i < len(b) && n < 10; {
		i += skipSep(b[i:])
		if i >= len(b) {
			break
		}
		f, used := scanNumber(b[i:])
		if used == 0 {
			break
		}
		out[n] = f
		n++
		i += used
	}
	return out, n
}

// buildAnimates validates desc and expands it into one or more Animate
// segments appended to img.Animates, returning their indices. Returns
// nil (no animation added) for any descriptor spec.md §4.9 says must be
// silently rejected: unknown attributeName/type, missing usable value
// source, or a values list shorter than two entries.
func buildAnimates(img *Image, d animDesc, isTransform bool) []int {
	typ, ok := animTypeOf(isTransform, d.attrName, d.xformType)
	if !ok {
		return nil
	}

	var values [][10]float64
	var counts []int

	switch {
	case d.hasValues:
		for _, v := range strings.Split(d.values, ";") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			c, n := parseComponents(typ, v)
			values = append(values, c)
			counts = append(counts, n)
		}
	case d.hasFrom && d.hasTo:
		c0, n0 := parseComponents(typ, d.from)
		c1, n1 := parseComponents(typ, d.to)
		values = [][10]float64{c0, c1}
		counts = []int{n0, n1}
	case d.hasTo:
		c1, n1 := parseComponents(typ, d.to)
		values = [][10]float64{{}, c1}
		counts = []int{n1, n1}
	case d.hasFrom && d.hasBy:
		c0, n0 := parseComponents(typ, d.from)
		db, _ := parseComponents(typ, d.by)
		c1 := c0
		for i := 0; i < n0; i++ {
			c1[i] += db[i]
		}
		values = [][10]float64{c0, c1}
		counts = []int{n0, n0}
	case d.hasBy:
		db, n := parseComponents(typ, d.by)
		values = [][10]float64{{}, db}
		counts = []int{n, n}
	default:
		return nil
	}
	if len(values) < 2 {
		return nil
	}

	// dur is mandatory: an animation with no usable duration is dropped
	// outright (nanosvg.h:3489's `if (dur == unset) return;`), not given
	// a zero-width segment.
	if !d.hasDur || d.durMs <= 0 {
		return nil
	}
	dur := d.durMs

	keyTimes := parseFloatList(d.keyTimes)
	if len(keyTimes) == 0 {
		keyTimes = make([]float64, len(values))
		for i := range keyTimes {
			keyTimes[i] = float64(i) / float64(len(values)-1)
		}
	} else if len(keyTimes) != len(values) {
		// keyTimes present but mismatched against the value count drops
		// the whole descriptor (nanosvg.h:3491), rather than falling
		// back to an even split.
		return nil
	}

	var splines [][4]float64
	if d.calcMode == CalcSpline {
		flat := parseFloatList(d.keySplines)
		if len(flat) > 0 {
			if len(flat)%4 != 0 || len(flat)/4 != len(values)-1 {
				// keySplines present but the wrong count (one spline per
				// segment is required) drops the descriptor (nanosvg.h:3492).
				return nil
			}
			for i := 0; i+3 < len(flat); i += 4 {
				splines = append(splines, [4]float64{flat[i], flat[i+1], flat[i+2], flat[i+3]})
			}
		}
	}

	var idxs []int
	for i := 0; i+1 < len(values); i++ {
		a := AnimateSeg{
			BeginMs:     d.beginMs,
			DurMs:       dur,
			GroupDurMs:  dur,
			RepeatCount: d.repeatCount,
			Type:        typ,
			CalcMode:    d.calcMode,
			Additive:    d.additive,
			Fill:        d.fill,
			Src:         values[i],
			SrcN:        counts[i],
			Dst:         values[i+1],
			DstN:        counts[i+1],
			GroupFirst:  i == 0,
			GroupLast:   i == len(values)-2,
		}
		if d.hasEnd {
			a.EndMs = d.endMs
		}
		if d.hasRepeatDur {
			a.RepeatDurMs = d.repeatDurMs
		}
		if dur > 0 {
			a.SegStartMs = int64(keyTimes[i] * float64(dur))
			a.SegEndMs = int64(keyTimes[i+1] * float64(dur))
		}
		if i < len(splines) {
			a.Spline = splines[i]
		}
		idxs = append(idxs, img.newAnimateRef(a))
	}
	if d.repeatCount == 0 {
		d.repeatCount = 1
		for _, idx := range idxs {
			img.Animates[idx].RepeatCount = 1
		}
	}
	return idxs
}
