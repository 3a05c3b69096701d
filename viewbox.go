package nanosvg

import "strings"

// computeViewBoxTransform derives the transform mapping viewBox
// coordinates to the declared width/height viewport, per
// preserveAspectRatio's meet/slice/alignment rules (spec.md §4.2, SVG
// 1.1 §7.11). AlignType == AlignNone disables the uniform-scale clamp
// and simply stretches the viewBox to fill the viewport.
func computeViewBoxTransform(vbMinX, vbMinY, vbW, vbH, width, height float64, alignX, alignY Align, alignType AlignType) Transform {
	if vbW <= 0 || vbH <= 0 || width <= 0 || height <= 0 {
		return Identity
	}
	sx := width / vbW
	sy := height / vbH

	if alignType != AlignNone {
		var s float64
		if alignType == AlignSlice {
			s = max64(sx, sy)
		} else {
			s = min64(sx, sy)
		}
		sx, sy = s, s
	}

	tx := -vbMinX * sx
	ty := -vbMinY * sy

	extraX := width - vbW*sx
	extraY := height - vbH*sy
	switch alignX {
	case AlignMid:
		tx += extraX / 2
	case AlignMax:
		tx += extraX
	}
	switch alignY {
	case AlignMid:
		ty += extraY / 2
	case AlignMax:
		ty += extraY
	}

	return Transform{sx, 0, 0, sy, tx, ty}
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// parsePreserveAspectRatio parses the preserveAspectRatio attribute
// value, e.g. "xMidYMid meet", "none", "xMinYMax slice".
func parsePreserveAspectRatio(s string) (Align, Align, AlignType) {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	align := "xMidYMid"
	alignType := AlignMeet
	for _, f := range fields {
		switch f {
		case "meet":
			alignType = AlignMeet
		case "slice":
			alignType = AlignSlice
		case "none":
			align = "none"
		case "defer":
			// ignored, applies only to image references
		default:
			align = f
		}
	}
	if align == "none" {
		return AlignMid, AlignMid, AlignNone
	}
	ax, ay := AlignMid, AlignMid
	switch {
	case strings.HasPrefix(align, "xMin"):
		ax = AlignMin
	case strings.HasPrefix(align, "xMid"):
		ax = AlignMid
	case strings.HasPrefix(align, "xMax"):
		ax = AlignMax
	}
	switch {
	case strings.HasSuffix(align, "YMin"):
		ay = AlignMin
	case strings.HasSuffix(align, "YMid"):
		ay = AlignMid
	case strings.HasSuffix(align, "YMax"):
		ay = AlignMax
	}
	return ax, ay, alignType
}

// applySceneTransform composes t onto every Path's and Shape's baseline
// transform and re-derives bounds, used once after parsing to bake the
// viewBox/preserveAspectRatio scene transform into the tree (spec.md
// §4.2's "transform applied once, at the root"), and again by Parse's
// output-unit-scale step. Not idempotent: each call composes t onto the
// baseline again, and no "scaled" flag guards it (unlike the per-frame
// animation reset); re-running Parse on the same document always
// starts from a fresh Image, and calling it twice in a row on the same
// Image (viewBox, then unit scale) is how the two compose.
//
// Every Gradient's transform is recomposed from its own baseline too
// (spec.md §4.8): at the viewBox call site img.Gradients is still empty
// (gradients are baked from the already-scaled shape bounds afterward,
// in finish's resolveShapeGradients call), so this loop is a no-op
// there; at Parse's output-unit-scale call site the gradients already
// exist and would otherwise point at shader-space coordinates from
// before the unit rescale.
func applySceneTransform(img *Image, t Transform) {
	for _, p := range img.Paths {
		p.xform = t.Mul(p.xform)
		p.orig.xform = p.xform
		p.computeBounds()
	}
	for i := range img.Shapes {
		s := &img.Shapes[i]
		s.Xform = t.Mul(s.Xform)
		s.orig.xform = s.Xform
		s.Bounds = unionPathBounds(img, s.Paths)
		avg := t.AverageScale()
		s.StrokeWidth *= avg
		s.orig.strokeWidth = s.StrokeWidth
		s.StrokeScaled = true
	}
	for i := range img.Gradients {
		g := &img.Gradients[i]
		g.orig.xform = t.Mul(g.orig.xform)
		if g.orig.xform.Det() != 0 {
			g.Xform = g.orig.xform.Inv()
		} else {
			g.Xform = Identity
		}
	}
}

func unionPathBounds(img *Image, idxs []int) [4]float64 {
	if len(idxs) == 0 {
		return [4]float64{}
	}
	b := img.Paths[idxs[0]].Bounds()
	for _, idx := range idxs[1:] {
		pb := img.Paths[idx].Bounds()
		if pb[0] < b[0] {
			b[0] = pb[0]
		}
		if pb[1] < b[1] {
			b[1] = pb[1]
		}
		if pb[2] > b[2] {
			b[2] = pb[2]
		}
		if pb[3] > b[3] {
			b[3] = pb[3]
		}
	}
	return b
}
