package nanosvg

import "image/color"

// PaintKind tags the variant held by a Paint value.
type PaintKind uint8

const (
	// PaintNone is an explicit "no paint" (fill="none" or "transparent").
	PaintNone PaintKind = iota
	// PaintColor is a solid RGBA color.
	PaintColor
	// PaintLinearGradient references a resolved linear Gradient by index.
	PaintLinearGradient
	// PaintRadialGradient references a resolved radial Gradient by index.
	PaintRadialGradient
	// PaintUndefined is the intermediate state produced by url(#id)
	// before the gradient resolver pass has run; spec.md §3.
	PaintUndefined
)

// Paint is a tagged variant over {none, color, linearGradient(ref),
// radialGradient(ref), undefined}. See spec.md §3 and §9.
type Paint struct {
	Kind     PaintKind
	Color    color.RGBA
	Gradient int    // index into Image.Gradients, valid for the two gradient kinds
	RefID    string // pending url(#id) target, valid only while Kind == PaintUndefined
}

// PaintOfColor returns a solid-color Paint.
func PaintOfColor(c color.RGBA) Paint { return Paint{Kind: PaintColor, Color: c} }

// PaintOfNone returns the "none" Paint.
func PaintOfNone() Paint { return Paint{Kind: PaintNone} }

// PaintOfRef returns an unresolved url(#id) Paint.
func PaintOfRef(id string) Paint { return Paint{Kind: PaintUndefined, RefID: id} }

// withAlpha returns a copy of a PaintColor with the alpha byte replaced,
// used by fill-opacity/stroke-opacity and by the animation engine.
func (p Paint) withAlpha(a uint8) Paint {
	if p.Kind == PaintColor {
		p.Color.A = a
	}
	return p
}

// parsePaintValue parses a fill/stroke attribute value into a Paint,
// per spec.md §4.5: "none"/"transparent" clears paint, "url(#id)" is
// deferred to the gradient resolver, anything else is a color.
func parsePaintValue(v string) Paint {
	switch v {
	case "none", "transparent":
		return PaintOfNone()
	}
	if len(v) > 4 && v[:4] == "url(" {
		end := indexByte(v, ')')
		if end > 4 {
			ref := v[4:end]
			ref = trimHash(ref)
			return PaintOfRef(ref)
		}
		return PaintOfNone()
	}
	return PaintOfColor(parseColor(v))
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}
