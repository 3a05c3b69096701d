package nanosvg

import (
	"strings"
)

// Parse reads an SVG document from text and returns the fully resolved
// scene graph: viewBox baked, gradients resolved, animations parsed
// but not yet evaluated (call Animate to evaluate at a timestamp).
// units is the measurement unit the returned Image.Width/Image.Height
// (and all path coordinates) are expressed in -- one of "px", "pt",
// "pc", "mm", "cm", "in" -- independent of whatever units the document
// itself used internally. dpi controls the pixel/physical-unit ratio
// used both while parsing and for this final conversion; 96 is the
// conventional default. Grounded on original_source/src/nanosvg.h's
// nsvgParse(input, units, dpi) entry point.
func Parse(text string, units string, dpi float64) (*Image, error) {
	if dpi <= 0 {
		dpi = 96
	}
	img, err := ParseSVG(strings.NewReader(text), dpi)
	if err != nil && img == nil {
		return nil, err
	}
	img.Units = unitFromSuffix(units)
	if scale := outputUnitScale(img.Units, dpi); scale != 1 {
		applySceneTransform(img, Scale(scale, scale))
		img.Width *= scale
		img.Height *= scale
	}
	return img, err
}

// outputUnitScale returns the multiplier converting a pixel measurement
// into the given output unit.
func outputUnitScale(u Unit, dpi float64) float64 {
	switch u {
	case UnitPt:
		return 72.0 / dpi
	case UnitPc:
		return 6.0 / dpi
	case UnitMm:
		return 25.4 / dpi
	case UnitCm:
		return 2.54 / dpi
	case UnitIn:
		return 1.0 / dpi
	default:
		return 1
	}
}

// Release drops every arena slice so the backing arrays can be
// collected; callers that parse many short-lived documents in a loop
// can call this once a document's last frame has been rendered,
// mirroring original_source/src/nanosvg.h's nsvgDelete.
func Release(img *Image) {
	img.Nodes = nil
	img.Shapes = nil
	img.Paths = nil
	img.Gradients = nil
	img.Animates = nil
	img.memorySize = 0
}
