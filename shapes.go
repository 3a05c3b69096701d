package nanosvg

// buildRect implements spec.md §4.4: if w=0 or h=0, emit nothing; clamp
// rx<=w/2, ry<=h/2 (mirroring the other if only one is set); below the
// 0.0001 threshold emit a plain 4-point rectangle, otherwise round the
// corners with the κ90 cubic approximation.
func buildRect(x, y, w, h, rx, ry float64) []*Path {
	if w == 0 || h == 0 {
		return nil
	}
	haveRX, haveRY := rx > 0, ry > 0
	if haveRX && !haveRY {
		ry = rx
	} else if haveRY && !haveRX {
		rx = ry
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}

	p := newPath()
	if rx < 0.0001 && ry < 0.0001 {
		p.moveTo(Point{x, y})
		p.lineTo(Point{x + w, y})
		p.lineTo(Point{x + w, y + h})
		p.lineTo(Point{x, y + h})
		p.close()
		return []*Path{p}
	}

	dx, dy := rx*(1-kappa90), ry*(1-kappa90)
	p.moveTo(Point{x + rx, y})
	p.lineTo(Point{x + w - rx, y})
	p.cubeTo(Point{x + w - rx + dx, y}, Point{x + w, y + ry - dy}, Point{x + w, y + ry})
	p.lineTo(Point{x + w, y + h - ry})
	p.cubeTo(Point{x + w, y + h - ry + dy}, Point{x + w - rx + dx, y + h}, Point{x + w - rx, y + h})
	p.lineTo(Point{x + rx, y + h})
	p.cubeTo(Point{x + rx - dx, y + h}, Point{x, y + h - ry + dy}, Point{x, y + h - ry})
	p.lineTo(Point{x, y + ry})
	p.cubeTo(Point{x, y + ry - dy}, Point{x + rx - dx, y}, Point{x + rx, y})
	p.close()
	return []*Path{p}
}

// buildEllipse implements spec.md §4.4: four cubic arcs via κ90.
func buildEllipse(cx, cy, rx, ry float64) []*Path {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	dx, dy := rx*kappa90, ry*kappa90
	p := newPath()
	p.moveTo(Point{cx + rx, cy})
	p.cubeTo(Point{cx + rx, cy + dy}, Point{cx + dx, cy + ry}, Point{cx, cy + ry})
	p.cubeTo(Point{cx - dx, cy + ry}, Point{cx - rx, cy + dy}, Point{cx - rx, cy})
	p.cubeTo(Point{cx - rx, cy - dy}, Point{cx - dx, cy - ry}, Point{cx, cy - ry})
	p.cubeTo(Point{cx + dx, cy - ry}, Point{cx + rx, cy - dy}, Point{cx + rx, cy})
	p.close()
	return []*Path{p}
}

func buildCircle(cx, cy, r float64) []*Path {
	return buildEllipse(cx, cy, r, r)
}

// buildLine returns a two-point open path, spec.md §4.4.
func buildLine(x1, y1, x2, y2 float64) []*Path {
	p := newPath()
	p.moveTo(Point{x1, y1})
	p.lineTo(Point{x2, y2})
	return []*Path{p}
}

// buildPolyline builds a moveTo(p0) then lineTo(pi) chain, closed for
// polygon, spec.md §4.4.
func buildPolyline(coords []float64, closed bool) []*Path {
	if len(coords) < 2 {
		return nil
	}
	p := newPath()
	p.moveTo(Point{coords[0], coords[1]})
	for i := 2; i+1 < len(coords); i += 2 {
		p.lineTo(Point{coords[i], coords[i+1]})
	}
	if closed {
		p.close()
	}
	return []*Path{p}
}
