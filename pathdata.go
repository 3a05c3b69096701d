package nanosvg

// parsePathData interprets the "d" attribute mini-language (spec.md
// §4.3) into zero or more committed Paths, one per M/m-delimited
// subpath. Grounded on the teacher's path_parse.go ParseSVGPath, adapted
// to emit only cubic segments (Q lowered by the 2/3 rule, A lowered via
// center parameterization) and to commit one *Path per subpath instead
// of appending to one long opcode tape.
func parsePathData(d string) []*Path {
	b := []byte(d)
	var paths []*Path
	var cur *Path

	var cmd byte
	var reflectQuad, reflectCube Point
	var havePrevQuad, havePrevCube bool

	commit := func() {
		if cur != nil && len(cur.pts) > 0 {
			cur.captureBaseline()
			cur.computeBounds()
			paths = append(paths, cur)
		}
		cur = nil
	}

	i := 0
	n := len(b)
	for i < n {
		i += skipSep(b[i:])
		if i >= n {
			break
		}
		if isCommandLetter(b[i]) {
			cmd = b[i]
			i++
		}
		if cmd == 0 {
			break
		}

		start := i
		switch cmd {
		case 'M', 'm':
			commit()
			x, n1 := scanNumber(b[i:])
			i += n1
			i += skipSep(b[i:])
			y, n2 := scanNumber(b[i:])
			i += n2
			if n1 == 0 || n2 == 0 {
				cur = nil
				break
			}
			cur = newPath()
			cur.moveTo(Point{x, y})
			havePrevQuad, havePrevCube = false, false
			if cmd == 'm' {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z', 'z':
			if cur != nil {
				cur.close()
			}
			commit()
			havePrevQuad, havePrevCube = false, false
		case 'L', 'l':
			if cur == nil {
				cur = newPath()
			}
			x, y, ok := scan2(b, &i)
			if !ok {
				break
			}
			if cmd == 'l' {
				p0 := cur.current()
				x, y = x+p0.X, y+p0.Y
			}
			cur.lineTo(Point{x, y})
			havePrevQuad, havePrevCube = false, false
		case 'H', 'h':
			if cur == nil {
				cur = newPath()
			}
			x, n1 := scanNumber(b[i:])
			i += n1
			if n1 == 0 {
				break
			}
			p0 := cur.current()
			if cmd == 'h' {
				x += p0.X
			}
			cur.lineTo(Point{x, p0.Y})
			havePrevQuad, havePrevCube = false, false
		case 'V', 'v':
			if cur == nil {
				cur = newPath()
			}
			y, n1 := scanNumber(b[i:])
			i += n1
			if n1 == 0 {
				break
			}
			p0 := cur.current()
			if cmd == 'v' {
				y += p0.Y
			}
			cur.lineTo(Point{p0.X, y})
			havePrevQuad, havePrevCube = false, false
		case 'C', 'c':
			if cur == nil {
				cur = newPath()
			}
			p0 := cur.current()
			x1, y1, ok1 := scan2(b, &i)
			x2, y2, ok2 := scan2(b, &i)
			x, y, ok3 := scan2(b, &i)
			if !ok1 || !ok2 || !ok3 {
				break
			}
			if cmd == 'c' {
				x1, y1 = x1+p0.X, y1+p0.Y
				x2, y2 = x2+p0.X, y2+p0.Y
				x, y = x+p0.X, y+p0.Y
			}
			cur.cubeTo(Point{x1, y1}, Point{x2, y2}, Point{x, y})
			reflectCube = Point{2*x - x2, 2*y - y2}
			havePrevCube, havePrevQuad = true, false
		case 'S', 's':
			if cur == nil {
				cur = newPath()
			}
			p0 := cur.current()
			x2, y2, ok1 := scan2(b, &i)
			x, y, ok2 := scan2(b, &i)
			if !ok1 || !ok2 {
				break
			}
			if cmd == 's' {
				x2, y2 = x2+p0.X, y2+p0.Y
				x, y = x+p0.X, y+p0.Y
			}
			c1 := p0
			if havePrevCube {
				c1 = reflectCube
			}
			cur.cubeTo(c1, Point{x2, y2}, Point{x, y})
			reflectCube = Point{2*x - x2, 2*y - y2}
			havePrevCube, havePrevQuad = true, false
		case 'Q', 'q':
			if cur == nil {
				cur = newPath()
			}
			p0 := cur.current()
			x1, y1, ok1 := scan2(b, &i)
			x, y, ok2 := scan2(b, &i)
			if !ok1 || !ok2 {
				break
			}
			if cmd == 'q' {
				x1, y1 = x1+p0.X, y1+p0.Y
				x, y = x+p0.X, y+p0.Y
			}
			cur.quadTo(Point{x1, y1}, Point{x, y})
			reflectQuad = Point{2*x - x1, 2*y - y1}
			havePrevQuad, havePrevCube = true, false
		case 'T', 't':
			if cur == nil {
				cur = newPath()
			}
			p0 := cur.current()
			x, y, ok := scan2(b, &i)
			if !ok {
				break
			}
			if cmd == 't' {
				x, y = x+p0.X, y+p0.Y
			}
			c := p0
			if havePrevQuad {
				c = reflectQuad
			}
			cur.quadTo(c, Point{x, y})
			reflectQuad = Point{2*x - c.X, 2*y - c.Y}
			havePrevQuad, havePrevCube = true, false
		case 'A', 'a':
			if cur == nil {
				cur = newPath()
			}
			p0 := cur.current()
			rx, n1 := scanNumber(b[i:])
			i += n1
			ry, n2 := scanNumber(b[i:])
			i += n2
			rot, n3 := scanNumber(b[i:])
			i += n3
			if n1 == 0 || n2 == 0 || n3 == 0 {
				break
			}
			large, n4 := scanFlag(b, i)
			i = n4
			sweep, n5 := scanFlag(b, i)
			i = n5
			x, y, ok := scan2(b, &i)
			if !ok {
				break
			}
			if cmd == 'a' {
				x, y = x+p0.X, y+p0.Y
			}
			cur.arcTo(rx, ry, rot, large, sweep, Point{x, y})
			havePrevQuad, havePrevCube = false, false
		default:
			i = n
		}

		// Every number-consuming branch must advance i past what it
		// read. Z/z legitimately consumes nothing beyond its own
		// command letter (already accounted for before start was
		// captured), so it's excluded here. If a numeric branch
		// couldn't find a number at all, nothing moved -- skip the
		// offending byte so parsing can resynchronize instead of
		// spinning forever on the same command.
		if cmd != 'Z' && cmd != 'z' && i == start {
			i++
		}
	}
	commit()
	return paths
}

func isCommandLetter(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// scan2 reads two comma/whitespace separated numbers. ok is false if
// either number could not be parsed, in which case i is left at the
// first unconsumed byte of whichever number failed.
func scan2(b []byte, i *int) (float64, float64, bool) {
	n := len(b)
	if *i >= n {
		return 0, 0, false
	}
	x, n1 := scanNumber(b[*i:])
	if n1 == 0 {
		return 0, 0, false
	}
	*i += n1
	*i += skipSep(b[*i:])
	y, n2 := scanNumber(b[*i:])
	if n2 == 0 {
		return 0, 0, false
	}
	*i += n2
	return x, y, true
}

// scanFlag reads a single SVG arc flag: '0' or '1', without requiring a
// numeric separator before the next token, per spec.md §4.3.
func scanFlag(b []byte, i int) (bool, int) {
	i += skipSep(b[i:])
	if i >= len(b) {
		return false, i
	}
	switch b[i] {
	case '0':
		return false, i + 1
	case '1':
		return true, i + 1
	}
	// fall back to general number scan for malformed input
	v, n := scanNumber(b[i:])
	return v != 0, i + n
}
