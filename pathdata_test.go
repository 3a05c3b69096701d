package nanosvg

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParsePathDataMoveLineClose(t *testing.T) {
	paths := parsePathData("M0 0 L10 0 L10 10 Z")
	test.T(t, len(paths), 1)
	p := paths[0]
	test.That(t, p.Closed())
	test.T(t, p.current(), Point{0, 0})
}

func TestParsePathDataImplicitLineto(t *testing.T) {
	// A second coordinate pair after M with no command letter is an
	// implicit lineto.
	paths := parsePathData("M0 0 10 0 10 10")
	test.T(t, len(paths), 1)
	p := paths[0]
	test.T(t, p.Segments(), 2)
	test.T(t, p.current(), Point{10, 10})
}

func TestParsePathDataRelativeLine(t *testing.T) {
	paths := parsePathData("M5 5 l10 0 l0 10")
	test.T(t, len(paths), 1)
	p := paths[0]
	test.T(t, p.current(), Point{15, 15})
}

func TestParsePathDataHorizontalVertical(t *testing.T) {
	paths := parsePathData("M0 0 H10 V10")
	p := paths[0]
	test.T(t, p.current(), Point{10, 10})
}

func TestParsePathDataMultipleSubpaths(t *testing.T) {
	paths := parsePathData("M0 0 L10 0 M20 20 L30 20")
	test.T(t, len(paths), 2)
	test.T(t, paths[0].current(), Point{10, 0})
	test.T(t, paths[1].current(), Point{30, 20})
}

func TestParsePathDataCubicSmoothReflection(t *testing.T) {
	// S reflects the previous C's second control point; just check it
	// doesn't panic and lands on the right endpoint.
	paths := parsePathData("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	p := paths[0]
	test.T(t, p.current(), Point{20, 0})
	test.T(t, (len(p.pts)-1)%3, 0)
}

func TestParsePathDataQuadraticSmoothReflection(t *testing.T) {
	paths := parsePathData("M0 0 Q5 10 10 0 T20 0")
	p := paths[0]
	test.T(t, p.current(), Point{20, 0})
}

func TestParsePathDataArcCommand(t *testing.T) {
	paths := parsePathData("M0 0 A5 5 0 0 1 10 0")
	p := paths[0]
	test.T(t, p.current(), Point{10, 0})
}

func TestParsePathDataEmpty(t *testing.T) {
	paths := parsePathData("")
	test.T(t, len(paths), 0)
}

func TestParsePathDataTrailingGarbageTerminates(t *testing.T) {
	// Non-numeric, non-command bytes after a command letter must not
	// stall the scanner: each offending byte is skipped one at a time
	// until the input is exhausted, rather than looping forever re-
	// parsing the same unconsumed bytes.
	paths := parsePathData("M0 0Lxy")
	test.T(t, len(paths), 1)
	test.T(t, paths[0].current(), Point{0, 0})
}

func TestParsePathDataGarbageBetweenValidCommandsResyncs(t *testing.T) {
	// Garbage between two otherwise-valid commands is skipped without
	// losing the subsequent real command.
	paths := parsePathData("M0 0 L10 0 ?? L20 0")
	p := paths[0]
	test.T(t, p.current(), Point{20, 0})
}
