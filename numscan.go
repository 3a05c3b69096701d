package nanosvg

import (
	"github.com/tdewolff/strconv"
)

// skipSep advances past whitespace and comma separators, the two forms
// SVG attribute grammars allow between numbers.
func skipSep(s []byte) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == ',' || s[i] == '\n' || s[i] == '\r' || s[i] == '\t') {
		i++
	}
	return i
}

// scanNumber reads one locale-independent number token from the front of
// s (after leading separators) and returns its value and the number of
// bytes consumed, including the separators. It implements the grammar in
// spec.md §4.2: optional sign, integer part, optional ".frac", optional
// "[eE][+-]?digits". Returns (0, 0), consuming nothing (not even the
// separators or the sign), if neither an integer nor a fractional part
// was present.
//
// "e" immediately followed by "m" or "x" terminates the number instead of
// starting an exponent, so that "3em"/"3ex" scans as the number 3 plus a
// unit, not as a bare exponent-less mantissa.
func scanNumber(s []byte) (float64, int) {
	i := skipSep(s)
	start := i
	n := len(s)

	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}

	sawDigit := false
	for i < n && '0' <= s[i] && s[i] <= '9' {
		i++
		sawDigit = true
	}

	if i < n && s[i] == '.' {
		j := i + 1
		for j < n && '0' <= s[j] && s[j] <= '9' {
			j++
			sawDigit = true
		}
		if j > i+1 {
			i = j
		} else if sawDigit {
			// lone "." with no following digits but a preceding integer
			// part is still consumed, e.g. "3."
			i = j
		}
	}

	if !sawDigit {
		return 0, 0
	}

	if i < n && (s[i] == 'e' || s[i] == 'E') {
		// em / ex: not an exponent.
		if i+1 < n && (s[i+1] == 'm' || s[i+1] == 'x') {
			f, _ := strconv.ParseFloat(s[start:i])
			return f, i
		}
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && '0' <= s[k] && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}

	f, _ := strconv.ParseFloat(s[start:i])
	return f, i
}

// parseNumberToken implements the parseNumber(str, out, max) contract of
// spec.md §4.2 for callers that want both the value and the byte offset
// immediately after the consumed token (not including trailing
// separators). Nothing in the package calls it at present; the
// transform and points parsers call scanNumber through parseFloatList.
func parseNumberToken(s []byte) (float64, int) {
	return scanNumber(s)
}
