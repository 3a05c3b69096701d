package nanosvg

import (
	"image/color"
	"strconv"
	"strings"
)

// cssColors holds the nine CSS basic color names spec.md §4.6 requires.
var cssColors = map[string]color.RGBA{
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"black":   {0, 0, 0, 255},
	"grey":    {128, 128, 128, 255},
	"gray":    {128, 128, 128, 255},
	"white":   {255, 255, 255, 255},
}

// fallbackColor is returned for any color string this parser cannot
// make sense of, matching spec.md §4.6's backward-compatibility rule.
var fallbackColor = color.RGBA{0x80, 0x80, 0x80, 0xff}

// parseColor parses #rgb, #rrggbb, rgb(i,i,i), rgb(p%,p%,p%) and the
// nine basic CSS color names. Alpha defaults to opaque; it is combined
// separately from fill-opacity/stroke-opacity by the caller.
func parseColor(s string) color.RGBA {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallbackColor
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	lower := strings.ToLower(s)
	if c, ok := cssColors[lower]; ok {
		return c
	}
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) == 3 {
			r, ok1 := parseColorComponent(parts[0])
			g, ok2 := parseColorComponent(parts[1])
			b, ok3 := parseColorComponent(parts[2])
			if ok1 && ok2 && ok3 {
				return color.RGBA{r, g, b, 255}
			}
		}
	}
	return fallbackColor
}

func parseColorComponent(s string) (uint8, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if s[len(s)-1] == '%' {
		f, n := scanNumber([]byte(s))
		if n == 0 {
			return 0, false
		}
		v := f * 2.55
		return clamp255(v), true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	} else if n > 255 {
		n = 255
	}
	return uint8(n), true
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	} else if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func hexNibble(c byte) uint8 {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return 10 + c - 'a'
	case 'A' <= c && c <= 'F':
		return 10 + c - 'A'
	}
	return 0
}

// parseHexColor parses the digits after "#": 3-digit (nibble-doubled) or
// 6-digit forms, per spec.md §4.6.
func parseHexColor(s string) color.RGBA {
	switch len(s) {
	case 3:
		r := hexNibble(s[0])
		g := hexNibble(s[1])
		b := hexNibble(s[2])
		return color.RGBA{r*16 + r, g*16 + g, b*16 + b, 255}
	case 6:
		r := hexNibble(s[0])*16 + hexNibble(s[1])
		g := hexNibble(s[2])*16 + hexNibble(s[3])
		b := hexNibble(s[4])*16 + hexNibble(s[5])
		return color.RGBA{r, g, b, 255}
	}
	return fallbackColor
}
