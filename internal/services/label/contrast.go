package label

import (
	"github.com/lucasb-eyer/go-colorful"
)

const (
	textDark  = "#000000"
	textLight = "#FFFFFF"
)

// relativeLuminance follows the WCAG 2.x definition
func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors,
// from 1 (identical luminance) to 21 (black on white).
func ContrastRatio(a, b string) (float64, error) {
	ca, err := colorful.Hex(a)
	if err != nil {
		return 0, err
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return 0, err
	}
	la, lb := relativeLuminance(ca), relativeLuminance(cb)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

// ContrastText picks black or white text, whichever reads better on the
// label color. Unparseable colors get white text.
func ContrastText(background string) string {
	bg, err := colorful.Hex(background)
	if err != nil {
		return textLight
	}
	l := relativeLuminance(bg)
	darkRatio := (l + 0.05) / 0.05
	lightRatio := 1.05 / (l + 0.05)
	if darkRatio >= lightRatio {
		return textDark
	}
	return textLight
}
