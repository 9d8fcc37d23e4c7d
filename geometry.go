package glassfx

import (
	"math"
	"strings"
)

// Geometry is the rendered size of the target element in whole pixels.
type Geometry struct {
	Width  int
	Height int
}

// RoundGeometry rounds a fractional box measurement to whole pixels,
// halves rounding up.
func RoundGeometry(width, height float64) Geometry {
	return Geometry{
		Width:  int(roundHalfUp(width)),
		Height: int(roundHalfUp(height)),
	}
}

// Empty reports whether the geometry has no area.
func (g Geometry) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Side returns the side length of the square displacement map that
// covers g: ceil(max(width, height)).
func (g Geometry) Side() int {
	return max(g.Width, g.Height)
}

// CropOffset returns the top-left corner of the g-sized window centred in
// a square map of the given side.
func (g Geometry) CropOffset(side int) (x, y int) {
	x = int(roundHalfUp(float64(side-g.Width) / 2))
	y = int(roundHalfUp(float64(side-g.Height) / 2))
	return x, y
}

// ResolveBorderRadius converts a computed border-radius value to pixels.
// Percentages are taken of min(width, height); absolute lengths use their
// leading number; anything unparseable resolves to 0. For multi-value
// shorthands only the first value is used.
func ResolveBorderRadius(raw string, g Geometry) float64 {
	v := ParseNumber(raw)
	if strings.Contains(raw, "%") {
		v = v / 100 * float64(min(g.Width, g.Height))
	}
	if v < 0 {
		return 0
	}
	return v
}

// roundHalfUp rounds to the nearest integer, with halves rounding toward
// +Inf (so -2.5 becomes -2).
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
