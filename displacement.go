package glassfx

import (
	"image"
	"image/color"
)

// Neutral is the channel value that encodes zero displacement.
const Neutral = 127

// neutralGray is an opaque pixel with every colour channel at Neutral.
var neutralGray = color.RGBA{R: Neutral, G: Neutral, B: Neutral, A: 255}

// DisplacementMap is a square RGBA raster encoding a lens-like
// displacement field. R holds the horizontal gradient and B the vertical
// one; G is always Neutral and A is opaque. The field is strongest at the
// edges and neutral at the centre.
//
// The channel assignment matches the feDisplacementMap selectors
// xChannelSelector="R" yChannelSelector="B".
type DisplacementMap struct {
	side       int
	refraction float64
	data       []uint8 // RGBA format, 4 bytes per pixel
}

// NewDisplacementMap builds the displacement field for a square of the
// given side at the given adjusted refraction.
//
// With half = side/2 (integer division), row y < half of the top half gets
// B = 127 + 127*r*g and its mirror row side-1-y gets B = 127 - 127*r*g,
// where g = (half - y) / half. Columns are treated the same way in R.
// Values are rounded half-up and clamped to [0, 255]. For odd sides the
// middle row and column stay neutral.
func NewDisplacementMap(side int, refraction float64) *DisplacementMap {
	side = max(side, 0)
	m := &DisplacementMap{
		side:       side,
		refraction: refraction,
		data:       make([]uint8, side*side*4),
	}
	m.fillNeutral()

	half := side / 2

	// Top / bottom
	for y := 0; y < half; y++ {
		pos, neg := gradientPair(refraction, half, y)
		top := y * side * 4
		bottom := (side - 1 - y) * side * 4
		for x := 0; x < side; x++ {
			m.data[top+x*4+2] = pos
			m.data[bottom+x*4+2] = neg
		}
	}

	// Left / right
	for x := 0; x < half; x++ {
		pos, neg := gradientPair(refraction, half, x)
		left := x * 4
		right := (side - 1 - x) * 4
		for y := 0; y < side; y++ {
			row := y * side * 4
			m.data[row+left] = pos
			m.data[row+right] = neg
		}
	}

	return m
}

// gradientPair returns the channel values for distance i from the edge of
// a half of length half: the near edge value and its mirrored counterpart.
func gradientPair(refraction float64, half, i int) (pos, neg uint8) {
	grad := float64(half-i) / float64(half)
	amount := Neutral * refraction * grad
	return clampChannel(Neutral + amount), clampChannel(Neutral - amount)
}

// clampChannel rounds half-up and clamps to [0, 255].
func clampChannel(v float64) uint8 {
	v = roundHalfUp(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// fillNeutral sets every pixel to opaque neutral gray.
func (m *DisplacementMap) fillNeutral() {
	for i := 0; i < len(m.data); i += 4 {
		m.data[i+0] = neutralGray.R
		m.data[i+1] = neutralGray.G
		m.data[i+2] = neutralGray.B
		m.data[i+3] = neutralGray.A
	}
}

// Side returns the side length of the map.
func (m *DisplacementMap) Side() int {
	return m.side
}

// Refraction returns the adjusted refraction the map was built for.
func (m *DisplacementMap) Refraction() float64 {
	return m.refraction
}

// Data returns the raw pixel data (RGBA format).
func (m *DisplacementMap) Data() []uint8 {
	return m.data
}

// NRGBAAt returns the pixel at (x, y).
// Returns a transparent pixel for coordinates outside the map.
func (m *DisplacementMap) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= m.side || y < 0 || y >= m.side {
		return color.NRGBA{}
	}
	i := (y*m.side + x) * 4
	return color.NRGBA{R: m.data[i+0], G: m.data[i+1], B: m.data[i+2], A: m.data[i+3]}
}

// At implements the image.Image interface.
func (m *DisplacementMap) At(x, y int) color.Color {
	return m.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (m *DisplacementMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.side, m.side)
}

// ColorModel implements the image.Image interface.
func (m *DisplacementMap) ColorModel() color.Model {
	return color.NRGBAModel
}

// ToImage converts the map to an independent *image.NRGBA.
func (m *DisplacementMap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(m.Bounds())
	copy(img.Pix, m.data)
	return img
}

// view returns an *image.NRGBA sharing the map's storage.
func (m *DisplacementMap) view() *image.NRGBA {
	return &image.NRGBA{Pix: m.data, Stride: m.side * 4, Rect: m.Bounds()}
}
