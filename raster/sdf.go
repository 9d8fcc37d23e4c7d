package raster

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

// sdfAntialiasWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const sdfAntialiasWidth = 0.7

// sdfRasterizer evaluates a rounded-rect signed distance field at every
// pixel centre. It needs no path flattening and is exact for any radius.
type sdfRasterizer struct{}

func (sdfRasterizer) Name() string { return RasterizerSDF }

func (sdfRasterizer) FillRoundedRect(width, height int, rr RoundedRect) *Mask {
	m := NewMask(width, height)
	rr = rr.Normalize()
	if m.width == 0 || m.height == 0 || rr.Empty() {
		return m
	}

	shape := roundedRectSDF{
		half:   ms2.Vec{X: float32(rr.W / 2), Y: float32(rr.H / 2)},
		radius: float32(rr.ClampedRadius()),
	}
	center := ms2.Vec{X: float32(rr.X + rr.W/2), Y: float32(rr.Y + rr.H/2)}

	// One row of sample positions relative to the centre, reused per row.
	pos := make([]ms2.Vec, m.width)
	dist := make([]float32, m.width)
	for y := 0; y < m.height; y++ {
		py := float32(y) + 0.5 - center.Y
		for x := range pos {
			pos[x] = ms2.Vec{X: float32(x) + 0.5 - center.X, Y: py}
		}
		shape.evaluate(pos, dist)

		row := m.data[y*m.width : (y+1)*m.width]
		for x, d := range dist {
			row[x] = uint8(smoothstepCoverage(d)*255 + 0.5)
		}
	}
	return m
}

// roundedRectSDF is a rounded rectangle centred on the origin.
type roundedRectSDF struct {
	half   ms2.Vec
	radius float32
}

// evaluate writes the signed distance of each position to dist.
// Negative values are inside, positive values are outside.
func (s roundedRectSDF) evaluate(pos []ms2.Vec, dist []float32) {
	inner := ms2.Sub(s.half, ms2.Vec{X: s.radius, Y: s.radius})
	for i, p := range pos {
		d := ms2.Sub(ms2.AbsElem(p), inner)
		dist[i] = ms2.Norm(ms2.MaxElem(d, ms2.Vec{})) + math32.Min(0, math32.Max(d.X, d.Y)) - s.radius
	}
}

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -afwidth => 1.0 (fully inside)
// sdf > +afwidth => 0.0 (fully outside)
// Otherwise       => smooth transition
func smoothstepCoverage(sdf float32) float32 {
	if sdf >= sdfAntialiasWidth {
		return 0
	}
	if sdf <= -sdfAntialiasWidth {
		return 1
	}
	t := (sdf + sdfAntialiasWidth) / (2 * sdfAntialiasWidth)
	return 1 - (t * t * (3 - 2*t))
}
