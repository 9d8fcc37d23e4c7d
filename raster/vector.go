package raster

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa is the cubic Bézier control distance for a quarter circle of
// radius 1.
const kappa = 0.5522847498307936

// vectorRasterizer fills paths with the x/image/vector accumulator, the
// same area-coverage algorithm used by font rasterizers.
type vectorRasterizer struct{}

func (vectorRasterizer) Name() string { return RasterizerVector }

func (vectorRasterizer) FillRoundedRect(width, height int, rr RoundedRect) *Mask {
	rr = rr.Normalize()
	if width <= 0 || height <= 0 || rr.Empty() {
		return NewMask(width, height)
	}

	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Src
	appendRoundedRect(z, rr)

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return NewMaskFromAlpha(dst)
}

// appendRoundedRect adds a closed rounded-rect contour to z, starting at
// the top edge and running clockwise.
func appendRoundedRect(z *vector.Rasterizer, rr RoundedRect) {
	x0, y0 := float32(rr.X), float32(rr.Y)
	x1, y1 := float32(rr.X+rr.W), float32(rr.Y+rr.H)
	r := float32(rr.ClampedRadius())

	if r == 0 {
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
		return
	}

	k := r * kappa
	z.MoveTo(x0+r, y0)
	z.LineTo(x1-r, y0)
	z.CubeTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
	z.LineTo(x1, y1-r)
	z.CubeTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
	z.LineTo(x0+r, y1)
	z.CubeTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
	z.LineTo(x0, y0+r)
	z.CubeTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
	z.ClosePath()
}
