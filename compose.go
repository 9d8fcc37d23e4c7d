package glassfx

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/glassfx/internal/filter"
	"github.com/gogpu/glassfx/raster"
)

// edgeMask builds the overlay that neutralizes the displacement inside the
// element: a neutral-gray rounded rect inset by offset, with corner radius
// max(0, borderRadius-offset), blurred by offset pixels.
//
// It returns nil when both borderRadius and offset are 0, in which case
// the crop is used as is.
func edgeMask(r raster.Rasterizer, g Geometry, borderRadius, offset float64) *image.NRGBA {
	if !(borderRadius > 0 || offset > 0) {
		return nil
	}

	rr := raster.RoundedRect{
		X:      offset,
		Y:      offset,
		W:      float64(g.Width) - offset*2,
		H:      float64(g.Height) - offset*2,
		Radius: max(0, borderRadius-offset),
	}
	m := r.FillRoundedRect(g.Width, g.Height, rr)
	if offset > 0 {
		m = filter.NewBlurFilter(offset).Apply(m)
	}
	return m.Tint(neutralGray)
}

// composeMap centre-crops the square map to the element size and draws
// the edge mask, if any, over the crop.
func composeMap(m *DisplacementMap, g Geometry, mask *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))

	ox, oy := g.CropOffset(m.Side())
	draw.Draw(dst, dst.Bounds(), m.view(), image.Pt(ox, oy), draw.Src)

	if mask != nil {
		draw.Draw(dst, dst.Bounds(), mask, image.Point{}, draw.Over)
	}
	return dst
}
