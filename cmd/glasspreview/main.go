// Command glasspreview shows a liquid-glass displacement map in the
// terminal.
//
// Each cell renders two map pixels with a half block. Hue encodes the
// displacement direction and saturation its strength, so neutral areas
// are white.
//
// Keys: +/- refraction, [/] offset, c cycles the chromatic channel,
// q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/gogpu/glassfx"
)

type preview struct {
	screen tcell.Screen
	synth  *glassfx.Synthesizer

	width, height float64
	radius        string
	params        glassfx.Params
	channel       int

	maps []*image.NRGBA
	err  error
}

func newPreview(synth *glassfx.Synthesizer, width, height float64, radius string, p glassfx.Params) (*preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &preview{
		screen: screen,
		synth:  synth,
		width:  width,
		height: height,
		radius: radius,
		params: p,
	}
	v.rebuild()
	return v, nil
}

func (v *preview) rebuild() {
	v.maps, v.err = v.synth.Maps(glassfx.RoundGeometry(v.width, v.height), v.params, v.radius)
	if v.channel >= len(v.maps) {
		v.channel = 0
	}
}

func (v *preview) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()

	status := fmt.Sprintf(" refraction %g  offset %g  chromatic %g  channel %d/%d ",
		v.params.Refraction, v.params.Offset, v.params.Chromatic, v.channel+1, len(v.maps))
	if v.err != nil {
		status = " " + v.err.Error() + " "
	}
	drawText(v.screen, 0, rows-1, status, tcell.StyleDefault.Reverse(true))

	if v.err != nil || len(v.maps) == 0 || rows < 2 {
		v.screen.Show()
		return
	}

	// Two pixels per cell vertically; leave the status line free.
	cells := fitCells(v.maps[v.channel].Bounds(), cols, rows-1)
	scaled := image.NewNRGBA(image.Rect(0, 0, cells.X, cells.Y*2))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), v.maps[v.channel], v.maps[v.channel].Bounds(), draw.Src, nil)

	for y := 0; y < cells.Y; y++ {
		for x := 0; x < cells.X; x++ {
			top := displacementColor(scaled.NRGBAAt(x, y*2))
			bottom := displacementColor(scaled.NRGBAAt(x, y*2+1))
			v.screen.SetContent(x, y, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	v.screen.Show()
}

// handleInput applies a key and reports whether the preview keeps running.
func (v *preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			v.params.Refraction += 0.25
		case '-':
			v.params.Refraction -= 0.25
		case ']':
			v.params.Offset++
		case '[':
			v.params.Offset = max(0, v.params.Offset-1)
		case 'c':
			if len(v.maps) > 1 {
				v.channel = (v.channel + 1) % len(v.maps)
			}
			return true
		default:
			return true
		}
		v.rebuild()

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *preview) run() {
	for {
		v.draw()
		if !v.handleInput(v.screen.PollEvent()) {
			return
		}
	}
}

// fitCells returns the largest cell grid within cols x rows that keeps the
// aspect ratio of b, with each cell covering one column and two pixel rows.
func fitCells(b image.Rectangle, cols, rows int) image.Point {
	if b.Empty() || cols <= 0 || rows <= 0 {
		return image.Point{}
	}
	scale := math.Min(float64(cols)/float64(b.Dx()), float64(rows*2)/float64(b.Dy()))
	return image.Point{
		X: max(1, int(float64(b.Dx())*scale)),
		Y: max(1, int(float64(b.Dy())*scale/2)),
	}
}

// displacementColor maps a displacement pixel to a colour: the R and B
// offsets from neutral give the direction (hue) and strength (saturation).
func displacementColor(c color.NRGBA) tcell.Color {
	dx := (float64(c.R) - glassfx.Neutral) / glassfx.Neutral
	dy := (float64(c.B) - glassfx.Neutral) / glassfx.Neutral

	hue := math.Atan2(dy, dx) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	sat := math.Min(1, math.Hypot(dx, dy))

	r, g, b := colorful.Hsv(hue, sat, 1).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func main() {
	var (
		width      = flag.Float64("width", 320, "element width in CSS pixels")
		height     = flag.Float64("height", 200, "element height in CSS pixels")
		refraction = flag.Float64("refraction", glassfx.DefaultRefraction, "refraction strength")
		offset     = flag.Float64("offset", glassfx.DefaultOffset, "edge offset")
		chromatic  = flag.Float64("chromatic", glassfx.DefaultChromatic, "chromatic aberration")
		radius     = flag.String("radius", "0", "border radius (px or %)")
		rasterizer = flag.String("rasterizer", "", "mask rasterizer")
	)
	flag.Parse()

	synth := glassfx.NewSynthesizer(glassfx.WithRasterizerName(*rasterizer))
	p := glassfx.Params{Refraction: *refraction, Offset: *offset, Chromatic: *chromatic}

	v, err := newPreview(synth, *width, *height, *radius, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.screen.Fini()

	v.run()
}
