// Command glassfx synthesizes liquid-glass displacement maps.
//
// It writes the composed maps as PNG files and prints the SVG filter
// primitives, or, with -expr, the full markup of a filter expression
// applied to a box of the given size.
//
//	glassfx -width 320 -height 200 -refraction 2 -chromatic 1 -out card
//	glassfx -width 320 -height 200 -radius 24px -expr "liquid-glass(2) blur(4px)"
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/glassfx"
	"github.com/gogpu/glassfx/raster"
)

func main() {
	var (
		width      = flag.Float64("width", 320, "element width in CSS pixels")
		height     = flag.Float64("height", 200, "element height in CSS pixels")
		refraction = flag.Float64("refraction", glassfx.DefaultRefraction, "refraction strength")
		offset     = flag.Float64("offset", glassfx.DefaultOffset, "edge offset")
		chromatic  = flag.Float64("chromatic", glassfx.DefaultChromatic, "chromatic aberration")
		radius     = flag.String("radius", "0", "border radius (px or %)")
		expr       = flag.String("expr", "", "filter expression; prints attachment HTML")
		out        = flag.String("out", "", "write maps to <out>.png or <out>-{r,g,b}.png")
		rasterizer = flag.String("rasterizer", "", fmt.Sprintf("mask rasterizer %v", raster.Available()))
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		glassfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	synth := glassfx.NewSynthesizer(glassfx.WithRasterizerName(*rasterizer))

	if *expr != "" {
		if err := printAttachment(synth, *width, *height, *radius, *expr); err != nil {
			log.Fatalf("Failed to attach: %v", err)
		}
		return
	}

	g := glassfx.RoundGeometry(*width, *height)
	p := glassfx.Params{Refraction: *refraction, Offset: *offset, Chromatic: *chromatic}

	if *out != "" {
		if err := writeMaps(synth, g, p, *radius, *out); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}

	markup, err := synth.Synthesize("cli", g, p, *radius)
	if err != nil {
		log.Fatalf("Failed to synthesize: %v", err)
	}
	fmt.Print(markup)
}

func writeMaps(synth *glassfx.Synthesizer, g glassfx.Geometry, p glassfx.Params, radius, out string) error {
	imgs, err := synth.Maps(g, p, radius)
	if err != nil {
		return err
	}

	names := []string{out + ".png"}
	if len(imgs) == 3 {
		names = []string{out + "-r.png", out + "-g.png", out + "-b.png"}
	}
	for i, img := range imgs {
		if err := glassfx.SavePNG(names[i], img); err != nil {
			return err
		}
		log.Printf("Map saved to %s (%dx%d)\n", names[i], g.Width, g.Height)
	}
	return nil
}

func printAttachment(synth *glassfx.Synthesizer, width, height float64, radius, expr string) error {
	reg := glassfx.NewRegistry(glassfx.WithSynthesizer(synth))
	el := &glassfx.StaticElement{
		Name:   "cli",
		Width:  width,
		Height: height,
		Styles: map[string]string{"border-radius": radius},
	}

	att, err := reg.Attach(el, expr)
	if att != nil {
		fmt.Println(att.HTML())
	}
	return err
}
