// Package glassfx generates "liquid glass" refraction filters for web
// backdrops.
//
// # Overview
//
// The effect is an SVG filter that displaces the backdrop behind an
// element by a procedurally generated displacement map. The map is a
// lens: neutral in the middle, pushing pixels away from the centre near
// the edges. A rounded-rect mask, inset and blurred by the edge offset,
// neutralizes the interior so only a soft band along the element's
// rounded border refracts.
//
// # Quick Start
//
//	s := glassfx.NewSynthesizer()
//	markup, err := s.Synthesize("card", glassfx.Geometry{Width: 320, Height: 200},
//	    glassfx.Params{Refraction: 2, Offset: 10, Chromatic: 1}, "24px")
//
// For expression-driven use, a Registry parses values such as
//
//	liquid-glass(2, 10, 1) blur(2px) saturate(140%)
//
// builds the custom stages, and returns the SVG and backdrop-filter value
// to inject:
//
//	reg := glassfx.NewRegistry()
//	att, changed, err := reg.Sync(el, expr) // call once per frame
//
// # Parameters
//
// liquid-glass takes up to three arguments: refraction (default 1),
// offset (default 10) and chromatic aberration (default 0). Refraction
// and offset are halved before use. With chromatic aberration each colour
// channel gets its own map, at refraction +δ, 0 and -δ with
// δ = chromatic/4.
//
// # Caching
//
// Synthesis is memoized per element. Re-running with the same size,
// parameters and border radius returns the stored markup without
// rebuilding any image.
//
// # Logging
//
// glassfx is silent by default; see SetLogger.
package glassfx
