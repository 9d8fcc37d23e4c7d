package glassfx

import (
	"image/png"

	"github.com/gogpu/glassfx/raster"
)

// Option configures a Synthesizer during creation.
//
// Example:
//
//	// Default: highest-priority registered rasterizer
//	s := glassfx.NewSynthesizer()
//
//	// Analytic SDF masks, fastest PNG encoding
//	s := glassfx.NewSynthesizer(
//	    glassfx.WithRasterizerName(raster.RasterizerSDF),
//	    glassfx.WithCompression(png.BestSpeed),
//	)
type Option func(*synthOptions)

// synthOptions holds optional configuration for Synthesizer creation.
type synthOptions struct {
	rasterizer     raster.Rasterizer
	rasterizerName string
	compression    png.CompressionLevel
}

// defaultSynthOptions returns the default synthesizer options.
func defaultSynthOptions() synthOptions {
	return synthOptions{
		rasterizer:     nil, // Resolved from the raster registry on each call
		rasterizerName: "",  // Empty selects raster.Default()
		compression:    png.DefaultCompression,
	}
}

// WithRasterizer sets the rasterizer instance used for edge masks.
// It takes precedence over WithRasterizerName.
func WithRasterizer(r raster.Rasterizer) Option {
	return func(o *synthOptions) {
		o.rasterizer = r
	}
}

// WithRasterizerName selects a registered rasterizer by name. If the name
// is not registered when a map is synthesized, the call fails with
// ErrNoRasterizer.
func WithRasterizerName(name string) Option {
	return func(o *synthOptions) {
		o.rasterizerName = name
	}
}

// WithCompression sets the PNG compression level of generated data URIs.
func WithCompression(level png.CompressionLevel) Option {
	return func(o *synthOptions) {
		o.compression = level
	}
}
