package glassfx

import "errors"

// Package errors.
var (
	// ErrNoRasterizer is returned when no rasterizer is available to build
	// displacement maps. The effect cannot be produced without one.
	ErrNoRasterizer = errors.New("glassfx: no rasterizer available")

	// ErrUnknownFilter is returned when registering or building a filter
	// with an empty or unregistered name.
	ErrUnknownFilter = errors.New("glassfx: unknown filter")

	// ErrNilBuild is returned when registering a filter without a build function.
	ErrNilBuild = errors.New("glassfx: filter has no build function")
)
