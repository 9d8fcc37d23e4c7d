// Package raster provides the coverage rasterizers used to build the
// rounded-rect masks that soften displacement maps near element edges.
//
// Rasterizers are registered by name and selected by priority, the same
// way rendering backends are. Two rasterizers are built in:
//   - "vector": path filling via golang.org/x/image/vector
//   - "sdf": analytic signed-distance coverage
//
// Usage:
//
//	r := raster.Default()
//	if r == nil {
//	    // no rasterizer available
//	}
//	m := r.FillRoundedRect(200, 100, raster.RoundedRect{X: 5, Y: 5, W: 190, H: 90, Radius: 12})
package raster

import (
	"errors"
	"math"
	"sync"
)

// Rasterizer names.
const (
	RasterizerVector = "vector"
	RasterizerSDF    = "sdf"
)

// ErrNotAvailable is returned when a requested rasterizer is not registered.
var ErrNotAvailable = errors.New("raster: rasterizer not available")

// RoundedRect describes a rectangle with uniformly rounded corners in
// pixel space. The origin is the top-left corner of the mask.
type RoundedRect struct {
	X, Y   float64
	W, H   float64
	Radius float64
}

// Normalize returns r with negative extents flipped, the way canvas
// roundRect treats them: a width of -4 at x covers [x-4, x].
func (r RoundedRect) Normalize() RoundedRect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Empty reports whether the rectangle covers no area.
func (r RoundedRect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// ClampedRadius returns the corner radius scaled down so that adjacent
// corners never overlap. Negative and NaN radii become 0.
func (r RoundedRect) ClampedRadius() float64 {
	rad := r.Radius
	if !(rad > 0) {
		return 0
	}
	return math.Min(rad, math.Min(r.W, r.H)/2)
}

// Rasterizer fills shapes into coverage masks.
type Rasterizer interface {
	// Name returns the rasterizer identifier (e.g., "vector", "sdf").
	Name() string

	// FillRoundedRect returns a width x height mask holding the
	// anti-aliased coverage of rr. Pixels outside rr are 0. Negative
	// extents are normalized first.
	FillRoundedRect(width, height int, rr RoundedRect) *Mask
}

// Factory creates a new rasterizer instance.
type Factory func() Rasterizer

var (
	registryMu  sync.RWMutex
	rasterizers = make(map[string]Factory)
	// Priority order for selection (first available wins).
	rasterizerPriority = []string{RasterizerVector, RasterizerSDF}
)

func init() {
	Register(RasterizerVector, func() Rasterizer { return vectorRasterizer{} })
	Register(RasterizerSDF, func() Rasterizer { return sdfRasterizer{} })
}

// Register registers a rasterizer factory with the given name.
// If a rasterizer with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	rasterizers[name] = factory
}

// Unregister removes a rasterizer from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(rasterizers, name)
}

// Available returns the names of all registered rasterizers.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(rasterizers))
	for name := range rasterizers {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a rasterizer with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := rasterizers[name]
	return ok
}

// Get returns a rasterizer instance by name.
// Returns nil if the rasterizer is not registered.
func Get(name string) Rasterizer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := rasterizers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available rasterizer based on priority.
// Returns nil if no rasterizers are registered.
func Default() Rasterizer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range rasterizerPriority {
		if factory, ok := rasterizers[name]; ok {
			if r := factory(); r != nil {
				return r
			}
		}
	}

	for _, factory := range rasterizers {
		if r := factory(); r != nil {
			return r
		}
	}

	return nil
}

// Lookup returns the named rasterizer, or the default one when name is
// empty. It returns ErrNotAvailable when nothing matches.
func Lookup(name string) (Rasterizer, error) {
	var r Rasterizer
	if name == "" {
		r = Default()
	} else {
		r = Get(name)
	}
	if r == nil {
		return nil, ErrNotAvailable
	}
	return r, nil
}
