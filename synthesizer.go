package glassfx

import (
	"fmt"
	"image"

	"github.com/gogpu/glassfx/internal/cache"
	"github.com/gogpu/glassfx/raster"
)

// Synthesizer turns element geometry and effect parameters into SVG
// filter primitives for the liquid-glass effect.
//
// Results are memoized per target: a repeated call for the same target
// with unchanged inputs returns the stored markup without rebuilding any
// image. The memo keeps one entry per target; call Forget when a target
// goes away.
//
// Synthesizer is safe for concurrent use.
type Synthesizer struct {
	opts    synthOptions
	encoder *pngEncoder
	memo    *cache.Memo[string, string]
}

// CacheStats reports memo usage.
type CacheStats struct {
	// Entries is the number of targets with stored markup.
	Entries int
	// Hits is the number of calls answered from the memo.
	Hits uint64
	// Misses is the number of calls that built new maps.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before any call.
	HitRate float64
}

// NewSynthesizer creates a synthesizer with the given options.
func NewSynthesizer(opts ...Option) *Synthesizer {
	o := defaultSynthOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Synthesizer{
		opts: o,
		memo: cache.NewMemo[string, string](),
	}
	s.encoder = &pngEncoder{}
	s.encoder.enc.CompressionLevel = o.compression
	return s
}

// Synthesize returns the filter primitives for target.
//
// An empty geometry yields ("", nil): there is nothing to refract. With
// chromatic aberration off the markup holds one feImage/feDisplacementMap
// pair; with it on, one per colour channel plus channel isolation and
// additive compositing.
//
// The result is memoized under a key made of the geometry, the halved
// refraction and offset, the chromatic amount and the raw border radius.
// Failures are never memoized.
func (s *Synthesizer) Synthesize(target string, g Geometry, p Params, borderRadius string) (string, error) {
	if g.Empty() {
		return "", nil
	}

	key := cacheKey(g, p, borderRadius)
	if markup, ok := s.memo.Lookup(target, key); ok {
		Logger().Debug("glassfx: displacement maps cached", "target", target, "key", key)
		return markup, nil
	}
	if prev, ok := s.memo.Key(target); ok {
		Logger().Debug("glassfx: displacement maps stale", "target", target, "previous", prev, "key", key)
	}

	imgs, err := s.Maps(g, p, borderRadius)
	if err != nil {
		return "", err
	}

	hrefs := make([]string, len(imgs))
	for i, img := range imgs {
		href, err := s.encoder.DataURI(img)
		if err != nil {
			return "", fmt.Errorf("glassfx: synthesize %q: %w", target, err)
		}
		hrefs[i] = href
	}

	var markup string
	if len(hrefs) == 1 {
		markup = singleStageMarkup(hrefs[0])
	} else {
		markup = chromaticMarkup([3]string(hrefs))
	}

	s.memo.Store(target, key, markup)
	Logger().Debug("glassfx: synthesized displacement maps",
		"target", target, "width", g.Width, "height", g.Height, "maps", len(imgs))
	return markup, nil
}

// Maps builds the composed displacement images for g without encoding
// them: one image without chromatic aberration, otherwise the red, green
// and blue images in that order. Each image is g.Width x g.Height.
//
// An empty geometry yields no images and no error.
func (s *Synthesizer) Maps(g Geometry, p Params, borderRadius string) ([]*image.NRGBA, error) {
	if g.Empty() {
		return nil, nil
	}

	r, err := s.rasterizer()
	if err != nil {
		return nil, err
	}

	mask := edgeMask(r, g, ResolveBorderRadius(borderRadius, g), p.OffsetValue())

	side := g.Side()
	refractions := p.ChannelRefractions()
	imgs := make([]*image.NRGBA, len(refractions))
	for i, refraction := range refractions {
		imgs[i] = composeMap(NewDisplacementMap(side, refraction), g, mask)
	}
	return imgs, nil
}

// Forget drops the memoized markup for target.
// Returns true if an entry existed.
func (s *Synthesizer) Forget(target string) bool {
	return s.memo.Forget(target)
}

// CacheStats returns current memo statistics.
func (s *Synthesizer) CacheStats() CacheStats {
	st := s.memo.Stats()
	return CacheStats{
		Entries: st.Len,
		Hits:    st.Hits,
		Misses:  st.Misses,
		HitRate: st.HitRate,
	}
}

// rasterizer resolves the configured rasterizer.
func (s *Synthesizer) rasterizer() (raster.Rasterizer, error) {
	if s.opts.rasterizer != nil {
		return s.opts.rasterizer, nil
	}
	r, err := raster.Lookup(s.opts.rasterizerName)
	if err != nil {
		name := s.opts.rasterizerName
		if name == "" {
			name = "default"
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrNoRasterizer, name, err)
	}
	return r, nil
}

// cacheKey identifies the inputs of one synthesis.
func cacheKey(g Geometry, p Params, borderRadius string) string {
	return fmt.Sprintf("%dx%d-%s-%s-%s-%s",
		g.Width, g.Height,
		formatNumber(p.RefractionValue()),
		formatNumber(p.OffsetValue()),
		formatNumber(p.ChromaticValue()),
		borderRadius)
}
