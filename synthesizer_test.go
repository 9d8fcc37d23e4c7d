package glassfx

import (
	"errors"
	"image/color"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gogpu/glassfx/raster"
)

// countingRasterizer records how often masks are rasterized.
type countingRasterizer struct {
	raster.Rasterizer
	calls atomic.Int32
}

func newCountingRasterizer() *countingRasterizer {
	return &countingRasterizer{Rasterizer: raster.Get(raster.RasterizerSDF)}
}

func (c *countingRasterizer) FillRoundedRect(width, height int, rr raster.RoundedRect) *raster.Mask {
	c.calls.Add(1)
	return c.Rasterizer.FillRoundedRect(width, height, rr)
}

var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

func TestSynthesizeStageCount(t *testing.T) {
	tests := []struct {
		name      string
		p         Params
		wantStage int
	}{
		{"no chromatic", Params{Refraction: 1, Offset: 10, Chromatic: 0}, 1},
		{"chromatic", Params{Refraction: 2, Offset: 10, Chromatic: 1}, 3},
		{"small chromatic", Params{Refraction: 1, Offset: 0, Chromatic: 0.1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer()
			markup, err := s.Synthesize("el", Geometry{Width: 60, Height: 40}, tt.p, "8px")
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if markup == "" {
				t.Fatal("Synthesize() returned empty markup")
			}
			if n := strings.Count(markup, "<feDisplacementMap"); n != tt.wantStage {
				t.Errorf("displacement stages = %d, want %d", n, tt.wantStage)
			}
			if n := strings.Count(markup, "<feImage"); n != tt.wantStage {
				t.Errorf("image stages = %d, want %d", n, tt.wantStage)
			}
		})
	}
}

func TestSynthesizeEmptyGeometry(t *testing.T) {
	s := NewSynthesizer()
	for _, g := range []Geometry{{0, 50}, {100, 0}, {0, 0}} {
		markup, err := s.Synthesize("el", g, DefaultParams(), "0")
		if err != nil {
			t.Errorf("Synthesize(%+v) error = %v, want nil", g, err)
		}
		if markup != "" {
			t.Errorf("Synthesize(%+v) = %q, want empty", g, markup)
		}
	}
	if n := s.CacheStats().Entries; n != 0 {
		t.Errorf("cache entries = %d, want 0 for empty geometry", n)
	}

	imgs, err := s.Maps(Geometry{}, DefaultParams(), "0")
	if err != nil || imgs != nil {
		t.Errorf("Maps(empty) = %v, %v; want nil, nil", imgs, err)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	g := Geometry{Width: 120, Height: 80}
	p := Params{Refraction: 2, Offset: 8, Chromatic: 1}

	a, err := NewSynthesizer().Synthesize("a", g, p, "16px")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSynthesizer().Synthesize("b", g, p, "16px")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical inputs produced different markup")
	}
}

func TestSynthesizeMemoizes(t *testing.T) {
	r := newCountingRasterizer()
	s := NewSynthesizer(WithRasterizer(r))
	g := Geometry{Width: 100, Height: 50}
	p := DefaultParams()

	first, err := s.Synthesize("card", g, p, "12px")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Synthesize("card", g, p, "12px")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("cached markup differs from the first result")
	}
	if n := r.calls.Load(); n != 1 {
		t.Errorf("rasterizer calls = %d, want 1", n)
	}
	st := s.CacheStats()
	if st.Hits != 1 || st.Misses != 1 || st.Entries != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 entry", st)
	}
	if st.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", st.HitRate)
	}
}

func TestSynthesizeInvalidatesOnAnyKeyChange(t *testing.T) {
	base := struct {
		g  Geometry
		p  Params
		br string
	}{Geometry{100, 50}, Params{Refraction: 1, Offset: 10, Chromatic: 0}, "12px"}

	tests := []struct {
		name   string
		mutate func(g *Geometry, p *Params, br *string)
	}{
		{"width", func(g *Geometry, _ *Params, _ *string) { g.Width = 101 }},
		{"height", func(g *Geometry, _ *Params, _ *string) { g.Height = 51 }},
		{"refraction", func(_ *Geometry, p *Params, _ *string) { p.Refraction = 2 }},
		{"offset", func(_ *Geometry, p *Params, _ *string) { p.Offset = 4 }},
		{"chromatic", func(_ *Geometry, p *Params, _ *string) { p.Chromatic = 1 }},
		{"border radius", func(_ *Geometry, _ *Params, br *string) { *br = "50%" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCountingRasterizer()
			s := NewSynthesizer(WithRasterizer(r))

			if _, err := s.Synthesize("el", base.g, base.p, base.br); err != nil {
				t.Fatal(err)
			}

			g, p, br := base.g, base.p, base.br
			tt.mutate(&g, &p, &br)
			if _, err := s.Synthesize("el", g, p, br); err != nil {
				t.Fatal(err)
			}

			if n := r.calls.Load(); n != 2 {
				t.Errorf("rasterizer calls = %d, want 2 (recomputed)", n)
			}
			if st := s.CacheStats(); st.Hits != 0 || st.Entries != 1 {
				t.Errorf("stats = %+v, want 0 hits and a single entry", st)
			}
		})
	}
}

func TestSynthesizeTargetsAreIndependent(t *testing.T) {
	s := NewSynthesizer()
	g := Geometry{Width: 40, Height: 40}

	if _, err := s.Synthesize("a", g, DefaultParams(), "0"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Synthesize("b", g, DefaultParams(), "0"); err != nil {
		t.Fatal(err)
	}
	if st := s.CacheStats(); st.Entries != 2 || st.Hits != 0 {
		t.Errorf("stats = %+v, want 2 entries and no hits", st)
	}

	if !s.Forget("a") {
		t.Error("Forget(a) = false, want true")
	}
	if s.Forget("a") {
		t.Error("second Forget(a) = true, want false")
	}
	if n := s.CacheStats().Entries; n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestSynthesizeNoRasterizer(t *testing.T) {
	const name = "late-rasterizer"
	s := NewSynthesizer(WithRasterizerName(name))

	_, err := s.Synthesize("el", Geometry{Width: 20, Height: 20}, DefaultParams(), "0")
	if !errors.Is(err, ErrNoRasterizer) {
		t.Fatalf("error = %v, want ErrNoRasterizer", err)
	}
	if !errors.Is(err, raster.ErrNotAvailable) {
		t.Errorf("error = %v, want it to wrap raster.ErrNotAvailable", err)
	}
	if n := s.CacheStats().Entries; n != 0 {
		t.Fatalf("failed call cached %d entries", n)
	}

	// Once the rasterizer exists the same call succeeds.
	raster.Register(name, func() raster.Rasterizer { return raster.Get(raster.RasterizerSDF) })
	t.Cleanup(func() { raster.Unregister(name) })

	markup, err := s.Synthesize("el", Geometry{Width: 20, Height: 20}, DefaultParams(), "0")
	if err != nil || markup == "" {
		t.Fatalf("Synthesize() = %q, %v after registering", markup, err)
	}
}

func TestSynthesizeMaskPolicy(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		radius    string
		wantCalls int32
	}{
		{"neither", 0, "0", 0},
		{"offset only", 10, "0", 1},
		{"radius only", 0, "12px", 1},
		{"both", 10, "12px", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCountingRasterizer()
			s := NewSynthesizer(WithRasterizer(r))
			p := Params{Refraction: 1, Offset: tt.offset, Chromatic: 1}

			if _, err := s.Synthesize("el", Geometry{Width: 30, Height: 20}, p, tt.radius); err != nil {
				t.Fatal(err)
			}
			// The mask is shared by all three chromatic maps.
			if n := r.calls.Load(); n != tt.wantCalls {
				t.Errorf("rasterizer calls = %d, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestSynthesizeExampleSingle(t *testing.T) {
	s := NewSynthesizer()
	g := Geometry{Width: 100, Height: 50}
	p := Params{Refraction: 1, Offset: 10, Chromatic: 0}

	if side := g.Side(); side != 100 {
		t.Errorf("side = %d, want 100", side)
	}

	imgs, err := s.Maps(g, p, "0")
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 1 {
		t.Fatalf("maps = %d, want 1", len(imgs))
	}
	// offsetValue = 5 > 0, so the mask neutralizes the centre.
	if got := imgs[0].NRGBAAt(50, 25); got != (color.NRGBA{R: 127, G: 127, B: 127, A: 255}) {
		t.Errorf("centre = %+v, want neutral", got)
	}

	markup, err := s.Synthesize("el", g, p, "0")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(markup, "<feDisplacementMap"); n != 1 {
		t.Errorf("displacement stages = %d, want 1", n)
	}
	hrefs := hrefPattern.FindAllStringSubmatch(markup, -1)
	if len(hrefs) != 1 {
		t.Fatalf("image references = %d, want 1", len(hrefs))
	}
	img := decodeDataURI(t, hrefs[0][1])
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("encoded map bounds = %v, want 100x50", img.Bounds())
	}
}

func TestSynthesizeExampleChromatic(t *testing.T) {
	s := NewSynthesizer()
	g := Geometry{Width: 64, Height: 64}
	p := Params{Refraction: 2, Offset: 0, Chromatic: 1}

	imgs, err := s.Maps(g, p, "0")
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 3 {
		t.Fatalf("maps = %d, want 3", len(imgs))
	}
	// No mask: the maps are the raw fields at 1.25, 1.0 and 0.75.
	for i, r := range []float64{1.25, 1, 0.75} {
		want := NewDisplacementMap(64, r).NRGBAAt(10, 3)
		if got := imgs[i].NRGBAAt(10, 3); got != want {
			t.Errorf("map %d pixel = %+v, want %+v (refraction %v)", i, got, want, r)
		}
	}

	markup, err := s.Synthesize("el", g, p, "0")
	if err != nil {
		t.Fatal(err)
	}
	for tag, want := range map[string]int{
		"<feImage":             3,
		"<feComponentTransfer": 3,
		"<feComposite":         2,
	} {
		if n := strings.Count(markup, tag); n != want {
			t.Errorf("count(%s) = %d, want %d", tag, n, want)
		}
	}
}

func TestSynthesizeRasterizerName(t *testing.T) {
	s := NewSynthesizer(WithRasterizerName(raster.RasterizerSDF))
	if _, err := s.Synthesize("el", Geometry{Width: 30, Height: 30}, DefaultParams(), "50%"); err != nil {
		t.Fatalf("Synthesize() with sdf rasterizer error = %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	got := cacheKey(Geometry{100, 50}, Params{Refraction: 1, Offset: 10, Chromatic: 0}, "12px")
	if want := "100x50-0.5-5-0-12px"; got != want {
		t.Errorf("cacheKey() = %q, want %q", got, want)
	}
}

func BenchmarkSynthesize(b *testing.B) {
	g := Geometry{Width: 320, Height: 200}
	p := Params{Refraction: 2, Offset: 10, Chromatic: 1}

	b.Run("miss", func(b *testing.B) {
		s := NewSynthesizer()
		for i := 0; i < b.N; i++ {
			s.Forget("card")
			_, _ = s.Synthesize("card", g, p, "24px")
		}
	})
	b.Run("hit", func(b *testing.B) {
		s := NewSynthesizer()
		_, _ = s.Synthesize("card", g, p, "24px")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = s.Synthesize("card", g, p, "24px")
		}
	})
}
