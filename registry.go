package glassfx

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"sync/atomic"
)

// LiquidGlass is the name of the built-in refraction filter.
const LiquidGlass = "liquid-glass"

// BuildFunc produces the filter primitives of a custom filter for el.
// args are the non-blank expression arguments in order.
//
// The registry lock is not held while a BuildFunc runs, so it may call
// back into the Registry.
type BuildFunc func(el Element, args []string) (string, error)

// Filter is a custom filter that can appear in filter expressions.
type Filter struct {
	Name  string
	Build BuildFunc

	// UpdatesOn lists computed-style properties whose change forces the
	// filter to be rebuilt.
	UpdatesOn []string
}

// IDGenerator produces filter element IDs. IDs must be unique within a
// document. NextID may be called concurrently.
type IDGenerator interface {
	NextID(filterName string) string
}

// counterIDs numbers filters in creation order: fx-liquid-glass-1, ...
type counterIDs struct {
	n atomic.Uint64
}

func (c *counterIDs) NextID(filterName string) string {
	return fmt.Sprintf("fx-%s-%d", filterName, c.n.Add(1))
}

// RegistryOption configures a Registry during creation.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	synth      *Synthesizer
	ids        IDGenerator
	svgFilters bool
}

// WithSynthesizer sets the synthesizer backing the liquid-glass filter.
func WithSynthesizer(s *Synthesizer) RegistryOption {
	return func(o *registryOptions) {
		o.synth = s
	}
}

// WithIDGenerator replaces the default sequential filter IDs.
func WithIDGenerator(g IDGenerator) RegistryOption {
	return func(o *registryOptions) {
		o.ids = g
	}
}

// WithSVGFilters reports whether the rendering surface supports SVG
// filter references in backdrop-filter. When false, custom filters are
// dropped and only the CSS functions of an expression are applied.
func WithSVGFilters(supported bool) RegistryOption {
	return func(o *registryOptions) {
		o.svgFilters = supported
	}
}

// Registry owns the custom filters, the per-element state and the
// synthesizer memo of one document.
//
// Drive it with Sync once per frame (or on resize/mutation) for each
// element carrying a filter expression; Sync only rebuilds when the
// expression or a tracked style changed.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	filters  map[string]Filter
	elements map[string]*elementState

	synth      *Synthesizer
	ids        IDGenerator
	svgFilters bool
}

// elementState is what the registry remembers about an attached element.
type elementState struct {
	expr       string
	items      []ExpressionItem
	tracked    map[string]string
	attachment *Attachment
}

// NewRegistry creates a registry with the liquid-glass filter registered.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{svgFilters: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.synth == nil {
		o.synth = NewSynthesizer()
	}
	if o.ids == nil {
		o.ids = &counterIDs{}
	}

	r := &Registry{
		filters:    make(map[string]Filter),
		elements:   make(map[string]*elementState),
		synth:      o.synth,
		ids:        o.ids,
		svgFilters: o.svgFilters,
	}
	_ = r.Register(Filter{
		Name:      LiquidGlass,
		Build:     r.buildLiquidGlass,
		UpdatesOn: []string{"border-radius", "width", "height"},
	})
	return r
}

// Synthesizer returns the synthesizer backing the liquid-glass filter.
func (r *Registry) Synthesizer() *Synthesizer {
	return r.synth
}

// Register adds or replaces a custom filter.
func (r *Registry) Register(f Filter) error {
	if f.Name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownFilter)
	}
	if f.Build == nil {
		return fmt.Errorf("%w: %q", ErrNilBuild, f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[f.Name] = f
	return nil
}

// Unregister removes a custom filter. Expressions using its name are
// treated as CSS from then on.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.filters, name)
}

// Registered reports whether name is a custom filter.
func (r *Registry) Registered(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.filters[name]
	return ok
}

// Parse splits expr into CSS functions and registered custom filters.
func (r *Registry) Parse(expr string) []ExpressionItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parseLocked(expr)
}

func (r *Registry) parseLocked(expr string) []ExpressionItem {
	return ParseExpression(expr, func(name string) bool {
		_, ok := r.filters[name]
		return ok
	})
}

// Attach applies expr to el, replacing any previous attachment.
//
// It returns nil when the expression yields no backdrop filter at all.
// Custom filters that fail to build are left out of the attachment and
// their errors are returned joined; the CSS functions still apply.
func (r *Registry) Attach(el Element, expr string) (*Attachment, error) {
	expr = strings.TrimSpace(expr)

	r.mu.Lock()
	p := r.planLocked(expr, r.parseLocked(expr))
	r.mu.Unlock()

	return r.attach(el, p)
}

// Sync brings el up to date with expr and reports whether anything was
// rebuilt. An empty expression detaches el. An unchanged expression with
// unchanged tracked styles is a no-op returning the current attachment.
func (r *Registry) Sync(el Element, expr string) (att *Attachment, changed bool, err error) {
	expr = strings.TrimSpace(expr)

	r.mu.Lock()
	state, ok := r.elements[el.ID()]
	if expr == "" {
		if ok {
			r.detachLocked(el.ID())
		}
		r.mu.Unlock()
		return nil, ok, nil
	}

	var p buildPlan
	if ok && state.expr == expr {
		p = r.planLocked(expr, state.items)
	} else {
		p = r.planLocked(expr, r.parseLocked(expr))
	}
	r.mu.Unlock()

	if ok && state.expr == expr && maps.Equal(state.tracked, p.trackedStyles(el)) {
		return state.attachment, false, nil
	}

	att, err = r.attach(el, p)
	return att, true, err
}

// Detach removes el's attachment and memoized maps.
// Returns true if el was attached.
func (r *Registry) Detach(el Element) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.elements[el.ID()]; !ok {
		return false
	}
	r.detachLocked(el.ID())
	return true
}

// Attachment returns the current attachment of el, if any.
func (r *Registry) Attachment(el Element) (*Attachment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.elements[el.ID()]
	if !ok || state.attachment == nil {
		return nil, false
	}
	return state.attachment, true
}

// Len returns the number of elements with state in the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.elements)
}

func (r *Registry) detachLocked(id string) {
	delete(r.elements, id)
	r.synth.Forget(id)
}

// buildPlan is what building an attachment needs from the registry,
// captured under r.mu so the build itself can run unlocked.
type buildPlan struct {
	expr    string
	items   []ExpressionItem
	filters map[string]Filter
}

// planLocked snapshots the custom filters referenced by items.
// Caller must hold r.mu.
func (r *Registry) planLocked(expr string, items []ExpressionItem) buildPlan {
	p := buildPlan{expr: expr, items: items, filters: make(map[string]Filter)}
	for _, item := range items {
		if item.Kind != ItemCustom {
			continue
		}
		if f, ok := r.filters[item.Name]; ok {
			p.filters[item.Name] = f
		}
	}
	return p
}

// trackedStyles reads the UpdatesOn properties of every custom filter
// in the plan.
func (p buildPlan) trackedStyles(el Element) map[string]string {
	tracked := make(map[string]string)
	for _, item := range p.items {
		if item.Kind != ItemCustom {
			continue
		}
		for _, prop := range p.filters[item.Name].UpdatesOn {
			tracked[prop] = el.ComputedStyle(prop)
		}
	}
	return tracked
}

// attach builds the attachment for p without holding r.mu, then records
// the element state.
func (r *Registry) attach(el Element, p buildPlan) (*Attachment, error) {
	att := &Attachment{}
	parts := make([]string, 0, len(p.items))
	var errs []error

	for _, item := range p.items {
		if item.Kind == ItemCSS {
			parts = append(parts, item.CSS)
			continue
		}

		if !r.svgFilters {
			Logger().Warn("glassfx: SVG filters unsupported, dropping custom filter",
				"element", el.ID(), "filter", item.Name)
			continue
		}

		f, ok := p.filters[item.Name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFilter, item.Name))
			continue
		}
		primitives, err := f.Build(el, item.Args)
		if err != nil {
			Logger().Warn("glassfx: custom filter failed",
				"element", el.ID(), "filter", item.Name, "err", err)
			errs = append(errs, fmt.Errorf("glassfx: filter %q on %q: %w", item.Name, el.ID(), err))
			continue
		}
		if primitives == "" {
			continue
		}

		def := FilterDef{
			ID:         r.ids.NextID(item.Name),
			Name:       item.Name,
			Primitives: primitives,
		}
		att.Filters = append(att.Filters, def)
		parts = append(parts, def.URL())
		Logger().Debug("glassfx: filter attached", "element", el.ID(), "id", def.ID)
	}

	att.BackdropFilter = strings.Join(parts, " ")
	if strings.TrimSpace(att.BackdropFilter) == "" {
		att = nil
	}

	state := &elementState{
		expr:       p.expr,
		items:      p.items,
		tracked:    p.trackedStyles(el),
		attachment: att,
	}
	r.mu.Lock()
	r.elements[el.ID()] = state
	r.mu.Unlock()

	return att, errors.Join(errs...)
}

// buildLiquidGlass measures el and synthesizes its displacement filter.
func (r *Registry) buildLiquidGlass(el Element, args []string) (string, error) {
	w, h := el.Size()
	borderRadius := el.ComputedStyle("border-radius")
	if borderRadius == "" {
		borderRadius = "0"
	}
	return r.synth.Synthesize(el.ID(), RoundGeometry(w, h), ParamsFromArgs(args), borderRadius)
}
