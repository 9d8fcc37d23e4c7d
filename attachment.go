package glassfx

import (
	"fmt"
	"html"
	"strings"
)

// FilterDef is one generated SVG filter.
type FilterDef struct {
	// ID is the unique element ID referenced from backdrop-filter.
	ID string

	// Name is the custom filter that produced it.
	Name string

	// Primitives is the filter content (feImage, feDisplacementMap, ...).
	Primitives string
}

// URL returns the CSS reference to the filter, url(#id).
func (d FilterDef) URL() string {
	return "url(#" + d.ID + ")"
}

// Markup returns the <filter> element wrapping the primitives. The filter
// region matches the element box and works in sRGB, as the maps are
// authored in sRGB.
func (d FilterDef) Markup() string {
	return fmt.Sprintf(`<filter id="%s" x="0" y="0" width="100%%" height="100%%" color-interpolation-filters="sRGB">%s</filter>`,
		html.EscapeString(d.ID), d.Primitives)
}

// Attachment is the result of applying a filter expression to an element.
type Attachment struct {
	// Filters are the generated SVG filters, in expression order.
	Filters []FilterDef

	// BackdropFilter is the backdrop-filter value: url(#id) references and
	// CSS functions in expression order.
	BackdropFilter string
}

// SVG returns a zero-size <svg> element holding every filter definition.
func (a *Attachment) SVG() string {
	var b strings.Builder
	b.WriteString(`<svg style="position: absolute; width: 0; height: 0; pointer-events: none;">`)
	for _, f := range a.Filters {
		b.WriteString(f.Markup())
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// ContainerStyle is the inline style of the overlay that carries the
// backdrop filter. It fills the element, sits behind its content and
// inherits its border radius.
func (a *Attachment) ContainerStyle() string {
	return "position: absolute; top: 0; left: 0; right: 0; bottom: 0; " +
		"backdrop-filter: " + a.BackdropFilter + "; " +
		"background: transparent; pointer-events: none; z-index: -1; " +
		"overflow: hidden; border-radius: inherit;"
}

// HTML returns the markup to append inside the element: the filter
// definitions followed by the fx-container overlay.
func (a *Attachment) HTML() string {
	return a.SVG() + "\n" +
		`<div class="fx-container" style="` + html.EscapeString(a.ContainerStyle()) + `"></div>`
}
