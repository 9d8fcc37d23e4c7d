package glassfx

import "strconv"

// Element is a rendered element a filter expression is applied to.
type Element interface {
	// ID identifies the element. It keys per-element state and the
	// synthesizer memo, so it must be stable and unique.
	ID() string

	// Size returns the rendered box size in CSS pixels.
	Size() (width, height float64)

	// ComputedStyle returns the computed value of a CSS property, or ""
	// when the property is unset.
	ComputedStyle(property string) string
}

// StaticElement is an Element with fixed measurements.
type StaticElement struct {
	Name   string
	Width  float64
	Height float64

	// Styles holds computed style values by property name.
	Styles map[string]string
}

// ID implements Element.
func (e *StaticElement) ID() string { return e.Name }

// Size implements Element.
func (e *StaticElement) Size() (width, height float64) { return e.Width, e.Height }

// ComputedStyle implements Element. The width and height properties fall
// back to the element size when not set explicitly.
func (e *StaticElement) ComputedStyle(property string) string {
	if v, ok := e.Styles[property]; ok {
		return v
	}
	switch property {
	case "width":
		return strconv.FormatFloat(e.Width, 'f', -1, 64) + "px"
	case "height":
		return strconv.FormatFloat(e.Height, 'f', -1, 64) + "px"
	}
	return ""
}
