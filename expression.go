package glassfx

import (
	"regexp"
	"strings"
)

// ItemKind distinguishes custom filters from plain CSS filter functions.
type ItemKind int

const (
	// ItemCSS is an ordinary CSS filter function such as blur(4px).
	ItemCSS ItemKind = iota

	// ItemCustom is a registered custom filter such as liquid-glass(2, 10).
	ItemCustom
)

// String returns the kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemCSS:
		return "css"
	case ItemCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ExpressionItem is one function call of a filter expression.
type ExpressionItem struct {
	Kind ItemKind

	// Name is the function name, e.g. "liquid-glass" or "blur".
	Name string

	// Args are the trimmed, non-blank arguments of a custom filter.
	// Blank arguments are dropped, so later arguments shift left.
	Args []string

	// CSS is the function as it should appear in a backdrop-filter value.
	// Set for ItemCSS only.
	CSS string
}

// functionCall matches name(args) with hyphenated names and no nesting.
var functionCall = regexp.MustCompile(`(\w+(?:-\w+)*)\s*\(([^)]*)\)`)

// ParseExpression splits a filter expression such as
// "liquid-glass(2, 10, 1) blur(4px)" into function calls in order.
// isCustom reports which names are custom filters; nil treats every name
// as CSS. Text outside function calls is ignored.
func ParseExpression(expr string, isCustom func(name string) bool) []ExpressionItem {
	matches := functionCall.FindAllStringSubmatch(expr, -1)
	items := make([]ExpressionItem, 0, len(matches))

	for _, m := range matches {
		name, params := m[1], m[2]

		if isCustom == nil || !isCustom(name) {
			items = append(items, ExpressionItem{
				Kind: ItemCSS,
				Name: name,
				CSS:  name + "(" + params + ")",
			})
			continue
		}

		items = append(items, ExpressionItem{
			Kind: ItemCustom,
			Name: name,
			Args: splitArgs(params),
		})
	}

	return items
}

// splitArgs splits comma-separated arguments, dropping blank ones.
func splitArgs(params string) []string {
	if strings.TrimSpace(params) == "" {
		return nil
	}
	var args []string
	for _, p := range strings.Split(params, ",") {
		if p = strings.TrimSpace(p); p != "" {
			args = append(args, p)
		}
	}
	return args
}
