package glassfx

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Default effect parameters, used when an argument is omitted.
const (
	DefaultRefraction = 1.0
	DefaultOffset     = 10.0
	DefaultChromatic  = 0.0
)

// chromaticSpread scales the chromatic parameter into the refraction
// difference between the red, green and blue maps.
const chromaticSpread = 0.25

// Params are the liquid-glass effect parameters as written in a filter
// expression. Refraction and Offset are halved before use; see
// RefractionValue and OffsetValue.
type Params struct {
	// Refraction is the lens strength. Negative values invert the lens.
	Refraction float64

	// Offset is the edge inset, in CSS pixels, of the neutral mask.
	Offset float64

	// Chromatic is the colour-fringing amount. 0 disables aberration.
	Chromatic float64
}

// DefaultParams returns refraction 1, offset 10, chromatic 0.
func DefaultParams() Params {
	return Params{
		Refraction: DefaultRefraction,
		Offset:     DefaultOffset,
		Chromatic:  DefaultChromatic,
	}
}

// ParamsFromArgs builds Params from positional expression arguments
// (refraction, offset, chromatic). Missing arguments take their default;
// arguments that are present but not numeric become 0.
func ParamsFromArgs(args []string) Params {
	p := DefaultParams()
	fields := []*float64{&p.Refraction, &p.Offset, &p.Chromatic}
	for i, field := range fields {
		if i >= len(args) {
			break
		}
		*field = ParseNumber(args[i])
	}
	return p
}

// RefractionValue is half the refraction, the scale applied to the
// gradient. Non-finite values yield 0.
func (p Params) RefractionValue() float64 {
	return finiteOrZero(p.Refraction) / 2
}

// OffsetValue is half the offset: the mask inset and blur sigma in pixels.
// Negative and non-finite values yield 0.
func (p Params) OffsetValue() float64 {
	return max(finiteOrZero(p.Offset), 0) / 2
}

// ChromaticValue is the chromatic amount. Negative and non-finite values
// yield 0.
func (p Params) ChromaticValue() float64 {
	return max(finiteOrZero(p.Chromatic), 0)
}

// ChannelRefractions returns the adjusted refraction of each map to build:
// one value without chromatic aberration, otherwise the red, green and
// blue maps at RefractionValue plus +δ, 0 and -δ, δ = chromatic * 0.25.
func (p Params) ChannelRefractions() []float64 {
	r := p.RefractionValue()
	c := p.ChromaticValue()
	if c == 0 {
		return []float64{r}
	}
	delta := c * chromaticSpread
	return []float64{r + delta, r, r - delta}
}

// numberPrefix matches the leading decimal number of a CSS value.
var numberPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseNumber parses the leading number of s, ignoring leading whitespace
// and any trailing unit ("12px" is 12, "50%" is 50). Values without a
// leading number, and non-finite values, parse as 0.
func ParseNumber(s string) float64 {
	v, ok := parseNumberPrefix(s)
	if !ok {
		return 0
	}
	return finiteOrZero(v)
}

// parseNumberPrefix reports the leading number of s, if any.
func parseNumberPrefix(s string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out-of-range exponents come back as ±Inf with an error.
		return v, !math.IsNaN(v)
	}
	return v, true
}

// finiteOrZero maps NaN and ±Inf to 0.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// formatNumber renders v the way cache keys and markup expect: shortest
// representation, no exponent for ordinary magnitudes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
