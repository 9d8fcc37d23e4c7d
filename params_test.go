package glassfx

import (
	"math"
	"slices"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"  2.5 ", 2.5},
		{"12px", 12},
		{"50%", 50},
		{"-3", -3},
		{"+4", 4},
		{".5", 0.5},
		{"1e2", 100},
		{"3.", 3},
		{"abc", 0},
		{"", 0},
		{"px12", 0},
		{"Infinity", 0},
		{"-Infinity", 0},
		{"1e999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseNumber(tt.in); got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParamsFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Params
	}{
		{"defaults", nil, Params{Refraction: 1, Offset: 10, Chromatic: 0}},
		{"refraction only", []string{"2"}, Params{Refraction: 2, Offset: 10, Chromatic: 0}},
		{"all", []string{"2", "6", "1"}, Params{Refraction: 2, Offset: 6, Chromatic: 1}},
		{"unparseable is zero", []string{"strong", "x"}, Params{Refraction: 0, Offset: 0, Chromatic: 0}},
		{"units ignored", []string{"1.5", "8px"}, Params{Refraction: 1.5, Offset: 8, Chromatic: 0}},
		{"extra ignored", []string{"1", "2", "3", "4"}, Params{Refraction: 1, Offset: 2, Chromatic: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParamsFromArgs(tt.args); got != tt.want {
				t.Errorf("ParamsFromArgs(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParamsValues(t *testing.T) {
	p := Params{Refraction: 3, Offset: 10, Chromatic: 2}
	if got := p.RefractionValue(); got != 1.5 {
		t.Errorf("RefractionValue() = %v, want 1.5", got)
	}
	if got := p.OffsetValue(); got != 5 {
		t.Errorf("OffsetValue() = %v, want 5", got)
	}
	if got := p.ChromaticValue(); got != 2 {
		t.Errorf("ChromaticValue() = %v, want 2", got)
	}

	bad := Params{Refraction: math.NaN(), Offset: -4, Chromatic: math.Inf(1)}
	if bad.RefractionValue() != 0 || bad.OffsetValue() != 0 || bad.ChromaticValue() != 0 {
		t.Errorf("malformed params should coerce to 0, got %v %v %v",
			bad.RefractionValue(), bad.OffsetValue(), bad.ChromaticValue())
	}

	// Negative refraction inverts the lens and is kept.
	if got := (Params{Refraction: -2}).RefractionValue(); got != -1 {
		t.Errorf("RefractionValue() = %v, want -1", got)
	}
}

func TestChannelRefractions(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want []float64
	}{
		{"single", Params{Refraction: 1, Offset: 10}, []float64{0.5}},
		{"chromatic", Params{Refraction: 2, Offset: 10, Chromatic: 1}, []float64{1.25, 1, 0.75}},
		{"wide chromatic", Params{Refraction: 4, Chromatic: 2}, []float64{2.5, 2, 1.5}},
		{"negative chromatic disabled", Params{Refraction: 2, Chromatic: -1}, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.ChannelRefractions(); !slices.Equal(got, tt.want) {
				t.Errorf("ChannelRefractions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{-1, "-1"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.v); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
