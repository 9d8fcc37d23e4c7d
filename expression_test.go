package glassfx

import (
	"reflect"
	"testing"
)

func isLiquidGlass(name string) bool { return name == LiquidGlass }

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []ExpressionItem
	}{
		{
			name: "empty",
			expr: "",
			want: []ExpressionItem{},
		},
		{
			name: "keyword only",
			expr: "none",
			want: []ExpressionItem{},
		},
		{
			name: "custom with args",
			expr: "liquid-glass(2, 10, 1)",
			want: []ExpressionItem{
				{Kind: ItemCustom, Name: "liquid-glass", Args: []string{"2", "10", "1"}},
			},
		},
		{
			name: "custom without args",
			expr: "liquid-glass()",
			want: []ExpressionItem{
				{Kind: ItemCustom, Name: "liquid-glass"},
			},
		},
		{
			name: "blank args dropped",
			expr: "liquid-glass(, 4,  ,1)",
			want: []ExpressionItem{
				{Kind: ItemCustom, Name: "liquid-glass", Args: []string{"4", "1"}},
			},
		},
		{
			name: "css passes through verbatim",
			expr: "blur(4px) saturate( 1.5 )",
			want: []ExpressionItem{
				{Kind: ItemCSS, Name: "blur", CSS: "blur(4px)"},
				{Kind: ItemCSS, Name: "saturate", CSS: "saturate( 1.5 )"},
			},
		},
		{
			name: "mixed keeps order",
			expr: "brightness(1.1) liquid-glass(2) blur(4px)",
			want: []ExpressionItem{
				{Kind: ItemCSS, Name: "brightness", CSS: "brightness(1.1)"},
				{Kind: ItemCustom, Name: "liquid-glass", Args: []string{"2"}},
				{Kind: ItemCSS, Name: "blur", CSS: "blur(4px)"},
			},
		},
		{
			name: "space before paren",
			expr: "liquid-glass (3)",
			want: []ExpressionItem{
				{Kind: ItemCustom, Name: "liquid-glass", Args: []string{"3"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExpression(tt.expr, isLiquidGlass)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseExpression(%q) =\n%+v\nwant\n%+v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseExpressionNilIsCustom(t *testing.T) {
	items := ParseExpression("liquid-glass(2) blur(1px)", nil)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Kind != ItemCSS {
			t.Errorf("%s kind = %v, want css", item.Name, item.Kind)
		}
	}
	if items[0].CSS != "liquid-glass(2)" {
		t.Errorf("CSS = %q, want %q", items[0].CSS, "liquid-glass(2)")
	}
}

func TestItemKindString(t *testing.T) {
	tests := []struct {
		kind ItemKind
		want string
	}{
		{ItemCSS, "css"},
		{ItemCustom, "custom"},
		{ItemKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ItemKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
