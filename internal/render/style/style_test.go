package style

import (
	"testing"

	"github.com/goliatone/go-famhome/internal/homemd"
)

func TestAlignMappings(t *testing.T) {
	cases := []struct {
		align homemd.Align
		flex  string
		text  string
	}{
		{homemd.AlignLeft, "flex-start", "left"},
		{homemd.AlignCenter, "center", "center"},
		{homemd.AlignRight, "flex-end", "right"},
		{homemd.Align("up"), "flex-start", "left"},
	}
	for _, tc := range cases {
		if got := FlexAlign(tc.align); got != tc.flex {
			t.Fatalf("FlexAlign(%q) = %q, want %q", tc.align, got, tc.flex)
		}
		if got := TextAlign(tc.align); got != tc.text {
			t.Fatalf("TextAlign(%q) = %q, want %q", tc.align, got, tc.text)
		}
	}
}

func TestThemeDefaults(t *testing.T) {
	theme := DefaultTheme()
	if theme.TextShadowCSS() != "0 2px 12px rgba(0,0,0,0.8)" {
		t.Fatalf("unexpected text shadow %q", theme.TextShadowCSS())
	}
	if theme.WithDimmer("").DimmerColor != DefaultDimmerColor {
		t.Fatalf("blank dimmer should keep the default")
	}
	if theme.WithDimmer("rgba(0,0,0,0.4)").DimmerColor != "rgba(0,0,0,0.4)" {
		t.Fatalf("expected dimmer override")
	}
}

func TestDeclarationsRoundTrip(t *testing.T) {
	decls := ParseDeclarations("Color: red; text-align: center; margin: 0 !important")

	if decls.Len() != 3 {
		t.Fatalf("expected 3 declarations, got %d", decls.Len())
	}
	if value, ok := decls.Get("color"); !ok || value != "red" {
		t.Fatalf("expected lower-cased color property, got %q %v", value, ok)
	}
	if got := decls.String(); got != "color: red; text-align: center; margin: 0 !important" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestDeclarationsSetAndDefault(t *testing.T) {
	decls := ParseDeclarations("color: red; position: absolute; color: blue")

	decls.Set("color", "white")
	decls.SetDefault("position", "relative")
	decls.SetDefault("z-index", "1")

	if got := decls.String(); got != "color: white; position: absolute; z-index: 1" {
		t.Fatalf("unexpected declarations %q", got)
	}
}

func TestDeclarationsFilter(t *testing.T) {
	decls := Declare("color", "red", "background", "url(x)", "dangling")
	decls.Filter(func(property, _ string) bool { return property != "background" })

	if got := decls.String(); got != "color: red" {
		t.Fatalf("unexpected declarations %q", got)
	}
}

func TestParseDeclarationsEmpty(t *testing.T) {
	if ParseDeclarations("  ").Len() != 0 {
		t.Fatal("expected no declarations")
	}
}

func TestParseDeclarationsKeepsLastValue(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		property string
		want     string
	}{
		{name: "single without semicolon", input: "color: red", property: "color", want: "red"},
		{name: "single with semicolon", input: "color: red;", property: "color", want: "red"},
		{name: "last of many", input: "display: flex; margin: 15px 0", property: "margin", want: "15px 0"},
		{name: "trailing whitespace", input: "display: flex; margin: 15px 0  \n", property: "margin", want: "15px 0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDeclarations(tc.input).Get(tc.property)
			if !ok || got != tc.want {
				t.Fatalf("expected %s %q, got %q %v", tc.property, tc.want, got, ok)
			}
		})
	}
}

func TestDeclareStringParsesBack(t *testing.T) {
	built := Declare("display", "flex", "margin", "15px 0")
	parsed := ParseDeclarations(built.String())

	if parsed.Len() != 2 {
		t.Fatalf("expected 2 declarations, got %d", parsed.Len())
	}
	if got := parsed.String(); got != built.String() {
		t.Fatalf("expected %q, got %q", built.String(), got)
	}
}
