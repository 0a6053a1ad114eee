package native

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"nsx/css"
)

func decl(property, raw string) css.Declaration {
	return css.Declaration{Property: property, Value: parseValue(raw)}
}

// multi builds a declaration the way the parser does for multi-token values.
func multi(property, raw string) css.Declaration {
	return css.Declaration{Property: property, Value: css.Value{Raw: raw, Keyword: raw}}
}

func TestConvert(t *testing.T) {
	c := NewConverter(zaptest.NewLogger(t))

	tests := []struct {
		name string
		in   css.Declaration
		want []Property
	}{
		{"px", decl("width", "12px"), []Property{{"width", 12.0}}},
		{"unitless zero", decl("margin-top", "0"), []Property{{"marginTop", 0.0}}},
		{"negative", decl("top", "-2px"), []Property{{"top", -2.0}}},
		{"rem", decl("padding-top", "1.5rem"), []Property{{"paddingTop", 24.0}}},
		{"percent", decl("width", "50%"), []Property{{"width", "50%"}}},
		{"auto", decl("height", "auto"), []Property{{"height", "auto"}}},
		{"color hash", decl("color", "#fff"), []Property{{"color", "#fff"}}},
		{"color function", multi("background-color", "rgb(0, 0, 0)"), []Property{{"backgroundColor", "rgb(0, 0, 0)"}}},
		{"opacity", decl("opacity", "0.5"), []Property{{"opacity", 0.5}}},
		{"z-index", decl("z-index", "10"), []Property{{"zIndex", 10.0}}},
		{"display", decl("display", "flex"), []Property{{"display", "flex"}}},
		{"justify alias", decl("justify-content", "start"), []Property{{"justifyContent", "flex-start"}}},
		{"font weight keyword", decl("font-weight", "bold"), []Property{{"fontWeight", "bold"}}},
		{"font weight number", decl("font-weight", "700"), []Property{{"fontWeight", "700"}}},
		{"font family", multi("font-family", `"Inter", sans-serif`), []Property{{"fontFamily", "Inter"}}},
		{"aspect number", decl("aspect-ratio", "1.5"), []Property{{"aspectRatio", 1.5}}},
		{"aspect ratio", multi("aspect-ratio", "16 / 8"), []Property{{"aspectRatio", 2.0}}},
		{"line height px", decl("line-height", "1.25rem"), []Property{{"lineHeight", 20.0}}},
		{"direction inherit", decl("direction", "inherit"), []Property{{"direction", "inherit"}}},
		{"decoration line", multi("text-decoration-line", "line-through underline"),
			[]Property{{"textDecorationLine", "underline line-through"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.in)
			if err != nil {
				t.Fatalf("Convert(%s: %s) failed: %v", tt.in.Property, tt.in.Value.Raw, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("properties mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvert_Shorthands(t *testing.T) {
	c := NewConverter(zaptest.NewLogger(t))

	tests := []struct {
		name string
		in   css.Declaration
		want []Property
	}{
		{"margin one", decl("margin", "4px"), []Property{
			{"marginTop", 4.0}, {"marginRight", 4.0}, {"marginBottom", 4.0}, {"marginLeft", 4.0},
		}},
		{"margin two", multi("margin", "0 auto"), []Property{
			{"marginTop", 0.0}, {"marginRight", "auto"}, {"marginBottom", 0.0}, {"marginLeft", "auto"},
		}},
		{"padding three", multi("padding", "1px 2px 3px"), []Property{
			{"paddingTop", 1.0}, {"paddingRight", 2.0}, {"paddingBottom", 3.0}, {"paddingLeft", 2.0},
		}},
		{"padding four", multi("padding", "1px 2px 3px 4px"), []Property{
			{"paddingTop", 1.0}, {"paddingRight", 2.0}, {"paddingBottom", 3.0}, {"paddingLeft", 4.0},
		}},
		{"inset", decl("inset", "0"), []Property{
			{"top", 0.0}, {"right", 0.0}, {"bottom", 0.0}, {"left", 0.0},
		}},
		{"border radius", decl("border-radius", "0.25rem"), []Property{
			{"borderTopLeftRadius", 4.0}, {"borderTopRightRadius", 4.0},
			{"borderBottomRightRadius", 4.0}, {"borderBottomLeftRadius", 4.0},
		}},
		{"border color", multi("border-color", "red blue"), []Property{
			{"borderTopColor", "red"}, {"borderRightColor", "blue"},
			{"borderBottomColor", "red"}, {"borderLeftColor", "blue"},
		}},
		{"border", multi("border", "1px solid rgb(0, 0, 0)"), []Property{
			{"borderWidth", 1.0}, {"borderStyle", "solid"}, {"borderColor", "rgb(0, 0, 0)"},
		}},
		{"border none", decl("border", "none"), []Property{{"borderWidth", 0.0}}},
		{"flex number", decl("flex", "1"), []Property{
			{"flexGrow", 1.0}, {"flexShrink", 1.0}, {"flexBasis", 0.0},
		}},
		{"flex none", decl("flex", "none"), []Property{
			{"flexGrow", 0.0}, {"flexShrink", 0.0}, {"flexBasis", "auto"},
		}},
		{"flex auto", decl("flex", "auto"), []Property{
			{"flexGrow", 1.0}, {"flexShrink", 1.0}, {"flexBasis", "auto"},
		}},
		{"flex full", multi("flex", "2 0 50%"), []Property{
			{"flexGrow", 2.0}, {"flexShrink", 0.0}, {"flexBasis", "50%"},
		}},
		{"gap one", decl("gap", "1rem"), []Property{{"rowGap", 16.0}, {"columnGap", 16.0}}},
		{"gap two", multi("gap", "2px 4px"), []Property{{"rowGap", 2.0}, {"columnGap", 4.0}}},
		{"text decoration", multi("text-decoration", "underline dotted red"), []Property{
			{"textDecorationLine", "underline"}, {"textDecorationStyle", "dotted"}, {"textDecorationColor", "red"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.in)
			if err != nil {
				t.Fatalf("Convert(%s: %s) failed: %v", tt.in.Property, tt.in.Value.Raw, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("properties mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	c := NewConverter(zaptest.NewLogger(t))

	tests := []struct {
		name string
		in   css.Declaration
		want error
	}{
		{"unknown property", decl("transform", "none"), ErrUnsupportedProperty},
		{"vendor prefix", decl("-webkit-appearance", "none"), ErrUnsupportedProperty},
		{"em", decl("font-size", "1.2em"), ErrUnsupportedUnit},
		{"viewport", decl("height", "100vh"), ErrUnsupportedUnit},
		{"box unit", multi("margin", "1px 2em"), ErrUnsupportedUnit},
		{"grid display", decl("display", "grid"), ErrUnsupportedValue},
		{"global keyword", decl("color", "inherit"), ErrUnsupportedValue},
		{"global keyword for keyword property", decl("display", "inherit"), ErrUnsupportedValue},
		{"custom property", multi("color", "var(--tw-text)"), ErrUnsupportedValue},
		{"currentcolor", decl("border-top-color", "currentColor"), ErrUnsupportedValue},
		{"unitless line height", decl("line-height", "1.5"), ErrUnsupportedValue},
		{"odd font weight", decl("font-weight", "750"), ErrUnsupportedValue},
		{"length keyword", decl("min-width", "auto"), ErrUnsupportedValue},
		{"too many values", multi("padding", "1px 2px 3px 4px 5px"), ErrUnsupportedValue},
		{"flex keyword", decl("flex", "initial"), ErrUnsupportedValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.in)
			if err == nil {
				t.Fatalf("expected error, got %v", got)
			}
			if got != nil {
				t.Errorf("expected no properties on error, got %v", got)
			}
			var ce *ConversionError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConversionError, got %T", err)
			}
			if ce.Property != tt.in.Property || ce.Value != tt.in.Value.Raw {
				t.Errorf("unexpected error context: %q %q", ce.Property, ce.Value)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConvert_RemBase(t *testing.T) {
	c := NewConverter(nil, WithRemBase(10))

	got, err := c.Convert(decl("font-size", "1.5rem"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]Property{{"fontSize", 15.0}}, got); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}

	// non-positive base is ignored
	c = NewConverter(nil, WithRemBase(0))
	if c.remBase != DefaultRemBase {
		t.Errorf("expected default rem base, got %v", c.remBase)
	}
}

func TestNativeName(t *testing.T) {
	tests := map[string]string{
		"color":                      "color",
		"background-color":           "backgroundColor",
		"border-bottom-right-radius": "borderBottomRightRadius",
		"z-index":                    "zIndex",
	}
	for in, want := range tests {
		if got := NativeName(in); got != want {
			t.Errorf("NativeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSupportedProperties(t *testing.T) {
	props := SupportedProperties()

	for i := 1; i < len(props); i++ {
		if props[i-1] >= props[i] {
			t.Fatalf("list is not sorted at %d: %q >= %q", i, props[i-1], props[i])
		}
	}
	for _, p := range props {
		if !IsSupportedProperty(p) {
			t.Errorf("IsSupportedProperty(%q) = false", p)
		}
	}
	if IsSupportedProperty("transform") {
		t.Error("transform must not be supported")
	}
	if !IsShorthandProperty("margin") || IsShorthandProperty("margin-top") {
		t.Error("unexpected shorthand classification of margin")
	}
}

func TestSplitComponents(t *testing.T) {
	got := splitComponents("  1px solid\trgb(0, 0, 0) ")
	want := []string{"1px", "solid", "rgb(0, 0, 0)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}
}
