package native

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"nsx/css"
)

// Converter converts CSS declarations to native style properties.
type Converter struct {
	log     *zap.Logger
	remBase float64
}

// Option configures Converter.
type Option func(*Converter)

// WithRemBase sets number of points in one rem.
func WithRemBase(base float64) Option {
	return func(c *Converter) {
		if base > 0 {
			c.remBase = base
		}
	}
}

// NewConverter creates a new CSS-to-native converter.
func NewConverter(log *zap.Logger, opts ...Option) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Converter{log: log.Named("css-converter"), remBase: DefaultRemBase}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert converts a single declaration. On failure no properties are
// returned and error is always *ConversionError.
func (c *Converter) Convert(d css.Declaration) ([]Property, error) {
	props, err := c.convert(d.Property, d.Value)
	if err != nil {
		c.log.Debug("Unable to convert declaration",
			zap.String("property", d.Property), zap.String("value", d.Value.Raw), zap.Error(err))
		return nil, &ConversionError{Property: d.Property, Value: d.Value.Raw, Err: err}
	}
	return props, nil
}

func (c *Converter) convert(name string, value css.Value) ([]Property, error) {
	if !IsSupportedProperty(name) {
		return nil, ErrUnsupportedProperty
	}

	// direction: inherit is a native value as well
	keyword := strings.ToLower(value.Keyword)
	if globalKeywords[keyword] && !slices.Contains(keywordValues[name], keyword) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, keyword)
	}
	if strings.Contains(strings.ToLower(value.Raw), "var(") {
		return nil, fmt.Errorf("%w: custom property reference", ErrUnsupportedValue)
	}

	if IsShorthandProperty(name) {
		return c.expandShorthand(name, value)
	}

	v, err := c.convertValue(name, cssToNative[name], value)
	if err != nil {
		return nil, err
	}
	return []Property{{Name: NativeName(name), Value: v}}, nil
}

// convertValue converts value of a longhand property.
func (c *Converter) convertValue(name string, kind propertyKind, value css.Value) (any, error) {
	switch kind {
	case kindLengthOrAuto:
		if value.IsKeyword() && strings.EqualFold(value.Keyword, "auto") {
			return "auto", nil
		}
		return lengthValue(value, c.remBase)

	case kindLength:
		if name == "line-height" && value.Unit == "" && value.Value != 0 {
			return nil, fmt.Errorf("%w: unitless line-height", ErrUnsupportedValue)
		}
		return lengthValue(value, c.remBase)

	case kindNumber:
		return numberValue(value)

	case kindColor:
		return convertColor(value)

	case kindKeyword:
		return convertKeyword(name, value)

	case kindFontWeight:
		return convertFontWeight(value)

	case kindFontFamily:
		return convertFontFamily(value)

	case kindAspectRatio:
		return convertAspectRatio(value)

	default:
		return nil, ErrUnsupportedProperty
	}
}

// expandShorthand expands CSS shorthand properties into individual properties.
func (c *Converter) expandShorthand(name string, value css.Value) ([]Property, error) {
	parts := splitComponents(value.Raw)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrUnsupportedValue)
	}

	switch name {
	case "margin":
		return c.expandBox(parts, kindLengthOrAuto, "marginTop", "marginRight", "marginBottom", "marginLeft")
	case "padding":
		return c.expandBox(parts, kindLength, "paddingTop", "paddingRight", "paddingBottom", "paddingLeft")
	case "inset":
		return c.expandBox(parts, kindLengthOrAuto, "top", "right", "bottom", "left")
	case "border-width":
		return c.expandBox(parts, kindLength, "borderTopWidth", "borderRightWidth", "borderBottomWidth", "borderLeftWidth")
	case "border-color":
		return c.expandBox(parts, kindColor, "borderTopColor", "borderRightColor", "borderBottomColor", "borderLeftColor")
	case "border-radius":
		return c.expandBox(parts, kindLength, "borderTopLeftRadius", "borderTopRightRadius", "borderBottomRightRadius", "borderBottomLeftRadius")
	case "border":
		return c.expandBorder(parts)
	case "flex":
		return c.expandFlex(parts)
	case "gap":
		return c.expandGap(parts)
	case "text-decoration":
		return c.expandTextDecoration(parts)
	}
	return nil, ErrUnsupportedProperty
}

// expandBox expands a CSS box model shorthand to individual properties.
// CSS shorthand formats:
//   - 1 value: all sides
//   - 2 values: top/bottom, left/right
//   - 3 values: top, left/right, bottom
//   - 4 values: top, right, bottom, left
func (c *Converter) expandBox(parts []string, kind propertyKind, top, right, bottom, left string) ([]Property, error) {
	values := make([]any, len(parts))
	for i, part := range parts {
		v, err := c.convertValue("", kind, parseComponent(part, kind))
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	var t, r, b, l any
	switch len(values) {
	case 1:
		t, r, b, l = values[0], values[0], values[0], values[0]
	case 2:
		t, b = values[0], values[0]
		r, l = values[1], values[1]
	case 3:
		t = values[0]
		r, l = values[1], values[1]
		b = values[2]
	case 4:
		t, r, b, l = values[0], values[1], values[2], values[3]
	default:
		return nil, fmt.Errorf("%w: too many values", ErrUnsupportedValue)
	}

	return []Property{
		{Name: top, Value: t},
		{Name: right, Value: r},
		{Name: bottom, Value: b},
		{Name: left, Value: l},
	}, nil
}

// expandBorder handles "border: <width> <style> <color>" in any order.
func (c *Converter) expandBorder(parts []string) ([]Property, error) {
	if len(parts) == 1 && strings.EqualFold(parts[0], "none") {
		return []Property{{Name: "borderWidth", Value: 0.0}}, nil
	}
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: too many values", ErrUnsupportedValue)
	}

	var width, style, color []Property
	for _, part := range parts {
		v := parseValue(part)
		switch {
		case width == nil && v.IsNumeric():
			w, err := lengthValue(v, c.remBase)
			if err != nil {
				return nil, err
			}
			width = []Property{{Name: "borderWidth", Value: w}}
		case style == nil && slices.Contains(keywordValues["border-style"], v.Keyword):
			style = []Property{{Name: "borderStyle", Value: v.Keyword}}
		case color == nil:
			col, err := convertColor(css.Value{Raw: part, Keyword: part})
			if err != nil {
				return nil, err
			}
			color = []Property{{Name: "borderColor", Value: col}}
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, part)
		}
	}
	return slices.Concat(width, style, color), nil
}

// expandFlex handles flex shorthand: none, auto, <grow> [<shrink>] [<basis>].
func (c *Converter) expandFlex(parts []string) ([]Property, error) {
	grow, shrink, basis := any(nil), any(1.0), any(0.0)

	switch {
	case len(parts) == 1 && strings.EqualFold(parts[0], "none"):
		grow, shrink, basis = 0.0, 0.0, "auto"
	case len(parts) == 1 && strings.EqualFold(parts[0], "auto"):
		grow, basis = 1.0, "auto"
	case len(parts) <= 3:
		g, err := numberValue(parseValue(parts[0]))
		if err != nil {
			return nil, err
		}
		grow = g
		rest := parts[1:]
		if len(rest) > 0 {
			if s := parseValue(rest[0]); s.Unit == "" && s.IsNumeric() {
				shrink = s.Value
				rest = rest[1:]
			}
		}
		if len(rest) == 1 {
			b, err := c.convertValue("", kindLengthOrAuto, parseValue(rest[0]))
			if err != nil {
				return nil, err
			}
			basis = b
		} else if len(rest) > 1 {
			return nil, fmt.Errorf("%w: too many values", ErrUnsupportedValue)
		}
	default:
		return nil, fmt.Errorf("%w: too many values", ErrUnsupportedValue)
	}

	return []Property{
		{Name: "flexGrow", Value: grow},
		{Name: "flexShrink", Value: shrink},
		{Name: "flexBasis", Value: basis},
	}, nil
}

// expandGap handles "gap: <row> [<column>]".
func (c *Converter) expandGap(parts []string) ([]Property, error) {
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: too many values", ErrUnsupportedValue)
	}
	row, err := lengthValue(parseValue(parts[0]), c.remBase)
	if err != nil {
		return nil, err
	}
	col := row
	if len(parts) == 2 {
		if col, err = lengthValue(parseValue(parts[1]), c.remBase); err != nil {
			return nil, err
		}
	}
	return []Property{{Name: "rowGap", Value: row}, {Name: "columnGap", Value: col}}, nil
}

// expandTextDecoration handles line keywords followed by optional style and color.
func (c *Converter) expandTextDecoration(parts []string) ([]Property, error) {
	var (
		lines []string
		props []Property
	)
	for _, part := range parts {
		kw := strings.ToLower(part)
		switch {
		case kw == "none" || kw == "underline" || kw == "line-through":
			lines = append(lines, kw)
		case slices.Contains(keywordValues["text-decoration-style"], kw):
			props = append(props, Property{Name: "textDecorationStyle", Value: kw})
		default:
			col, err := convertColor(css.Value{Raw: part, Keyword: part})
			if err != nil {
				return nil, err
			}
			props = append(props, Property{Name: "textDecorationColor", Value: col})
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no decoration line", ErrUnsupportedValue)
	}
	line, err := convertKeyword("text-decoration-line", css.Value{Keyword: strings.Join(lines, " ")})
	if err != nil {
		return nil, err
	}
	return append([]Property{{Name: "textDecorationLine", Value: line}}, props...), nil
}

// parseComponent parses one shorthand component, colors are never numbers.
func parseComponent(s string, kind propertyKind) css.Value {
	if kind == kindColor {
		return css.Value{Raw: s, Keyword: s}
	}
	return parseValue(s)
}

// convertColor passes color through as written.
func convertColor(value css.Value) (string, error) {
	raw := strings.TrimSpace(value.Raw)
	switch {
	case raw == "":
		return "", fmt.Errorf("%w: empty color", ErrUnsupportedValue)
	case strings.EqualFold(raw, "currentcolor"):
		return "", fmt.Errorf("%w: currentcolor", ErrUnsupportedValue)
	case value.IsNumeric():
		return "", fmt.Errorf("%w: %s is not a color", ErrUnsupportedValue, raw)
	}
	return raw, nil
}

// convertKeyword checks value against keywords accepted by the property.
func convertKeyword(name string, value css.Value) (string, error) {
	kw := strings.ToLower(strings.Join(strings.Fields(value.Keyword), " "))
	if alias, ok := keywordAliases[kw]; ok {
		kw = alias
	}
	if slices.Contains(keywordValues[name], kw) {
		return kw, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Raw)
}

// convertFontWeight converts CSS font-weight values, numbers become strings.
func convertFontWeight(value css.Value) (string, error) {
	switch strings.ToLower(value.Keyword) {
	case "normal", "bold":
		return strings.ToLower(value.Keyword), nil
	case "":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Raw)
	}

	w := int(value.Value)
	if value.Unit != "" || float64(w) != value.Value || w < 100 || w > 900 || w%100 != 0 {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Raw)
	}
	return formatNumber(value.Value), nil
}

// convertFontFamily keeps only the first family of a list.
func convertFontFamily(value css.Value) (string, error) {
	first, _, _ := strings.Cut(value.Raw, ",")
	first = strings.Trim(strings.TrimSpace(first), `"'`)
	if first == "" {
		return "", fmt.Errorf("%w: empty font family", ErrUnsupportedValue)
	}
	return first, nil
}

// convertAspectRatio accepts a number or "width / height".
func convertAspectRatio(value css.Value) (any, error) {
	if value.Unit == "" && value.IsNumeric() {
		return value.Value, nil
	}
	w, h, ok := strings.Cut(value.Raw, "/")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Raw)
	}
	wv, err := numberValue(parseValue(w))
	if err != nil {
		return nil, err
	}
	hv, err := numberValue(parseValue(h))
	if err != nil || hv == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, value.Raw)
	}
	return wv / hv, nil
}
