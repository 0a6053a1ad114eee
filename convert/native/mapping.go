package native

import (
	"maps"
	"slices"
	"strings"
)

// propertyKind selects how the value of a CSS property is converted.
type propertyKind int

const (
	kindUnknown      propertyKind = iota
	kindLength                    // px, rem, %
	kindLengthOrAuto              // kindLength or "auto"
	kindNumber                    // plain number
	kindColor                     // passed through
	kindKeyword                   // one of keywordValues[property]
	kindFontWeight                // normal, bold, 100-900
	kindFontFamily                // first family, unquoted
	kindAspectRatio               // number or "w / h"
	kindShorthand                 // expanded by expandShorthand
)

// cssToNative maps CSS property names to conversion kinds.
var cssToNative = map[string]propertyKind{
	// Box model
	"width":      kindLengthOrAuto,
	"height":     kindLengthOrAuto,
	"min-width":  kindLength,
	"min-height": kindLength,
	"max-width":  kindLength,
	"max-height": kindLength,

	"margin-top":    kindLengthOrAuto,
	"margin-right":  kindLengthOrAuto,
	"margin-bottom": kindLengthOrAuto,
	"margin-left":   kindLengthOrAuto,

	"padding-top":    kindLength,
	"padding-right":  kindLength,
	"padding-bottom": kindLength,
	"padding-left":   kindLength,

	// Positioning
	"position": kindKeyword,
	"top":      kindLengthOrAuto,
	"right":    kindLengthOrAuto,
	"bottom":   kindLengthOrAuto,
	"left":     kindLengthOrAuto,
	"z-index":  kindNumber,

	// Flexbox
	"display":         kindKeyword,
	"flex-direction":  kindKeyword,
	"flex-wrap":       kindKeyword,
	"flex-grow":       kindNumber,
	"flex-shrink":     kindNumber,
	"flex-basis":      kindLengthOrAuto,
	"align-items":     kindKeyword,
	"align-self":      kindKeyword,
	"align-content":   kindKeyword,
	"justify-content": kindKeyword,
	"row-gap":         kindLength,
	"column-gap":      kindLength,
	"aspect-ratio":    kindAspectRatio,

	// Borders
	"border-top-width":           kindLength,
	"border-right-width":         kindLength,
	"border-bottom-width":        kindLength,
	"border-left-width":          kindLength,
	"border-top-color":           kindColor,
	"border-right-color":         kindColor,
	"border-bottom-color":        kindColor,
	"border-left-color":          kindColor,
	"border-top-left-radius":     kindLength,
	"border-top-right-radius":    kindLength,
	"border-bottom-right-radius": kindLength,
	"border-bottom-left-radius":  kindLength,
	"border-style":               kindKeyword,

	// Colors and visibility
	"color":               kindColor,
	"background-color":    kindColor,
	"opacity":             kindNumber,
	"overflow":            kindKeyword,
	"backface-visibility": kindKeyword,
	"pointer-events":      kindKeyword,
	"direction":           kindKeyword,

	// Typography
	"font-size":             kindLength,
	"font-weight":           kindFontWeight,
	"font-style":            kindKeyword,
	"font-family":           kindFontFamily,
	"line-height":           kindLength,
	"letter-spacing":        kindLength,
	"text-align":            kindKeyword,
	"text-transform":        kindKeyword,
	"text-decoration-line":  kindKeyword,
	"text-decoration-style": kindKeyword,
	"text-decoration-color": kindColor,
	"vertical-align":        kindKeyword,

	// Shorthands that need expansion
	"margin":          kindShorthand,
	"padding":         kindShorthand,
	"inset":           kindShorthand,
	"border":          kindShorthand,
	"border-width":    kindShorthand,
	"border-color":    kindShorthand,
	"border-radius":   kindShorthand,
	"flex":            kindShorthand,
	"gap":             kindShorthand,
	"text-decoration": kindShorthand,
}

// keywordValues lists values accepted by keyword properties.
var keywordValues = map[string][]string{
	"display":               {"flex", "none"},
	"position":              {"absolute", "relative", "static"},
	"flex-direction":        {"row", "row-reverse", "column", "column-reverse"},
	"flex-wrap":             {"wrap", "nowrap", "wrap-reverse"},
	"align-items":           {"flex-start", "flex-end", "center", "stretch", "baseline"},
	"align-self":            {"auto", "flex-start", "flex-end", "center", "stretch", "baseline"},
	"align-content":         {"flex-start", "flex-end", "center", "stretch", "space-between", "space-around"},
	"justify-content":       {"flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly"},
	"border-style":          {"solid", "dotted", "dashed"},
	"overflow":              {"visible", "hidden", "scroll"},
	"backface-visibility":   {"visible", "hidden"},
	"pointer-events":        {"auto", "none", "box-none", "box-only"},
	"direction":             {"inherit", "ltr", "rtl"},
	"font-style":            {"normal", "italic"},
	"text-align":            {"auto", "left", "right", "center", "justify"},
	"text-transform":        {"none", "uppercase", "lowercase", "capitalize"},
	"text-decoration-line":  {"none", "underline", "line-through", "underline line-through"},
	"text-decoration-style": {"solid", "double", "dotted", "dashed"},
	"vertical-align":        {"auto", "top", "bottom", "middle"},
}

// keywordAliases maps CSS keywords to the ones the target uses.
var keywordAliases = map[string]string{
	"start":                  "flex-start",
	"end":                    "flex-end",
	"line-through underline": "underline line-through",
}

// globalKeywords are accepted by every CSS property and by none of the native ones.
var globalKeywords = map[string]bool{
	"inherit": true,
	"initial": true,
	"unset":   true,
	"revert":  true,
}

// NativeName returns camelCased name of the CSS property.
func NativeName(cssProperty string) string {
	parts := strings.Split(cssProperty, "-")
	var b strings.Builder
	b.Grow(len(cssProperty))
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// IsSupportedProperty returns true if the CSS property can be converted.
func IsSupportedProperty(cssProperty string) bool {
	_, ok := cssToNative[cssProperty]
	return ok
}

// IsShorthandProperty returns true if the CSS property is a shorthand that needs expansion.
func IsShorthandProperty(cssProperty string) bool {
	return cssToNative[cssProperty] == kindShorthand
}

// SupportedProperties returns sorted list of CSS properties we can convert.
func SupportedProperties() []string {
	return slices.Sorted(maps.Keys(cssToNative))
}
