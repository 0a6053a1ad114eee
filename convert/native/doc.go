// Package native converts CSS declarations into React Native style properties.
//
// Every declaration is converted on its own: the converter has no notion of
// selectors, cascade or inheritance. A declaration produces zero or more
// properties, or exactly one *ConversionError.
//
// # Property names
//
// CSS names are camelCased: background-color -> backgroundColor.
// Vendor prefixed properties (-webkit-*, -moz-*) are not supported.
//
// # Values
//
// Lengths:
//   - px and unitless numbers become numbers
//   - rem is multiplied by the rem base (16 unless configured)
//   - percentages are kept as strings ("50%")
//   - em, vw, vh, ch, pt and friends are rejected (ErrUnsupportedUnit)
//
// Colors and font families are passed through as written. Keyword properties
// (display, position, flex-direction, align-items, text-align, ...) accept
// only keywords the target understands. font-weight numbers become strings.
//
// Global keywords (inherit, initial, unset, revert) and var() references
// are rejected (ErrUnsupportedValue).
//
// # Shorthands
//
//   - margin, padding, inset, border-width, border-color, border-radius:
//     1-4 values box expansion to individual sides/corners
//   - border: width, style and color in any order
//   - flex: none, auto, or grow [shrink] [basis]
//   - gap: row and column gaps
//   - text-decoration: line keywords, style and color
//
// # Usage
//
//	conv := native.NewConverter(logger, native.WithRemBase(16))
//	props, err := conv.Convert(decl)
package native
