package native

import (
	"fmt"
	"strconv"
	"strings"

	"nsx/css"
)

// DefaultRemBase is the number of points in one rem unless configured otherwise.
const DefaultRemBase = 16.0

// lengthValue converts a CSS length to a number of points or a percentage string.
func lengthValue(v css.Value, remBase float64) (any, error) {
	switch v.Unit {
	case "px", "":
		if v.Unit == "" && v.IsKeyword() {
			return nil, fmt.Errorf("%w: %s is not a length", ErrUnsupportedValue, v.Raw)
		}
		return v.Value, nil
	case "rem":
		return v.Value * remBase, nil
	case "%":
		return formatNumber(v.Value) + "%", nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedUnit, v.Unit)
	}
}

// numberValue converts unitless CSS number.
func numberValue(v css.Value) (float64, error) {
	if v.Unit != "" || !v.IsNumeric() {
		return 0, fmt.Errorf("%w: %s is not a number", ErrUnsupportedValue, v.Raw)
	}
	return v.Value, nil
}

// parseValue parses a single component of a multi-value property. Mirrors
// what the stylesheet parser produces for single token values.
func parseValue(s string) css.Value {
	s = strings.TrimSpace(s)
	val := css.Value{Raw: s}

	numEnd := 0
	for i, ch := range s {
		if (ch >= '0' && ch <= '9') || ch == '.' || ((ch == '-' || ch == '+') && i == 0) {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 || (numEnd == 1 && (s[0] == '-' || s[0] == '+' || s[0] == '.')) {
		val.Keyword = strings.ToLower(s)
		return val
	}
	num, err := strconv.ParseFloat(s[:numEnd], 64)
	if err != nil {
		val.Keyword = strings.ToLower(s)
		return val
	}
	val.Value = num
	val.Unit = strings.ToLower(s[numEnd:])
	return val
}

// splitComponents splits value on whitespace outside of parentheses, so
// "1px solid rgb(0, 0, 0)" gives three components.
func splitComponents(raw string) []string {
	var (
		parts []string
		depth int
		start = -1
	)
	for i, ch := range raw {
		switch {
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (ch == ' ' || ch == '\t' || ch == '\n'):
			if start >= 0 {
				parts = append(parts, raw[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		parts = append(parts, raw[start:])
	}
	return parts
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
