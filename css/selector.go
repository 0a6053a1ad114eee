package css

import (
	"strings"

	"nsx/common"
)

// NormalizeSelector turns raw selector into the key styles are looked up by:
//   - scope prefix of the "important" option is removed ("#app .p-4" -> ".p-4")
//   - leading class dot is removed (".p-4" -> "p-4")
//   - CSS escapes are resolved ("hover\:p-4" -> "hover:p-4", "w-1\/2" -> "w-1/2")
//
// Boolean form of the "important" option does not change keys.
func NormalizeSelector(raw string, important common.Important) string {
	s := strings.TrimSpace(raw)

	if important.IsScoped() {
		if rest, ok := strings.CutPrefix(s, important.Scope); ok {
			// scope must be followed by a combinator, ".p-4" under scope "#app" is "#app .p-4"
			if trimmed := strings.TrimSpace(rest); trimmed != rest || strings.HasPrefix(rest, ">") {
				if after, ok := strings.CutPrefix(trimmed, ">"); ok {
					trimmed = strings.TrimSpace(after)
				}
				s = trimmed
			}
		}
	}

	s = strings.TrimPrefix(s, ".")
	return unescape(s)
}

// unescape drops backslashes of CSS escapes, escaped backslash stays as one.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
