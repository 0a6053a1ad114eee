package extract

// composeCondition returns effective condition of a media block with raw
// condition nested in a block whose effective condition is parent. Identical
// adjacent conditions collapse into one.
func composeCondition(parent string, hasParent bool, raw string) string {
	switch {
	case !hasParent:
		return raw
	case parent == raw:
		return parent
	default:
		return parent + " and " + raw
	}
}

// conditionStack keeps effective conditions of enclosing media blocks,
// innermost last.
type conditionStack []string

func (s conditionStack) top() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	return s[len(s)-1], true
}

// enter returns stack extended with effective condition of block with raw condition.
func (s conditionStack) enter(raw string) conditionStack {
	parent, ok := s.top()
	return append(s[:len(s):len(s)], composeCondition(parent, ok, raw))
}
