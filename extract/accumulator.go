package extract

import (
	"strconv"

	"go.uber.org/zap"

	"nsx/common"
	"nsx/css"
)

// accumulator collects rules of a single walk into result.
type accumulator struct {
	log       *zap.Logger
	conv      DeclarationConverter
	important common.Important
	res       *Result
}

// declarations converts all declarations of the rule into a single set. Later
// declarations override earlier ones, failures are recorded and skipped.
func (a *accumulator) declarations(rule *css.Rule) *Declarations {
	set := NewDeclarations()
	for _, d := range rule.Declarations {
		props, err := a.conv.Convert(d)
		if err != nil {
			a.res.Errors = append(a.res.Errors, err)
			continue
		}
		for _, p := range props {
			set.Set(p.Name, p.Value)
		}
	}
	return set
}

// addRule routes rule into style map, or when condition is active into
// indexed variants of style map and media map.
func (a *accumulator) addRule(rule *css.Rule, condition string, conditional bool) {
	set := a.declarations(rule)
	if set.Len() == 0 {
		a.log.Debug("Rule produced no declarations", zap.Strings("selectors", rule.Selectors))
		return
	}

	for _, sel := range rule.Selectors {
		key := css.NormalizeSelector(sel, a.important)
		if key == "" {
			a.log.Debug("Empty selector key, skipping", zap.String("selector", sel))
			continue
		}

		if conditional {
			idx := a.res.Media.push(key, condition)
			a.res.Styles.m.Set(key+"."+strconv.Itoa(idx), set.Clone())
			continue
		}

		if existing, ok := a.res.Styles.m.Get(key); ok {
			existing.Merge(set)
		} else {
			a.res.Styles.m.Set(key, set.Clone())
		}
	}
}
