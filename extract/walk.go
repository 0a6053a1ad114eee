package extract

import (
	"strings"

	"go.uber.org/zap"

	"nsx/common"
	"nsx/convert/native"
	"nsx/css"
)

// DeclarationConverter converts a single CSS declaration to zero or more
// native style properties.
type DeclarationConverter interface {
	Convert(d css.Declaration) ([]native.Property, error)
}

// Extractor walks parsed stylesheets and collects native styles. It holds
// only configuration, so one Extractor may be used by several goroutines.
type Extractor struct {
	log       *zap.Logger
	conv      DeclarationConverter
	important common.Important
}

// NewExtractor creates extractor using conv for declarations and important
// for selector keys.
func NewExtractor(log *zap.Logger, conv DeclarationConverter, important common.Important) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		log:       log.Named("extractor"),
		conv:      conv,
		important: important,
	}
}

// Walk visits every node of the sheet in document order and returns collected
// styles, media conditions and conversion errors.
func (e *Extractor) Walk(sheet *css.Stylesheet) *Result {
	acc := &accumulator{
		log:       e.log,
		conv:      e.conv,
		important: e.important,
		res:       newResult(),
	}
	if sheet != nil {
		e.walk(acc, sheet.Nodes, nil)
	}

	e.log.Debug("Walk complete",
		zap.Int("styles", acc.res.Styles.Len()),
		zap.Int("media", acc.res.Media.Len()),
		zap.Int("errors", len(acc.res.Errors)))
	return acc.res
}

func (e *Extractor) walk(acc *accumulator, nodes []css.Node, conds conditionStack) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *css.MediaBlock:
			if strings.TrimSpace(n.Condition) == "" {
				// block without condition always applies
				e.walk(acc, n.Children, conds)
				continue
			}
			e.walk(acc, n.Children, conds.enter(n.Condition))
		case *css.Rule:
			cond, ok := conds.top()
			acc.addRule(n, cond, ok)
		case *css.AtRule:
			e.walk(acc, n.Children, conds)
		case *css.Import:
			// resolved by caller, if at all
		}
	}
}
