package css

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2rem", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "rem", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// handles "0"
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single "property: value" pair of a rule.
type Declaration struct {
	Property  string
	Value     Value
	Important bool // value was followed by !important
}

// Node is a single item of the rule tree. Exactly one of *Rule, *MediaBlock,
// *AtRule or *Import.
type Node interface {
	node()
}

// Rule is a qualified rule: one or more selectors sharing a declaration block.
type Rule struct {
	Selectors    []string // Raw selectors in written order, grouped selectors already split
	Declarations []Declaration
}

// MediaBlock is a @media block. Blocks nest.
type MediaBlock struct {
	Condition string // Raw condition text, whitespace collapsed
	Children  []Node
}

// AtRule is any other at-rule with a block (@supports, @layer, @font-face,
// @page, @keyframes...). Depending on the rule its block holds nested nodes,
// declarations or both.
type AtRule struct {
	Name         string // Name without "@"
	Prelude      string
	Children     []Node
	Declarations []Declaration
}

// Import is an @import statement.
type Import struct {
	URL string
}

func (*Rule) node()       {}
func (*MediaBlock) node() {}
func (*AtRule) node()     {}
func (*Import) node()     {}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Nodes    []Node   // Top-level nodes in source order
	Warnings []string // Problems found while parsing
}

// Append adds nodes and warnings of other sheets after the ones already present.
func (s *Stylesheet) Append(others ...*Stylesheet) {
	for _, o := range others {
		if o == nil {
			continue
		}
		s.Nodes = append(s.Nodes, o.Nodes...)
		s.Warnings = append(s.Warnings, o.Warnings...)
	}
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, n := range s.Nodes {
		if imp, ok := n.(*Import); ok {
			urls = append(urls, imp.URL)
		}
	}
	return urls
}

// Rules returns every rule of the stylesheet, including rules nested in
// at-rule blocks, in document order.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	var collect func(nodes []Node)
	collect = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *Rule:
				rules = append(rules, n)
			case *MediaBlock:
				collect(n.Children)
			case *AtRule:
				collect(n.Children)
			}
		}
	}
	collect(s.Nodes)
	return rules
}

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
func cssEscapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations keep their source order, nested blocks are indented.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for i, n := range s.Nodes {
		if i > 0 {
			cw.printf("\n")
		}
		writeNode(cw, n, "")
		if cw.err != nil {
			break
		}
	}
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

// printf remembers the first error, everything after it is a no-op.
func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

func writeNode(cw *countingWriter, n Node, indent string) {
	switch n := n.(type) {
	case *Import:
		cw.printf("%s@import url(\"%s\");\n", indent, cssEscapeDoubleQuoted(n.URL))
	case *Rule:
		cw.printf("%s%s {\n", indent, strings.Join(n.Selectors, ", "))
		writeDeclarations(cw, n.Declarations, indent+"  ")
		cw.printf("%s}\n", indent)
	case *MediaBlock:
		cw.printf("%s@media %s {\n", indent, n.Condition)
		writeChildren(cw, n.Children, indent+"  ")
		cw.printf("%s}\n", indent)
	case *AtRule:
		if n.Prelude != "" {
			cw.printf("%s@%s %s {\n", indent, n.Name, n.Prelude)
		} else {
			cw.printf("%s@%s {\n", indent, n.Name)
		}
		writeDeclarations(cw, n.Declarations, indent+"  ")
		writeChildren(cw, n.Children, indent+"  ")
		cw.printf("%s}\n", indent)
	}
}

func writeChildren(cw *countingWriter, nodes []Node, indent string) {
	for i, c := range nodes {
		if i > 0 {
			cw.printf("\n")
		}
		writeNode(cw, c, indent)
	}
}

func writeDeclarations(cw *countingWriter, decls []Declaration, indent string) {
	for _, d := range decls {
		if d.Important {
			cw.printf("%s%s: %s !important;\n", indent, d.Property, d.Value.Raw)
			continue
		}
		cw.printf("%s%s: %s;\n", indent, d.Property, d.Value.Raw)
	}
}
