package css

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into a rule tree.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Parsing never fails, problems are
// reported in Stylesheet.Warnings and offending constructs are dropped.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Nodes:    make([]Node, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	sheet.Nodes, _ = p.parseBlock(parser, data, sheet, false)
	return sheet
}

// parseBlock parses a list of nodes until the end of input or, when nested is
// set, until the end of the enclosing at-rule block. Declarations found
// directly in the block (@font-face, @page) are returned separately.
//
// Token values reported by the grammar parser are minified (whitespace around
// ',' ':' and combinators is dropped), so preludes, selectors and values are
// taken from src using lexer offsets.
func (p *Parser) parseBlock(parser *css.Parser, src []byte, sheet *Stylesheet, nested bool) ([]Node, []Declaration) {
	var (
		nodes []Node
		decls []Declaration
	)

	for {
		start := parser.Offset()
		gt, _, data := parser.Next()
		text := sourceSpan(src, start, parser.Offset())

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil {
				if !errors.Is(err, io.EOF) {
					p.log.Debug("CSS parse error", zap.Error(err))
					sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				}
				return nodes, decls
			}
			// recoverable syntax problem, parser resynchronizes by itself
			sheet.Warnings = append(sheet.Warnings, "skipping malformed CSS: "+strings.TrimSpace(string(data)+joinTokens(parser.Values())))

		case css.EndAtRuleGrammar:
			if nested {
				return nodes, decls
			}

		case css.AtRuleGrammar:
			// @-rule without block
			switch atRule := strings.ToLower(string(data)); atRule {
			case "@import":
				if url := extractImportURL(parser.Values()); url != "" {
					nodes = append(nodes, &Import{URL: url})
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			case "@charset":
				// input is decoded before parsing
			default:
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			prelude := atRulePrelude(text, atRule)
			switch atRule {
			case "@media":
				children, inner := p.parseBlock(parser, src, sheet, true)
				if len(inner) > 0 {
					sheet.Warnings = append(sheet.Warnings, "declarations directly in @media block ignored: "+prelude)
				}
				p.log.Debug("Parsed @media block", zap.String("query", prelude), zap.Int("nodes", len(children)))
				nodes = append(nodes, &MediaBlock{Condition: prelude, Children: children})
			case "@keyframes", "@-webkit-keyframes", "@-moz-keyframes":
				// animation steps look like rules but are not addressable styles
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule), zap.String("name", prelude))
			default:
				children, inner := p.parseBlock(parser, src, sheet, true)
				nodes = append(nodes, &AtRule{
					Name:         strings.TrimPrefix(atRule, "@"),
					Prelude:      prelude,
					Children:     children,
					Declarations: inner,
				})
			}

		case css.BeginRulesetGrammar:
			rule := &Rule{
				Selectors:    splitSelectors(sourceText(bytes.TrimSuffix(text, []byte("{")))),
				Declarations: p.parseDeclarations(parser, src, sheet),
			}
			if len(rule.Selectors) == 0 {
				sheet.Warnings = append(sheet.Warnings, "rule without selector ignored")
				continue
			}
			nodes = append(nodes, rule)

		case css.DeclarationGrammar:
			if d, ok := p.parseDeclaration(data, parser.Values(), text); ok {
				decls = append(decls, d)
			}

		case css.CustomPropertyGrammar:
			p.log.Debug("Skipping custom property", zap.ByteString("name", data))
		}
	}
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser, src []byte, sheet *Stylesheet) []Declaration {
	var decls []Declaration
	depth := 0

	for {
		start := parser.Offset()
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil {
				return decls
			}
		case css.EndRulesetGrammar:
			if depth == 0 {
				return decls
			}
			depth--

		case css.BeginRulesetGrammar:
			// nested rules are not part of plain CSS we accept
			depth++
			if depth == 1 {
				sheet.Warnings = append(sheet.Warnings, "nested rule ignored: "+strings.Join(splitSelectors(joinTokens(parser.Values())), ", "))
			}

		case css.DeclarationGrammar:
			if depth > 0 {
				continue
			}
			if d, ok := p.parseDeclaration(data, parser.Values(), sourceSpan(src, start, parser.Offset())); ok {
				decls = append(decls, d)
			}

		case css.CustomPropertyGrammar:
			p.log.Debug("Skipping custom property", zap.ByteString("name", data))
		}
	}
}

// parseDeclaration builds declaration out of property name and value tokens,
// stripping trailing !important. Raw value is taken from declaration source
// text.
func (p *Parser) parseDeclaration(name []byte, values []css.Token, text []byte) (Declaration, bool) {
	d := Declaration{Property: strings.ToLower(string(name))}

	end := len(values)
	for end > 0 && values[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end > 0 && values[end-1].TokenType == css.IdentToken && strings.EqualFold(string(values[end-1].Data), "important") {
		i := end - 2
		for i >= 0 && values[i].TokenType == css.WhitespaceToken {
			i--
		}
		if i >= 0 && values[i].TokenType == css.DelimToken && string(values[i].Data) == "!" {
			d.Important = true
			end = i
		}
	}
	start := 0
	for start < end && values[start].TokenType == css.WhitespaceToken {
		start++
	}
	values = values[start:end]

	if len(values) == 0 {
		return d, false
	}
	d.Value = parsePropertyValue(values, declarationValue(text, d.Important))
	return d, d.Value.Raw != ""
}

// sourceSpan returns src[start:end], offsets past the end of input are
// clamped.
func sourceSpan(src []byte, start, end int) []byte {
	end = min(end, len(src))
	return src[min(start, end):end]
}

// atRulePrelude returns text between at-keyword and the block, as written.
func atRulePrelude(text []byte, name string) string {
	text = bytes.TrimSuffix(text, []byte("{"))
	i := skipInsignificant(text)
	if len(text)-i >= len(name) && bytes.EqualFold(text[i:i+len(name)], []byte(name)) {
		text = text[i+len(name):]
	} else if i = bytes.Index(bytes.ToLower(text), []byte(name)); i >= 0 {
		text = text[i+len(name):]
	}
	return strings.TrimSpace(string(text))
}

// declarationValue returns value part of declaration source text without
// terminator and !important.
func declarationValue(text []byte, important bool) string {
	if n := len(text); n > 0 && (text[n-1] == ';' || text[n-1] == '}') {
		text = text[:n-1]
	}
	_, value, ok := strings.Cut(sourceText(text), ":")
	if !ok {
		return ""
	}
	if important {
		if i := strings.LastIndexByte(value, '!'); i >= 0 {
			value = value[:i]
		}
	}
	return strings.TrimSpace(value)
}

// sourceText returns src with comments removed and whitespace runs outside of
// strings collapsed to a single space.
func sourceText(src []byte) string {
	var (
		sb    strings.Builder
		space bool
		quote byte
	)
	sb.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			sb.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				sb.WriteByte(src[i])
			} else if c == quote {
				quote = 0
			}
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			if end := bytes.Index(src[i+2:], []byte("*/")); end >= 0 {
				i += end + 3
			} else {
				i = len(src)
			}
			continue
		case isSpace(c):
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteByte(c)
		switch c {
		case '\\':
			if i+1 < len(src) {
				i++
				sb.WriteByte(src[i])
			}
		case '"', '\'':
			quote = c
		}
	}
	return sb.String()
}

// skipInsignificant returns index of the first byte of src which is neither
// whitespace nor part of a comment.
func skipInsignificant(src []byte) int {
	i := 0
	for i < len(src) {
		switch {
		case isSpace(src[i]):
			i++
		case bytes.HasPrefix(src[i:], []byte("/*")):
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return len(src)
			}
			i += end + 4
		default:
			return i
		}
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// joinTokens builds text of the tokens with every whitespace run collapsed
// to a single space.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

// splitSelectors splits selector group on commas which are not inside
// parentheses or brackets. Whitespace must be already collapsed.
func splitSelectors(text string) []string {
	var (
		selectors []string
		depth     int
		start     int
	)
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++ // escaped character never splits
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				emit(text[start:i])
				start = i + 1
			}
		}
	}
	emit(text[start:])
	return selectors
}

// parsePropertyValue converts CSS tokens to a Value. Tokens must not start or
// end with whitespace. When raw is empty it is rebuilt from tokens.
func parsePropertyValue(tokens []css.Token, raw string) Value {
	if len(tokens) == 0 {
		return Value{}
	}
	if raw == "" {
		raw = joinTokens(tokens)
	}

	val := Value{Raw: raw}

	// single token cases
	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = val.Raw
		}
		return val
	}

	// functions (rgb(), url(), calc()) and multi-value properties
	val.Keyword = val.Raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
