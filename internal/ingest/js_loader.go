package ingest

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/agentic-research/keysearch/internal/tree"
)

// globalPrefixes are stripped from assignment targets, so that
// window.__STATE__ = {...} lands at __STATE__ under the root.
var globalPrefixes = []string{"window.", "globalThis.", "self."}

// ParseJS extracts literal data from a JavaScript file, typically a page
// state dump such as
//
//	window.__INITIAL_STATE__ = {"user": {...}};
//	const config = {api: "https://..."};
//
// Each top-level assignment or variable declaration becomes a member of the
// root. Values that are not literals (calls, identifiers, functions) are kept
// as null so their keys remain searchable.
func ParseJS(content []byte) (*tree.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	t, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse javascript: %w", err)
	}

	program := t.RootNode()
	if program.HasError() {
		log.Printf("ingest: javascript source has syntax errors, keeping recoverable statements")
	}

	j := &jsConverter{src: content}
	root := tree.NewKeyed()
	count := int(program.NamedChildCount())
	for i := 0; i < count; i++ {
		j.statement(root, program.NamedChild(i))
	}
	return root, nil
}

type jsConverter struct {
	src []byte
}

func (j *jsConverter) statement(root *tree.Node, stmt *sitter.Node) {
	if stmt == nil {
		return
	}
	switch stmt.Type() {
	case "expression_statement":
		expr := stmt.NamedChild(0)
		if expr == nil || expr.Type() != "assignment_expression" {
			return
		}
		left := expr.ChildByFieldName("left")
		right := expr.ChildByFieldName("right")
		if left == nil || right == nil {
			return
		}
		root.Set(jsTarget(left.Content(j.src)), j.value(right))
	case "lexical_declaration", "variable_declaration":
		count := int(stmt.NamedChildCount())
		for i := 0; i < count; i++ {
			decl := stmt.NamedChild(i)
			if decl == nil || decl.Type() != "variable_declarator" {
				continue
			}
			name := decl.ChildByFieldName("name")
			if name == nil || name.Type() != "identifier" {
				continue
			}
			root.Set(name.Content(j.src), j.value(decl.ChildByFieldName("value")))
		}
	case "export_statement":
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			j.statement(root, decl)
		}
	}
}

func jsTarget(s string) string {
	for _, p := range globalPrefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest
		}
	}
	return s
}

func (j *jsConverter) value(n *sitter.Node) *tree.Node {
	if n == nil {
		return tree.NewNull()
	}
	switch n.Type() {
	case "object":
		return j.object(n)
	case "array":
		seq := tree.NewSequence()
		count := int(n.NamedChildCount())
		for i := 0; i < count; i++ {
			item := n.NamedChild(i)
			if item.Type() == "comment" {
				continue
			}
			seq.Append(j.value(item))
		}
		return seq
	case "string":
		return tree.NewString(unquoteJS(n.Content(j.src)))
	case "template_string":
		return tree.NewString(unquoteJS(n.Content(j.src)))
	case "number":
		return jsNumber(n.Content(j.src), false)
	case "unary_expression":
		arg := n.ChildByFieldName("argument")
		op := n.ChildByFieldName("operator")
		if arg != nil && op != nil && arg.Type() == "number" {
			switch op.Type() {
			case "-":
				return jsNumber(arg.Content(j.src), true)
			case "+":
				return jsNumber(arg.Content(j.src), false)
			}
		}
		return tree.NewNull()
	case "true":
		return tree.NewBool(true)
	case "false":
		return tree.NewBool(false)
	case "parenthesized_expression":
		return j.value(n.NamedChild(0))
	default:
		// null, undefined, identifiers, calls, functions...
		return tree.NewNull()
	}
}

func (j *jsConverter) object(n *sitter.Node) *tree.Node {
	obj := tree.NewKeyed()
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		member := n.NamedChild(i)
		switch member.Type() {
		case "pair":
			key := member.ChildByFieldName("key")
			if key == nil {
				continue
			}
			obj.Set(j.key(key), j.value(member.ChildByFieldName("value")))
		case "shorthand_property_identifier":
			obj.Set(member.Content(j.src), tree.NewNull())
		case "method_definition":
			if name := member.ChildByFieldName("name"); name != nil {
				obj.Set(j.key(name), tree.NewNull())
			}
		}
	}
	return obj
}

func (j *jsConverter) key(k *sitter.Node) string {
	text := k.Content(j.src)
	switch k.Type() {
	case "string":
		return unquoteJS(text)
	case "number":
		n := jsNumber(text, false)
		if n.Kind == tree.Number && !math.IsNaN(n.Float()) {
			return strconv.FormatFloat(n.Float(), 'g', -1, 64)
		}
	}
	return text
}

func jsNumber(text string, negate bool) *tree.Node {
	literal := text
	if negate {
		literal = "-" + text
	}
	clean := strings.TrimSuffix(strings.ReplaceAll(text, "_", ""), "n")

	var f float64
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil && !isLegacyOctal(clean) {
		f = float64(i)
	} else if v, err := strconv.ParseFloat(clean, 64); err == nil {
		f = v
	} else {
		return tree.NewNumberLiteral(math.NaN(), literal)
	}
	if negate {
		f = -f
	}
	return tree.NewNumberLiteral(f, literal)
}

// isLegacyOctal reports literals like "0755" that ParseInt base 0 would read
// as octal; they are parsed as decimal floats instead.
func isLegacyOctal(s string) bool {
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// unquoteJS strips the surrounding quotes or backticks from a string literal
// and resolves escape sequences. Unknown escapes yield the escaped character.
func unquoteJS(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if r, ok := hexRune(body, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte(e)
			}
		case 'u':
			if i+1 < len(body) && body[i+1] == '{' {
				end := strings.IndexByte(body[i+1:], '}')
				if end > 1 {
					if r, ok := hexRune(body, i+2, end-1); ok {
						b.WriteRune(r)
						i += end + 1
						continue
					}
				}
				b.WriteByte(e)
				continue
			}
			r, ok := hexRune(body, i+1, 4)
			if !ok {
				b.WriteByte(e)
				continue
			}
			i += 4
			if utf16IsHigh(r) && i+2 < len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
				if lo, ok := hexRune(body, i+3, 4); ok && utf16IsLow(lo) {
					r = (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000
					i += 6
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexRune(s string, start, n int) (rune, bool) {
	if start+n > len(s) {
		return utf8.RuneError, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return utf8.RuneError, false
	}
	return rune(v), true
}

func utf16IsHigh(r rune) bool { return r >= 0xD800 && r < 0xDC00 }
func utf16IsLow(r rune) bool  { return r >= 0xDC00 && r < 0xE000 }
