package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-metawizard/pkg/visibility"
)

// Evaluator parses and evaluates enabling rules.
//
// Supported forms:
//   - truthiness: `has_validation_split`
//   - comparisons: `objective_mode == "Multi"`, `iterations != 0`, `secondary == null`
//   - composition: `a && !b`, `a || (b == "x")`
//
// Identifiers are looked up in the values map; dotted identifiers walk nested
// maps when no flat key matches.
type Evaluator struct{}

var _ visibility.Evaluator = (*Evaluator)(nil)

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval evaluates rule. An empty rule holds.
func (e *Evaluator) Eval(rule string, values map[string]any) (bool, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return true, nil
	}
	tokens, err := tokenize(rule)
	if err != nil {
		return false, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return false, err
	}
	if p.pos < len(p.tokens) {
		return false, fmt.Errorf("visibility/expr: unexpected token %q", p.tokens[p.pos].raw)
	}
	return node.eval(values), nil
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokNull
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	raw  string
}

type operator struct {
	raw  string
	kind tokenKind
}

var operators = []operator{
	{"==", tokEq},
	{"!=", tokNeq},
	{"&&", tokAnd},
	{"||", tokOr},
	{"!", tokNot},
	{"(", tokLParen},
	{")", tokRParen},
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		if op, ok := matchOperator(input[i:]); ok {
			tokens = append(tokens, token{kind: op.kind, raw: op.raw})
			i += len(op.raw)
			continue
		}

		switch ch {
		case '=', '&', '|':
			return nil, fmt.Errorf("visibility/expr: unexpected %q at offset %d", ch, i)
		case '"', '\'':
			var b strings.Builder
			j := i + 1
			closed := false
			for j < len(input) {
				c := input[j]
				if c == '\\' && j+1 < len(input) {
					b.WriteByte(input[j+1])
					j += 2
					continue
				}
				if c == ch {
					closed = true
					break
				}
				b.WriteByte(c)
				j++
			}
			if !closed {
				return nil, errors.New("visibility/expr: unterminated string literal")
			}
			tokens = append(tokens, token{kind: tokString, raw: b.String()})
			i = j + 1
			continue
		}

		start := i
		for i < len(input) && !isSpace(input[i]) && !strings.ContainsRune("()!=&|\"'", rune(input[i])) {
			i++
		}
		word := input[start:i]
		switch lower := strings.ToLower(word); {
		case lower == "true" || lower == "false":
			tokens = append(tokens, token{kind: tokBool, raw: lower})
		case lower == "null" || lower == "nil":
			tokens = append(tokens, token{kind: tokNull, raw: "null"})
		case looksLikeNumber(word):
			tokens = append(tokens, token{kind: tokNumber, raw: word})
		default:
			tokens = append(tokens, token{kind: tokIdent, raw: word})
		}
	}
	return tokens, nil
}

func matchOperator(rest string) (operator, bool) {
	for _, op := range operators {
		if strings.HasPrefix(rest, op.raw) {
			return op, true
		}
	}
	return operator{}, false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}

type node interface {
	eval(values map[string]any) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(values map[string]any) bool { return n.left.eval(values) || n.right.eval(values) }

type andNode struct{ left, right node }

func (n andNode) eval(values map[string]any) bool { return n.left.eval(values) && n.right.eval(values) }

type notNode struct{ inner node }

func (n notNode) eval(values map[string]any) bool { return !n.inner.eval(values) }

type truthyNode struct{ ident string }

func (n truthyNode) eval(values map[string]any) bool {
	value, _ := lookup(values, n.ident)
	return truthy(value)
}

type compareNode struct {
	ident   string
	negate  bool
	literal token
}

func (n compareNode) eval(values map[string]any) bool {
	value, _ := lookup(values, n.ident)
	var equal bool
	switch n.literal.kind {
	case tokNull:
		equal = value == nil
	case tokBool:
		equal = truthy(value) == (n.literal.raw == "true")
	case tokNumber:
		want, _ := strconv.ParseFloat(n.literal.raw, 64)
		got, ok := number(value)
		equal = ok && got == want
	default:
		equal = str(value) == n.literal.raw
	}
	return equal != n.negate
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(tokOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(tokAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.match(tokNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.match(tokLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(tokRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	if p.pos >= len(p.tokens) {
		return nil, errors.New("visibility/expr: empty expression")
	}
	ident := p.tokens[p.pos]
	if ident.kind != tokIdent {
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", ident.raw)
	}
	p.pos++

	negate := false
	switch {
	case p.match(tokEq):
	case p.match(tokNeq):
		negate = true
	default:
		return truthyNode{ident: ident.raw}, nil
	}

	if p.pos >= len(p.tokens) {
		return nil, errors.New("visibility/expr: missing literal")
	}
	lit := p.tokens[p.pos]
	p.pos++
	switch lit.kind {
	case tokString, tokNumber, tokBool, tokNull:
	case tokIdent:
		// bare words compare as strings
		lit.kind = tokString
	default:
		return nil, fmt.Errorf("visibility/expr: expected literal, got %q", lit.raw)
	}
	return compareNode{ident: ident.raw, negate: negate, literal: lit}, nil
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func lookup(values map[string]any, key string) (any, bool) {
	if len(values) == 0 || key == "" {
		return nil, false
	}
	if v, ok := values[key]; ok {
		return v, true
	}
	var current any = values
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		if f, ok := number(value); ok {
			return f != 0
		}
		return true
	}
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func str(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
