// Package literal prepares the body of a tagged template literal for the
// parser: it splits the body at embedded ${...} expressions and provides the
// initial parser state for each kind of literal.
package literal

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yakcss/css/ast"
	"github.com/yakcss/css/parser"
)

// Literal is a template literal body split at its embedded expressions.
// There is always exactly one more chunk than expressions.
type Literal struct {
	// Name is used to derive CSS variable names, e.g. "Button".
	Name string

	Chunks []string
	Exprs  []string
}

// New splits body and returns the named literal.
func New(name, body string) Literal {
	chunks, exprs := Split(body)
	return Literal{Name: name, Chunks: chunks, Exprs: exprs}
}

// Split splits a template literal body around its ${...} expressions.
//
// Braces inside an expression are balanced and quoted strings inside an
// expression are skipped, so `${fn({ a: "}" })}` is a single expression.
// An escaped "\${" is kept as text. The source of each expression is
// returned trimmed.
func Split(body string) (chunks []string, exprs []string) {
	var buf strings.Builder
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\' && i+1 < len(body):
			buf.WriteByte(body[i])
			buf.WriteByte(body[i+1])
			i++
		case body[i] == '$' && i+1 < len(body) && body[i+1] == '{':
			end := expressionEnd(body, i+2)
			chunks = append(chunks, buf.String())
			buf.Reset()
			exprs = append(exprs, strings.TrimSpace(body[i+2:end]))

			// Skip the closing brace unless the expression is unterminated.
			i = end
			if i == len(body) {
				i--
			}
		default:
			buf.WriteByte(body[i])
		}
	}
	return append(chunks, buf.String()), exprs
}

// expressionEnd returns the index of the "}" that closes the expression
// starting at i, or len(s) if it is never closed.
func expressionEnd(s string, i int) int {
	depth := 0
	var quote byte
	for ; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '"', '\'', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return len(s)
}

// Kind is the kind of tagged template a literal belongs to.
type Kind int

const (
	// Styled is a styled component, e.g. styled.div`...`.
	Styled Kind = iota

	// Mixin is a css`...` literal assigned to a variable.
	Mixin

	// Keyframes is a keyframes`...` animation.
	Keyframes
)

// ParseKind returns the kind for its lowercase name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "styled":
		return Styled, nil
	case "mixin":
		return Mixin, nil
	case "keyframes":
		return Keyframes, nil
	}
	if ranks := fuzzy.RankFindFold(s, kindNames); len(ranks) > 0 {
		return 0, fmt.Errorf("unknown literal kind: %q (did you mean %q?)", s, ranks[0].Target)
	}
	return 0, fmt.Errorf("unknown literal kind: %q", s)
}

var kindNames = []string{"styled", "mixin", "keyframes"}

func (k Kind) String() string {
	switch k {
	case Styled:
		return "styled"
	case Mixin:
		return "mixin"
	case Keyframes:
		return "keyframes"
	}
	return ""
}

// State returns the initial parser state for a literal of this kind.
func (k Kind) State(name string) *parser.State {
	switch k {
	case Mixin:
		return MixinState(name)
	case Keyframes:
		return KeyframesState(name)
	}
	return StyledState(name)
}

// StyledState returns a state that wraps everything in the component's class.
func StyledState(class string) *parser.State {
	return parser.NewState(ast.NewScope("." + class))
}

// MixinState returns a state that wraps a mixin in its generated class.
// Exported mixins drop that class again with Unwrap.
func MixinState(class string) *parser.State {
	return parser.NewState(ast.NewScope("." + class))
}

// KeyframesState returns a state nested inside the @keyframes rule.
func KeyframesState(name string) *parser.State {
	return parser.NewState(ast.NewScope("@keyframes " + name))
}

// NestedState returns a copy of prev whose outermost scope is replaced by
// class. It is used for a css`...` literal inside a conditional expression
// of another literal, e.g. ${({ $active }) => $active && css`...`}.
func NestedState(prev *parser.State, class string) *parser.State {
	st := prev.Clone()
	scope := ast.NewScope("." + class)
	if len(st.Scopes) == 0 {
		st.Scopes = ast.Scopes{scope}
		return st
	}
	st.Scopes[0] = scope
	return st
}

// Unwrap returns a copy of decls with the outermost scope removed from every
// declaration.
func Unwrap(decls ast.Declarations) ast.Declarations {
	other := decls.Clone()
	for i := range other {
		if len(other[i].Scope) > 0 {
			other[i].Scope = other[i].Scope[1:].Clone()
		}
	}
	return other
}
