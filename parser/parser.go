package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yakcss/css/ast"
	"github.com/yakcss/css/scanner"
	"github.com/yakcss/css/token"
)

// State is carried from one chunk of a literal to the next.
//
// Scopes is the live nesting path. Callers may replace or insert scopes
// before handing the state to the next Parse call, e.g. to nest a mixin
// under a generated class name.
type State struct {
	Scopes ast.Scopes

	lexer scanner.State

	// buf holds text seen since the last structural token. It becomes a
	// scope preamble on "{" or a declaration on ";" or "}".
	buf string
}

// NewState returns an empty state nested under the given scopes.
func NewState(scopes ...ast.Scope) *State {
	return &State{
		Scopes: ast.Scopes(scopes).Clone(),
		lexer:  scanner.State{Mode: scanner.Text{}},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return NewState()
	}
	other := *s
	other.Scopes = s.Scopes.Clone()
	if other.lexer.Mode == nil {
		other.lexer.Mode = scanner.Text{}
	}
	return &other
}

// Equal returns true if both states would parse any further input the same
// way. A nil state equals an empty one.
func (s *State) Equal(other *State) bool {
	if s == nil {
		s = NewState()
	}
	if other == nil {
		other = NewState()
	}
	return s.Scopes.Equal(other.Scopes) && s.lexer == other.lexer && s.buf == other.buf
}

// Lexer returns the scanner state, e.g. to check whether the chunk ended
// inside a string or comment.
func (s *State) Lexer() scanner.State {
	if s == nil {
		return scanner.State{Mode: scanner.Text{}}
	}
	return s.lexer
}

// Buffered returns the text consumed since the last structural token.
func (s *State) Buffered() string {
	if s == nil {
		return ""
	}
	return s.buf
}

// Pending returns the declaration that is still accumulating at the end of
// the last chunk. The declaration is open (Closed is false) and is not part
// of any list returned by Parse until a later chunk terminates it.
//
// Only plain property names are reported, so a buffered selector such as
// "&:hover" is never mistaken for a declaration.
func (s *State) Pending() (ast.Declaration, bool) {
	if s == nil {
		return ast.Declaration{}, false
	}
	buf := s.buf
	if _, ok := s.lexer.Mode.(scanner.Slash); ok {
		buf += "/"
	}
	d, ok := s.declaration(buf)
	if !ok || !isProperty(d.Property) {
		return ast.Declaration{}, false
	}
	d.Closed = false
	return d, true
}

// declaration builds a closed declaration from buffered text.
func (s *State) declaration(buf string) (ast.Declaration, bool) {
	property, value, ok := splitDeclaration(buf)
	if !ok {
		return ast.Declaration{}, false
	}
	return ast.Declaration{
		Property: property,
		Value:    value,
		Closed:   true,
		Scope:    s.Scopes.Clone(),
	}, true
}

// Parser parses chunks of CSS-in-JS text.
type Parser struct {
	log *zap.Logger
}

// New returns a new instance of Parser. A nil logger discards diagnostics.
func New(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

var defaultParser = New(nil)

// Parse parses a chunk with the default parser.
func Parse(text string, prev *State) (*State, ast.Declarations) {
	return defaultParser.Parse(text, prev)
}

// ParseChunks parses consecutive chunks of one literal with the default
// parser and returns the final state and all declarations in source order.
func ParseChunks(chunks []string, prev *State) (*State, ast.Declarations) {
	return defaultParser.ParseChunks(chunks, prev)
}

// Parse parses one chunk of text, resuming from prev. A nil prev starts a
// new literal. prev is never modified.
//
// Parsing never fails. Unterminated comments, strings, selectors and
// declarations are kept in the returned state; an unmatched "}" is ignored.
func (p *Parser) Parse(text string, prev *State) (*State, ast.Declarations) {
	st := prev.Clone()
	s := scanner.New(text, st.lexer)

	var a ast.Declarations
	for {
		tok, lit, pos := s.Scan()
		if tok == token.EOF {
			st.lexer = s.State()
			return st, a
		} else if !tok.IsStructural() {
			st.buf += lit
			continue
		}

		switch tok {
		case token.LBRACE:
			name := strings.TrimSpace(st.buf)
			st.buf = ""
			st.Scopes = append(st.Scopes, ast.NewScope(name))

		case token.SEMICOLON:
			if d, ok := st.declaration(st.buf); ok {
				a = append(a, d)
			} else if v := strings.TrimSpace(st.buf); v != "" {
				p.log.Debug("dropping statement without property",
					zap.String("text", v),
					zap.Int("line", pos.Line),
					zap.Int("char", pos.Char))
			}
			st.buf = ""

		case token.RBRACE:
			// The last declaration of a block may omit its semicolon.
			if d, ok := st.declaration(st.buf); ok {
				a = append(a, d)
			}
			st.buf = ""

			if len(st.Scopes) == 0 {
				p.log.Debug("ignoring unmatched closing brace",
					zap.Int("line", pos.Line),
					zap.Int("char", pos.Char))
				continue
			}
			st.Scopes = st.Scopes[:len(st.Scopes)-1]
		}
	}
}

// ParseChunks parses consecutive chunks of one literal.
func (p *Parser) ParseChunks(chunks []string, prev *State) (*State, ast.Declarations) {
	st := prev.Clone()
	var a ast.Declarations
	for _, chunk := range chunks {
		var decls ast.Declarations
		st, decls = p.Parse(chunk, st)
		a = append(a, decls...)
	}
	return st, a
}

// splitDeclaration splits "property: value" at the first colon that is not
// escaped and not inside a string. Both halves are trimmed. The property
// must not be empty and must not be an at-keyword.
func splitDeclaration(buf string) (property, value string, ok bool) {
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '\\':
			i++
		case '"', '\'':
			return "", "", false
		case ':':
			property = strings.TrimSpace(buf[:i])
			if property == "" || strings.HasPrefix(property, "@") {
				return "", "", false
			}
			return property, strings.TrimSpace(buf[i+1:]), true
		}
	}
	return "", "", false
}

// isProperty returns true if s is a plain property name such as "color",
// "-webkit-box" or "--gap".
func isProperty(s string) bool {
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if s == "" || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameStart(s[i]) && s[i] != '-' && !(s[i] >= '0' && s[i] <= '9') {
			return false
		}
	}
	return true
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
