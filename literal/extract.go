package literal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yakcss/css/ast"
	"github.com/yakcss/css/parser"
)

// Variable is an expression that was replaced by a CSS variable.
type Variable struct {
	Name     string // e.g. "--Button__color"
	Property string
	Expr     string
}

// Result is the outcome of extracting a single literal.
type Result struct {
	// State is the parser state after the last chunk. It can seed a
	// nested literal with NestedState.
	State *parser.State

	Declarations ast.Declarations

	// Variables are expressions in value position, in source order.
	Variables []Variable

	// Dropped are expressions that could not be placed into the CSS, e.g.
	// a selector or a whole-declaration interpolation.
	Dropped []string
}

// Extractor parses literals and substitutes expressions in value position
// with CSS variables.
type Extractor struct {
	log    *zap.Logger
	parser *parser.Parser
}

// NewExtractor returns a new instance of Extractor. A nil logger discards
// diagnostics.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log, parser: parser.New(log)}
}

var defaultExtractor = NewExtractor(nil)

// Extract extracts l with the default extractor.
func Extract(l Literal, prev *parser.State) Result {
	return defaultExtractor.Extract(l, prev)
}

// Extract parses every chunk of l, resuming from prev. An expression that
// follows a pending declaration is replaced by var(--<name>__<property>);
// every other expression is dropped.
func (e *Extractor) Extract(l Literal, prev *parser.State) Result {
	var r Result
	seen := make(map[string]int)

	st := prev
	for i, chunk := range l.Chunks {
		var decls ast.Declarations
		st, decls = e.parser.Parse(chunk, st)
		r.Declarations = append(r.Declarations, decls...)

		if i >= len(l.Exprs) {
			continue
		}
		expr := l.Exprs[i]

		d, ok := st.Pending()
		if !ok || st.Lexer().InString() || st.Lexer().InComment() {
			e.log.Debug("dropping expression outside of a value",
				zap.String("literal", l.Name),
				zap.String("expr", expr))
			r.Dropped = append(r.Dropped, expr)
			continue
		}

		name := variableName(l.Name, d.Property, seen)
		st, decls = e.parser.Parse("var("+name+")", st)
		r.Declarations = append(r.Declarations, decls...)
		r.Variables = append(r.Variables, Variable{Name: name, Property: d.Property, Expr: expr})
	}

	// A literal without chunks still hands back a usable state.
	if st == nil {
		st = prev.Clone()
	}
	r.State = st
	return r
}

// variableName returns a unique custom property name for a value of property.
func variableName(literal, property string, seen map[string]int) string {
	property = strings.TrimLeft(property, "-")
	base := "--" + property
	if literal != "" {
		base = "--" + literal + "__" + property
	}

	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%02d", base, n)
}
