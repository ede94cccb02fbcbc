package css

import (
	"github.com/yakcss/css/ast"
	"github.com/yakcss/css/parser"
)

// Parse parses one chunk of a literal, resuming from prev.
// A nil prev starts a new literal.
func Parse(text string, prev *parser.State) (*parser.State, ast.Declarations) {
	return parser.Parse(text, prev)
}

// ParseChunks parses all chunks of a literal in order.
func ParseChunks(chunks []string, prev *parser.State) (*parser.State, ast.Declarations) {
	return parser.ParseChunks(chunks, prev)
}

// Compile parses the chunks of a single literal from scratch and returns
// the resulting CSS.
func Compile(chunks ...string) string {
	_, decls := parser.ParseChunks(chunks, nil)
	return ToCSS(decls)
}
