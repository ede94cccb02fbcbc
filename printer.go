package css

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yakcss/css/ast"
)

// indent is the string written once per nesting level.
const indent = "  "

// Printer writes a flat declaration list as nested CSS.
//
// Every block opening, block closing and declaration line is prefixed with a
// newline. Declarations inside an @property block are hoisted to the top of
// the output because @property must not be nested inside a selector.
type Printer struct{}

// Print writes the CSS for decls to w.
func (p *Printer) Print(w io.Writer, decls ast.Declarations) error {
	var hoisted, regular bytes.Buffer

	var prev ast.Scopes
	var current ast.Scope
	var open bool

	for _, d := range decls {
		if s, ok := d.Scope.Hoisted(); ok {
			// Close the previous hoisted block if this declaration belongs
			// to a different one. Regular declarations in between do not
			// close it; otherwise printed output would not parse back to
			// the same list.
			if open && s != current {
				hoisted.WriteString("\n}\n")
				open = false
			}
			if !open {
				fmt.Fprintf(&hoisted, "\n%s {", s.Name)
				current, open = s, true
			}
			fmt.Fprintf(&hoisted, "\n%s%s: %s;", indent, d.Property, d.Value)
			continue
		}

		n := d.Scope.CommonPrefix(prev)

		// Close scopes that the declaration is no longer part of, innermost first.
		for i := len(prev) - 1; i >= n; i-- {
			fmt.Fprintf(&regular, "\n%s}", strings.Repeat(indent, i))
		}

		// Open the remaining scopes of the declaration, outermost first.
		for i := n; i < len(d.Scope); i++ {
			fmt.Fprintf(&regular, "\n%s%s {", strings.Repeat(indent, i), d.Scope[i].Name)
		}

		fmt.Fprintf(&regular, "\n%s%s: %s;", strings.Repeat(indent, len(d.Scope)), d.Property, d.Value)
		prev = d.Scope
	}

	if open {
		hoisted.WriteString("\n}\n")
	}
	for i := len(prev) - 1; i >= 0; i-- {
		fmt.Fprintf(&regular, "\n%s}", strings.Repeat(indent, i))
	}

	if _, err := hoisted.WriteTo(w); err != nil {
		return err
	}
	_, err := regular.WriteTo(w)
	return err
}

// ToCSS returns the CSS for decls using the default printer.
func ToCSS(decls ast.Declarations) string {
	var p Printer
	var buf bytes.Buffer
	_ = p.Print(&buf, decls)
	return buf.String()
}
