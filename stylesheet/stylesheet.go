// Package stylesheet assembles the CSS extracted from several literals into
// one stylesheet and checks that the result is well formed.
package stylesheet

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yakcss/css"
	"github.com/yakcss/css/ast"
)

// ExtractedBanner marks CSS that belongs to a styled component or an inline
// css prop.
const ExtractedBanner = "YAK Extracted CSS:"

// exportedMixinPrefix marks CSS of a mixin that other files may import.
const exportedMixinPrefix = "YAK EXPORTED MIXIN:"

// ExportedMixinBanner returns the banner for an exported mixin. Each part of
// the export path is percent-encoded so ":" can separate them.
func ExportedMixinBanner(parts ...string) string {
	encoded := make([]string, len(parts))
	for i, part := range parts {
		encoded[i] = encodePercent(part)
	}
	return exportedMixinPrefix + strings.Join(encoded, ":")
}

// encodePercent escapes every byte outside of [A-Za-z0-9] as %XX.
func encodePercent(s string) string {
	const hex = "0123456789ABCDEF"

	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9') {
			buf.WriteByte(ch)
			continue
		}
		buf.WriteByte('%')
		buf.WriteByte(hex[ch>>4])
		buf.WriteByte(hex[ch&0xF])
	}
	return buf.String()
}

// Block is the CSS of a single literal.
type Block struct {
	Banner       string
	Declarations ast.Declarations
}

// Stylesheet is an ordered list of blocks.
type Stylesheet struct {
	Blocks []Block
}

// Append adds the declarations of one literal. An empty banner writes no
// comment. Literals without declarations are skipped.
func (s *Stylesheet) Append(banner string, decls ast.Declarations) {
	if len(decls) == 0 {
		return
	}
	s.Blocks = append(s.Blocks, Block{Banner: banner, Declarations: decls.Clone()})
}

// WriteTo writes the stylesheet to w.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	var p css.Printer
	for i, b := range s.Blocks {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if b.Banner != "" {
			fmt.Fprintf(&buf, "/*%s*/", b.Banner)
		}
		if err := p.Print(&buf, b.Declarations); err != nil {
			return 0, fmt.Errorf("print block %d: %w", i, err)
		}
	}
	return buf.WriteTo(w)
}

// String returns the stylesheet as text.
func (s *Stylesheet) String() string {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.String()
}
