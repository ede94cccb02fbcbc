package parser_test

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/yakcss/css/ast"
	"github.com/yakcss/css/parser"
)

// corpus is a set of inputs that exercise every lexer mode.
var corpus = []string{
	``,
	`color: red;`,
	`.foo { .fancy { /* hello .world { color: red; } */ color: blue; } &:hover { color: orange; } }`,
	`.foo { /* comment bar {*/ color: orange; }`,
	`.foo { content: "line1\\\nline2"; quotes: '"' "'"; }`,
	`.a\{b { c\;d: e\}f; }`,
	`@media (min-width: 768px) { .grid { grid-template-columns: repeat(2, 1fr); } }`,
	`background: url(data:image/png;base64,iVBOR) no-repeat; x: url(//cdn/a.png);`,
	`.foo { .fancy { @property --angle { syntax: '<angle>'; inherits: true; initial-value: 0turn; } } &:hover { color: orange; } }`,
	`} } .x { a: b } } /* open`,
	`.foo { width: calc(100% / 3); height: calc((1px + 2px) * 3) }`,
	"transform: rotate(1deg)\n  translate(0, -88px);\n",
	`:global(.foo) { &:not(:first-child) { margin: 0 } }`,
	`a { b: "unterminated`,
	`a { b: c /`,
	`/**/a/***/{b:c/**/;}`,
	`.é { content: "☃"; }`,
}

// split returns s split at byte offsets, keeping runes intact.
func split(s string, offsets ...int) []string {
	var a []string
	prev := 0
	for _, off := range offsets {
		a = append(a, s[prev:off])
		prev = off
	}
	return append(a, s[prev:])
}

// boundaries returns every valid rune boundary of s, including 0 and len(s).
func boundaries(s string) []int {
	var a []int
	for i := range s {
		a = append(a, i)
	}
	return append(a, len(s))
}

// checkResumable verifies that parsing chunks incrementally matches a
// single parse of their concatenation.
func checkResumable(t *testing.T, chunks []string) {
	t.Helper()

	var whole string
	for _, chunk := range chunks {
		whole += chunk
	}
	expState, expDecls := parser.Parse(whole, nil)

	var st *parser.State
	var decls ast.Declarations
	for _, chunk := range chunks {
		next, a := parser.Parse(chunk, st)
		st, decls = next, append(decls, a...)
	}

	if diff := cmp.Diff(expDecls, decls); diff != "" {
		t.Fatalf("%q: declarations (-whole +chunked):\n%s", chunks, diff)
	}
	if !st.Equal(expState) {
		t.Fatalf("%q: final state differs: scopes=%s buf=%q, want scopes=%s buf=%q",
			chunks, st.Scopes, st.Buffered(), expState.Scopes, expState.Buffered())
	}
}

// Ensure that any split point yields the same result as a single parse.
func TestParse_Resumable_AnySplit(t *testing.T) {
	for _, s := range corpus {
		for _, k := range boundaries(s) {
			checkResumable(t, split(s, k))
		}
	}
}

// Ensure that any pair of split points yields the same result.
func TestParse_Resumable_ThreeChunks(t *testing.T) {
	for _, s := range corpus {
		b := boundaries(s)
		for i := range b {
			for j := i; j < len(b); j++ {
				checkResumable(t, split(s, b[i], b[j]))
			}
		}
	}
}

// Ensure that splitting a literal into single runes still works.
func TestParse_Resumable_EveryRune(t *testing.T) {
	for _, s := range corpus {
		var chunks []string
		for _, r := range s {
			chunks = append(chunks, string(r))
		}
		checkResumable(t, chunks)
	}
}

func FuzzParse_Resumable(f *testing.F) {
	for _, s := range corpus {
		f.Add(s, uint(len(s)/2))
	}

	f.Fuzz(func(t *testing.T, s string, k uint) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		b := boundaries(s)
		checkResumable(t, split(s, b[int(k%uint(len(b)))]))
	})
}
