package token

// Token represents a lexical token produced while scanning a chunk of
// CSS-in-JS text.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF           // end of the current chunk, not of the literal

	// Runs of text that carry no structure. Strings, escapes and
	// parenthesized semicolons are folded into text verbatim.
	TEXT

	// Structural tokens
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	TEXT: "TEXT",

	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",
}

// String returns the string representation of the token.
func (tok Token) String() string {
	if tok >= 0 && tok < Token(len(tokens)) {
		return tokens[tok]
	}
	return ""
}

// IsStructural returns true for tokens that change scope or terminate a
// declaration.
func (tok Token) IsStructural() bool {
	return tok == LBRACE || tok == RBRACE || tok == SEMICOLON
}

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes within a single chunk.
type Pos struct {
	Char int
	Line int
}
