package scanner

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/yakcss/css/token"
)

// eof represents an EOF file byte.
var eof rune = -1

// Mode is the lexer mode carried from one chunk to the next.
// Exactly one mode is active at a time so a scanner can never be inside a
// comment and a string simultaneously.
type Mode interface {
	mode()
}

func (Text) mode()    {}
func (Escape) mode()  {}
func (Slash) mode()   {}
func (Comment) mode() {}
func (String) mode()  {}

// Text is the default mode. Structural characters are recognized.
type Text struct{}

// Escape follows a backslash outside of strings and comments. The next rune
// is kept verbatim and is never structural.
type Escape struct{}

// Slash follows a "/" that may still turn out to open a comment.
type Slash struct{}

// Comment is inside a /* ... */ comment.
// Star is set when the last rune consumed was a "*".
type Comment struct {
	Star bool
}

// String is inside a quoted string.
type String struct {
	Quote   rune
	Escaped bool
}

// State is the part of the scanner that survives a chunk boundary.
type State struct {
	Mode Mode

	// Parens is the current parenthesis depth. Semicolons inside
	// parentheses are treated as text.
	Parens int
}

// InComment returns true if the chunk ended inside a comment.
func (st State) InComment() bool {
	_, ok := st.Mode.(Comment)
	return ok
}

// InString returns true if the chunk ended inside a quoted string.
func (st State) InString() bool {
	_, ok := st.Mode.(String)
	return ok
}

// Scanner splits a single chunk of CSS-in-JS text into tokens. It never
// fails; incomplete comments, strings and escapes are kept in its State so
// the next chunk can resume where this one stopped.
type Scanner struct {
	rd  io.RuneReader
	pos token.Pos

	mode   Mode
	parens int

	buf    [4]rune      // circular buffer for runes
	bufpos [4]token.Pos // circular buffer for position
	bufi   int          // circular buffer index
	bufn   int          // number of buffered characters
}

// New returns a new instance of Scanner that resumes from st.
func New(src string, st State) *Scanner {
	s := &Scanner{
		rd:     bufio.NewReader(strings.NewReader(src)),
		mode:   st.Mode,
		parens: st.Parens,
	}
	if s.mode == nil {
		s.mode = Text{}
	}
	return s
}

// State returns the state to hand to the scanner of the next chunk.
func (s *Scanner) State() State {
	return State{Mode: s.mode, Parens: s.parens}
}

// Scan returns the next token, its literal text and the position of its
// first rune. TEXT literals are returned verbatim without comments.
func (s *Scanner) Scan() (tok token.Token, lit string, pos token.Pos) {
	var buf bytes.Buffer
	write := func(ch rune) {
		if buf.Len() == 0 {
			pos = s.Pos()
		}
		_, _ = buf.WriteRune(ch)
	}

	for {
		ch := s.read()
		if ch == eof {
			if buf.Len() > 0 {
				return token.TEXT, buf.String(), pos
			}
			return token.EOF, "", s.pos
		}

		switch m := s.mode.(type) {
		case Comment:
			// Comments are dropped entirely and do not end a text run.
			if m.Star && ch == '/' {
				s.mode = Text{}
			} else {
				s.mode = Comment{Star: ch == '*'}
			}
			continue

		case String:
			write(ch)
			if m.Escaped {
				s.mode = String{Quote: m.Quote}
			} else if ch == '\\' {
				s.mode = String{Quote: m.Quote, Escaped: true}
			} else if ch == m.Quote {
				s.mode = Text{}
			}
			continue

		case Escape:
			write(ch)
			s.mode = Text{}
			continue

		case Slash:
			if ch == '*' {
				s.mode = Comment{}
				continue
			}

			// Not a comment. Emit the pending slash and reconsume.
			write('/')
			s.mode = Text{}
			s.unread(1)
			continue
		}

		switch ch {
		case '/':
			s.mode = Slash{}
		case '\\':
			write(ch)
			s.mode = Escape{}
		case '"', '\'':
			write(ch)
			s.mode = String{Quote: ch}
		case '(':
			write(ch)
			s.parens++
		case ')':
			write(ch)
			if s.parens > 0 {
				s.parens--
			}
		case ';':
			if s.parens > 0 {
				write(ch)
				continue
			}
			if buf.Len() > 0 {
				s.unread(1)
				return token.TEXT, buf.String(), pos
			}
			return token.SEMICOLON, ";", s.Pos()
		case '{', '}':
			if buf.Len() > 0 {
				s.unread(1)
				return token.TEXT, buf.String(), pos
			}

			// A brace always ends any unbalanced parenthesis.
			s.parens = 0
			if ch == '{' {
				return token.LBRACE, "{", s.Pos()
			}
			return token.RBRACE, "}", s.Pos()
		default:
			write(ch)
		}
	}
}

// read reads the next rune from the reader.
// This function will initially check for any characters that have been pushed
// back onto the lookahead buffer and return those. Otherwise it will read from
// the reader and track the position of the rune. EOF is returned as -1.
func (s *Scanner) read() rune {
	// If we have runes on our internal lookahead buffer then return those.
	if s.bufn > 0 {
		s.bufi = ((s.bufi + 1) % len(s.buf))
		s.bufn--
		return s.buf[s.bufi]
	}

	// Otherwise read from the reader.
	ch, _, err := s.rd.ReadRune()
	pos := s.pos
	if err != nil {
		return eof
	}

	// Track scanner position.
	if ch == '\n' {
		s.pos.Line++
		s.pos.Char = 0
	} else {
		s.pos.Char++
	}

	// Add to circular buffer.
	s.bufi = ((s.bufi + 1) % len(s.buf))
	s.buf[s.bufi] = ch
	s.bufpos[s.bufi] = pos
	return ch
}

// unread adds the previous n code points back onto the buffer.
func (s *Scanner) unread(n int) {
	for i := 0; i < n; i++ {
		s.bufi = ((s.bufi + len(s.buf) - 1) % len(s.buf))
		s.bufn++
	}
}

// Pos reads the position of the current code point.
func (s *Scanner) Pos() token.Pos {
	return s.bufpos[s.bufi]
}
