package stylesheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// Error represents a problem found in generated CSS.
type Error struct {
	Message string
	Line    int
	Col     int
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// ErrorList represents a list of problems.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}

// Check lexes s as CSS and reports unbalanced braces, unterminated comments
// and broken string or url tokens. It does not validate properties or
// values. A nil error is returned if no problem was found.
func Check(s string) error {
	var errs ErrorList
	report := func(offset int, msg string) {
		line, col, _ := parse.Position(strings.NewReader(s), offset)
		errs = append(errs, &Error{Message: msg, Line: line, Col: col})
	}

	l := tcss.NewLexer(parse.NewInputString(s))

	var offset int
	var open []int
	for {
		tt, data := l.Next()
		switch tt {
		case tcss.ErrorToken:
			if err := l.Err(); err != io.EOF {
				report(offset, err.Error())
				return errs
			}
			for i := len(open) - 1; i >= 0; i-- {
				report(open[i], "unclosed block")
			}
			if len(errs) == 0 {
				return nil
			}
			return errs

		case tcss.LeftBraceToken:
			open = append(open, offset)
		case tcss.RightBraceToken:
			if len(open) == 0 {
				report(offset, "unexpected }")
			} else {
				open = open[:len(open)-1]
			}
		case tcss.BadStringToken:
			report(offset, "unterminated string")
		case tcss.BadURLToken:
			report(offset, "bad url")
		case tcss.CommentToken:
			if len(data) < 4 || !strings.HasSuffix(string(data), "*/") {
				report(offset, "unterminated comment")
			}
		}
		offset += len(data)
	}
}
