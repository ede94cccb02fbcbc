package ast

import (
	"bytes"
	"strings"
)

// ScopeType identifies the kind of block a scope was opened with.
type ScopeType int

const (
	// Selector is a qualified rule such as ".foo" or "&:hover".
	Selector ScopeType = iota

	// AtRule is any block whose preamble starts with an "@" symbol.
	AtRule
)

// String returns the string representation of the scope type.
func (typ ScopeType) String() string {
	switch typ {
	case Selector:
		return "selector"
	case AtRule:
		return "at-rule"
	}
	return ""
}

// Scope represents one level of CSS nesting.
// Scopes are plain values and compare with ==.
type Scope struct {
	Name string
	Type ScopeType
}

// NewScope returns a scope for a block preamble. The type is derived from
// the name: at-rule if it starts with "@", selector otherwise.
func NewScope(name string) Scope {
	if strings.HasPrefix(name, "@") {
		return Scope{Name: name, Type: AtRule}
	}
	return Scope{Name: name, Type: Selector}
}

// IsProperty returns true if the scope is an @property block. These blocks
// must not be nested inside a selector.
func (s Scope) IsProperty() bool {
	return s.Type == AtRule && strings.HasPrefix(s.Name, "@property")
}

func (s Scope) String() string {
	return s.Name
}

// Scopes represents a nesting path, outermost first.
type Scopes []Scope

// Clone returns a copy of the path that shares no memory with a.
func (a Scopes) Clone() Scopes {
	if len(a) == 0 {
		return nil
	}
	other := make(Scopes, len(a))
	copy(other, a)
	return other
}

// Equal returns true if both paths contain the same scopes in the same order.
func (a Scopes) Equal(other Scopes) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// CommonPrefix returns the number of leading scopes shared by both paths.
func (a Scopes) CommonPrefix(other Scopes) int {
	n := 0
	for n < len(a) && n < len(other) && a[n] == other[n] {
		n++
	}
	return n
}

// Hoisted returns the first @property scope in the path, if any.
func (a Scopes) Hoisted() (Scope, bool) {
	for _, s := range a {
		if s.IsProperty() {
			return s, true
		}
	}
	return Scope{}, false
}

func (a Scopes) String() string {
	var buf bytes.Buffer
	for i, s := range a {
		if i > 0 {
			buf.WriteString(" > ")
		}
		buf.WriteString(s.Name)
	}
	return buf.String()
}

// Declaration represents a single property/value pair together with the
// nesting path that was active when it was parsed.
type Declaration struct {
	Property string
	Value    string

	// Closed is set once the terminating ";" or "}" has been seen. An open
	// declaration is still accumulating its value.
	Closed bool

	// Scope is owned by the declaration. It is never shared with the
	// parser state or with other declarations.
	Scope Scopes
}

// String returns the declaration formatted as a CSS line without indentation.
func (d *Declaration) String() string {
	return d.Property + ": " + d.Value + ";"
}

// Clone returns a deep copy of the declaration.
func (d Declaration) Clone() Declaration {
	d.Scope = d.Scope.Clone()
	return d
}

// Declarations represents an ordered list of declarations.
type Declarations []Declaration

// Clone returns a deep copy of the list.
func (a Declarations) Clone() Declarations {
	if a == nil {
		return nil
	}
	other := make(Declarations, len(a))
	for i, d := range a {
		other[i] = d.Clone()
	}
	return other
}
