/*
Package css implements the CSS engine of a CSS-in-JS extractor. It parses the
text of tagged template literals such as css`...`, styled.div`...` and
keyframes`...` into a flat list of declarations and prints that list back as
nested, indented CSS.

# Basics

A template literal is split into chunks by its embedded expressions. Each
chunk is parsed separately and the parser state is threaded from one chunk
to the next, so a chunk may end anywhere: inside a selector, a comment, a
string or a declaration value. Parsing the concatenated chunks in one call
yields exactly the same declarations as parsing them one by one.

Parsing occurs in two steps. First the scanner breaks a chunk into text runs
and the structural tokens "{", "}" and ";". Comments are dropped and strings,
escapes and parenthesized semicolons are folded into text. The second step
feeds these tokens into the parser which keeps a stack of open scopes and
emits a Declaration whenever a property/value pair is terminated.

# Declarations

A Declaration is a property, a value and the full nesting path that was
active when it was parsed, outermost scope first. A Scope is either a
selector (".foo", "&:hover") or an at-rule ("@media print").

Declarations that are not terminated at the end of a chunk are kept in the
parser State and can be inspected with State.Pending. They are only emitted
once a later chunk terminates them.

# Printing

ToCSS prints declarations as nested CSS with two spaces of indentation per
level. Consecutive declarations share open blocks. Declarations inside an
@property at-rule are hoisted to the top of the output regardless of where
they were nested, since @property is not allowed inside a selector.

	_, decls := css.ParseChunks([]string{".foo { .fancy { color: blue;", "} &:hover { color: orange;"}, nil)
	fmt.Println(css.ToCSS(decls))
*/
package css
