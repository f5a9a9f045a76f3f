// Package render implements the template engine used for manifests and
// generated files.
//
// Templates use Go text/template semantics behind delimiters that do not
// collide with LaTeX's own use of braces and percent signs:
//
//	\STMT{ if .draft }draft\STMT{ end }   statement
//	\EXPR{ .title }                       expression
//	\#{ ignored }                         comment
//	%%$ range .authors                    line statement (whole line)
//	%%# ignored                           line comment (to end of line)
//
// An action ends at the first closing brace outside a quoted string.
// Templates are looked up in an ordered list of root directories, the
// first root containing the requested file wins. Referencing a key that is
// absent from the data is an error.
package render
