package render

import (
	"fmt"
	"strings"
)

// Delimiters of the template dialect
const (
	StatementStart      = `\STMT{`
	ExpressionStart     = `\EXPR{`
	CommentStart        = `\#{`
	ActionEnd           = '}'
	LineStatementPrefix = "%%$"
	LineCommentPrefix   = "%%#"
)

// Delimiters handed to text/template. Source text may not contain them.
const (
	leftDelim  = "\x02"
	rightDelim = "\x03"
)

// Translate rewrites dialect source into text/template source using the
// internal delimiters. Line numbers are preserved so that parse and
// execution errors point at the original line.
func Translate(src string) (string, error) {
	if strings.ContainsAny(src, leftDelim+rightDelim) {
		return "", fmt.Errorf("template contains reserved control characters")
	}

	var out strings.Builder
	out.Grow(len(src))

	line := 1
	atLineStart := true
	i := 0
	for i < len(src) {
		if atLineStart {
			atLineStart = false

			j := i
			for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
				j++
			}
			rest := src[j:]
			switch {
			case strings.HasPrefix(rest, LineStatementPrefix):
				end := lineEnd(src, j)
				stmt := strings.TrimSpace(src[j+len(LineStatementPrefix) : end])
				if stmt == "" {
					return "", fmt.Errorf("line %d: empty line statement", line)
				}
				// The newline stays inside the action: it is consumed from the
				// output but still counted by the parser.
				out.WriteString(leftDelim + " " + stmt + newlineAt(src, end) + rightDelim)
				i, line, atLineStart = advanceLine(src, end, line)
				continue
			case strings.HasPrefix(rest, LineCommentPrefix):
				end := lineEnd(src, j)
				out.WriteString(leftDelim + "/*" + newlineAt(src, end) + "*/" + rightDelim)
				i, line, atLineStart = advanceLine(src, end, line)
				continue
			}
		}

		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, CommentStart):
			body, next, err := scanAction(src, i+len(CommentStart), line)
			if err != nil {
				return "", err
			}
			newlines := strings.Repeat("\n", strings.Count(body, "\n"))
			out.WriteString(leftDelim + "/*" + newlines + "*/" + rightDelim)
			line += len(newlines)
			i = next
		case strings.HasPrefix(rest, StatementStart), strings.HasPrefix(rest, ExpressionStart):
			start := i + len(StatementStart)
			if strings.HasPrefix(rest, ExpressionStart) {
				start = i + len(ExpressionStart)
			}
			body, next, err := scanAction(src, start, line)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(body) == "" {
				return "", fmt.Errorf("line %d: empty action", line)
			}
			out.WriteString(leftDelim + body + rightDelim)
			line += strings.Count(body, "\n")
			i = next
		case strings.HasPrefix(rest, LineCommentPrefix):
			// Trailing comment: drop it, keep the newline.
			i = lineEnd(src, i)
		case src[i] == '\n':
			out.WriteByte('\n')
			line++
			atLineStart = true
			i++
		default:
			out.WriteByte(src[i])
			i++
		}
	}

	return out.String(), nil
}

// scanAction returns the action body starting at start and the index just
// past its closing brace. Braces inside string and character literals do
// not close the action.
func scanAction(src string, start, line int) (string, int, error) {
	var quote byte
	for k := start; k < len(src); k++ {
		c := src[k]
		switch {
		case quote == 0 && c == ActionEnd:
			return src[start:k], k + 1, nil
		case quote == 0 && (c == '"' || c == '\'' || c == '`'):
			quote = c
		case quote != 0 && quote != '`' && c == '\\':
			k++
		case quote != 0 && c == quote:
			quote = 0
		}
	}
	return "", 0, fmt.Errorf("line %d: unterminated action", line)
}

// lineEnd returns the index of the newline ending the line containing i,
// or len(src) on the last line.
func lineEnd(src string, i int) int {
	if n := strings.IndexByte(src[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(src)
}

func newlineAt(src string, end int) string {
	if end < len(src) {
		return "\n"
	}
	return ""
}

func advanceLine(src string, end, line int) (int, int, bool) {
	if end < len(src) {
		return end + 1, line + 1, true
	}
	return end, line, false
}
