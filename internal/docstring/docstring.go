// Package docstring reads the summary line of a Python module docstring.
//
// Extraction is best-effort: unreadable files, invalid UTF-8 and anything
// that does not open with a plain string literal statement yield no summary.
package docstring

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bazelbuild/buildtools/build"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Summary returns the first non-blank line of the module docstring in the
// file at path, trimmed. ok is false when there is none.
func Summary(path string) (summary string, ok bool) {
	// #nosec G304 -- path comes from the source tree scan
	src, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return FromSource(src)
}

// FromSource is Summary for in-memory source.
func FromSource(src []byte) (summary string, ok bool) {
	src = bytes.TrimPrefix(src, bom)
	if !utf8.Valid(src) {
		return "", false
	}
	lit, ok := leadingLiteral(string(src))
	if !ok {
		return "", false
	}
	doc, _, err := build.Unquote(lit)
	if err != nil {
		return "", false
	}
	for line := range strings.SplitSeq(doc, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s, true
		}
	}
	return "", false
}

// leadingLiteral returns the string literal token forming the first statement
// of src, with any prefix normalized to the forms build.Unquote accepts.
func leadingLiteral(src string) (string, bool) {
	i := skipTrivia(src, 0)
	if i >= len(src) {
		return "", false
	}

	raw := false
	switch src[i] {
	case 'r', 'R':
		raw = true
		i++
	case 'u', 'U':
		i++
	}
	if i >= len(src) || (src[i] != '"' && src[i] != '\'') {
		return "", false
	}

	end, ok := literalEnd(src, i)
	if !ok || !statementEnds(src, end) {
		return "", false
	}
	lit := src[i:end]
	if raw {
		lit = "r" + lit
	}
	return lit, true
}

// skipTrivia skips whitespace, comments and line continuations.
func skipTrivia(src string, i int) int {
	for i < len(src) {
		switch c := src[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '\\' && i+1 < len(src) && (src[i+1] == '\n' || src[i+1] == '\r'):
			i += 2
		default:
			return i
		}
	}
	return i
}

// literalEnd returns the index just past the string literal opening at start.
func literalEnd(src string, start int) (int, bool) {
	q := src[start]
	delim := string(q)
	if strings.HasPrefix(src[start:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	for i := start + len(delim); i < len(src); i++ {
		switch {
		case src[i] == '\\':
			i++
		case len(delim) == 1 && src[i] == '\n':
			return 0, false
		case strings.HasPrefix(src[i:], delim):
			return i + len(delim), true
		}
	}
	return 0, false
}

// statementEnds reports whether nothing but a comment or separator follows
// the literal on its line.
func statementEnds(src string, i int) bool {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i >= len(src) || strings.IndexByte("\r\n#;", src[i]) >= 0
}
