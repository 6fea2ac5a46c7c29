// Package token encodes absolute filesystem paths into opaque tokens that
// survive a round trip through the picker's single-line, tab-delimited record
// format. Only the characters that would corrupt such a record are escaped,
// so tokens stay readable in logs and preview command lines.
package token

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyToken marks a decode of an empty token. Callers treat it as
// "no selection" (e.g., an empty directory frame), never as a failure.
var ErrEmptyToken = errors.New("empty token")

const escape = '%'

// escaped holds the byte values that cannot appear raw inside one field of a
// tab-delimited line: the delimiter itself, record terminators, and the
// escape character.
var escaped = map[byte]bool{
	'%':  true,
	'\t': true,
	'\n': true,
	'\r': true,
}

// Encode converts a path into a token safe for embedding in one line of
// delimited text. The mapping is injective: distinct paths always produce
// distinct tokens.
func Encode(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if escaped[c] {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Decode is the left inverse of Encode. Malformed escape sequences yield an
// error rather than a panic; an empty token yields ErrEmptyToken.
func Decode(tok string) (string, error) {
	if tok == "" {
		return "", ErrEmptyToken
	}
	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != escape {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(tok) {
			return "", fmt.Errorf("truncated escape at offset %d", i)
		}
		hi, ok1 := unhex(tok[i+1])
		lo, ok2 := unhex(tok[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("invalid escape %q at offset %d", tok[i:i+3], i)
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
