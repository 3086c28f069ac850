package rewrite

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminatedComment is returned by Scrub for a block comment without
// its closing delimiter.
var ErrUnterminatedComment = errors.New("unterminated block comment")

// Scrub returns a copy of src with the contents of comments and of string
// and character literals replaced by spaces. Quote delimiters and newlines
// are kept, so the result has the same length and line structure as src.
//
// An unterminated literal ends at the end of its line.
func Scrub(src string) (string, error) {
	buf := []byte(src)
	var quote byte

	for i := 0; i < len(buf); {
		c := buf[i]

		if quote != 0 {
			switch {
			case c == '\n':
				quote = 0
				i++
			case c == '\\' && i+1 < len(buf) && buf[i+1] != '\n':
				buf[i], buf[i+1] = ' ', ' '
				i += 2
			case c == quote:
				quote = 0
				i++
			default:
				buf[i] = ' '
				i++
			}
			continue
		}

		switch {
		case c == '/' && i+1 < len(buf) && buf[i+1] == '/':
			for i < len(buf) && buf[i] != '\n' {
				buf[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(buf) && buf[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return "", fmt.Errorf("%w at offset %d", ErrUnterminatedComment, i)
			}
			for stop := i + 2 + end + 2; i < stop; i++ {
				if buf[i] != '\n' {
					buf[i] = ' '
				}
			}
		case c == '"' || c == '\'':
			quote = c
			i++
		default:
			i++
		}
	}

	return string(buf), nil
}
