// Package input implements the interpreter's byte-stream reader: UTF-8
// character extraction and whitespace-delimited integer parsing, with a
// sticky EOF flag so repeated reads past the end of the stream stay no-ops
// instead of blocking or erroring.
package input

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Reader wraps an opaque byte stream for the InChar/InNumber commands.
type Reader struct {
	r     *bufio.Reader
	atEOF bool
}

// New wraps r for use by the interpreter's InChar/InNumber commands.
func New(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// next returns the next decoded rune, or false once the stream is
// exhausted. Once exhausted, it stays exhausted.
func (r *Reader) next() (rune, bool) {
	if r.atEOF {
		return 0, false
	}
	ch, _, err := r.r.ReadRune()
	if err != nil {
		r.atEOF = true
		return 0, false
	}
	return ch, true
}

// unread pushes the last rune read by next back onto the stream.
func (r *Reader) unread() {
	r.r.UnreadRune()
}

// ReadChar returns the next non-whitespace code point, or false on EOF.
func (r *Reader) ReadChar() (rune, bool) {
	for {
		ch, ok := r.next()
		if !ok {
			return 0, false
		}
		if !isASCIISpace(ch) {
			return ch, true
		}
	}
}

// readWord returns the next whitespace-delimited token, or false on EOF
// before any non-whitespace byte is seen.
func (r *Reader) readWord() (string, bool) {
	var sb strings.Builder

	ch, ok := r.next()
	for ok && isASCIISpace(ch) {
		ch, ok = r.next()
	}
	if !ok {
		return "", false
	}
	sb.WriteRune(ch)

	for {
		ch, ok = r.next()
		if !ok {
			break
		}
		if isASCIISpace(ch) {
			r.unread()
			break
		}
		sb.WriteRune(ch)
	}

	return sb.String(), true
}

// ReadInteger reads one whitespace-delimited token and parses it as a
// signed decimal integer. Returns false on EOF or on a token that fails to
// parse; in the latter case the token is still consumed.
func (r *Reader) ReadInteger() (int64, bool) {
	word, ok := r.readWord()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isASCIISpace(r rune) bool {
	return r <= unicode.MaxASCII && (r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r')
}
