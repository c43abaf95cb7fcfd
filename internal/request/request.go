package request

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultReadSize is how many bytes of a connection are looked at.
const DefaultReadSize = 512

var ErrEmptyRequest = errors.New("empty request")

// Request is one accepted request line.
type Request struct {
	Method      string
	URI         string
	HTTPVersion string
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s %s\r\n", r.Method, r.URI, r.HTTPVersion)
}

// ReadLine does a single Read of at most size bytes and returns the first
// line of what arrived, decoded as UTF-8 with invalid sequences replaced.
// A line longer than size is cut at the buffer boundary.
func ReadLine(r io.Reader, size int) (string, error) {
	if size <= 0 {
		size = DefaultReadSize
	}
	buf := make([]byte, size)

	n, err := r.Read(buf)
	if err != nil && !(errors.Is(err, io.EOF) && n > 0) {
		if errors.Is(err, io.EOF) {
			return "", ErrEmptyRequest
		}
		return "", fmt.Errorf("read request: %w", err)
	}
	if n == 0 {
		return "", ErrEmptyRequest
	}

	return FirstLine(DecodeLossy(buf[:n])), nil
}

// DecodeLossy decodes b as UTF-8, writing one U+FFFD for each maximal
// invalid subsequence, so "\xff\xfe" gives two and a truncated
// "\xe2\x82" gives one.
func DecodeLossy(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[invalidPrefixLen(b):]
	}
	return sb.String()
}

// invalidPrefixLen returns how many bytes of the invalid sequence at the
// start of b belong together: a lead byte plus the continuation bytes that
// were still acceptable for it. It is always at least 1.
func invalidPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	need := 0

	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for i := 0; i < need && n < len(b); i++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}

// FirstLine returns text up to the first "\n", without a trailing "\r".
func FirstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[:idx]
	}
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}
	return text
}
