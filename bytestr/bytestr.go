// Package bytestr implements the growable byte buffer the request
// canonicalizer is built on. A Str stores raw bytes: high-bit bytes
// (UTF-8 lead or continuation bytes) are carried verbatim and are
// never case-folded or escaped as anything other than independent
// bytes.
package bytestr

import (
	"encoding/hex"

	"github.com/jayantasamaddar/go-kmsrequest/auth"
)

// rfc3986Unreserved marks the bytes RFC 3986 leaves unescaped in
// percent-encoding: ASCII alphanumerics and '-', '_', '.', '~'.
var rfc3986Unreserved = makeUnreservedTable()

func makeUnreservedTable() [256]bool {
	var tab [256]bool
	for c := 0; c < 256; c++ {
		tab[c] = (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.' || c == '~'
	}
	return tab
}

const upperhex = "0123456789ABCDEF"

// isASCIISpace reports whether c is one of space, tab, CR, LF, VT or
// FF. Bytes with the high bit set are never whitespace.
func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func toLowerASCII(c byte) byte {
	// ignore UTF-8 non-ASCII bytes, which have 1 in the top bit
	if c&0x80 == 0 && c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Str is a growable buffer of 8-bit bytes.
type Str struct {
	buf []byte
}

// New returns an empty Str.
func New() *Str {
	return &Str{buf: make([]byte, 0, 16)}
}

// NewFromChars returns a Str holding a copy of b.
func NewFromChars(b []byte) *Str {
	s := &Str{buf: make([]byte, len(b))}
	copy(s.buf, b)
	return s
}

// NewFromString returns a Str holding the bytes of str.
func NewFromString(str string) *Str {
	return &Str{buf: []byte(str)}
}

// Len returns the number of bytes stored.
func (s *Str) Len() int {
	return len(s.buf)
}

// Bytes returns the underlying bytes. The slice is only valid until
// the next append.
func (s *Str) Bytes() []byte {
	return s.buf
}

func (s *Str) String() string {
	return string(s.buf)
}

// Dup returns a deep copy.
func (s *Str) Dup() *Str {
	return NewFromChars(s.buf)
}

// Equal reports byte equality.
func (s *Str) Equal(other *Str) bool {
	return string(s.buf) == string(other.buf)
}

// reserve grows the buffer so that at least n more bytes fit,
// rounding the new capacity up to the next power of two.
func (s *Str) reserve(n int) {
	next := len(s.buf) + n
	if next <= cap(s.buf) {
		return
	}
	next--
	next |= next >> 1
	next |= next >> 2
	next |= next >> 4
	next |= next >> 8
	next |= next >> 16
	next++
	grown := make([]byte, len(s.buf), next)
	copy(grown, s.buf)
	s.buf = grown
}

// Append byte-copies other onto the end of s.
func (s *Str) Append(other *Str) {
	s.AppendChars(other.buf)
}

// AppendChar appends a single byte.
func (s *Str) AppendChar(c byte) {
	s.reserve(1)
	s.buf = append(s.buf, c)
}

// AppendChars appends a copy of b.
func (s *Str) AppendChars(b []byte) {
	s.reserve(len(b))
	s.buf = append(s.buf, b...)
}

// AppendString appends the bytes of str.
func (s *Str) AppendString(str string) {
	s.reserve(len(str))
	s.buf = append(s.buf, str...)
}

// AppendNewline appends a single LF.
func (s *Str) AppendNewline() {
	s.AppendChar('\n')
}

// AppendLowercase appends other, lowercasing bytes in 'A'..='Z' only.
// Bytes with the high bit set are copied untouched.
func (s *Str) AppendLowercase(other *Str) {
	s.reserve(other.Len())
	for _, c := range other.buf {
		s.buf = append(s.buf, toLowerASCII(c))
	}
}

// AppendStripped appends other with leading and trailing ASCII
// whitespace dropped and internal runs of ASCII whitespace collapsed
// to a single space.
func (s *Str) AppendStripped(other *Str) {
	src := other.buf
	for len(src) > 0 && isASCIISpace(src[0]) {
		src = src[1:]
	}

	s.reserve(len(src))
	space := false
	for _, c := range src {
		if isASCIISpace(c) {
			space = true
			continue
		}
		// a pending run of whitespace is written as one space
		if space {
			s.buf = append(s.buf, ' ')
			space = false
		}
		s.buf = append(s.buf, c)
	}
}

// AppendEscaped appends the RFC 3986 percent-encoding of other.
// Unreserved bytes pass through; when escapeSlash is false '/' also
// passes through. Every other byte becomes %HH with uppercase hex,
// applied byte-wise, so multi-byte UTF-8 sequences are encoded as
// independent bytes.
func (s *Str) AppendEscaped(other *Str, escapeSlash bool) {
	// might replace each input byte with three output bytes: "%AB"
	s.reserve(3 * other.Len())
	for _, c := range other.buf {
		if rfc3986Unreserved[c] || (c == '/' && !escapeSlash) {
			s.buf = append(s.buf, c)
			continue
		}
		s.buf = append(s.buf, '%', upperhex[c>>4], upperhex[c&0xF])
	}
}

// AppendHex appends the lowercase hex encoding of b.
func (s *Str) AppendHex(b []byte) {
	s.reserve(2 * len(b))
	dst := make([]byte, 2*len(b))
	hex.Encode(dst, b)
	s.buf = append(s.buf, dst...)
}

// AppendHashed appends the lowercase-hex SHA-256 of other.
func (s *Str) AppendHashed(other *Str, crypto auth.Crypto) error {
	sum, err := crypto.SHA256(other.buf)
	if err != nil {
		return err
	}
	s.AppendHex(sum[:])
	return nil
}
