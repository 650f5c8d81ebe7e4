package bytestr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayantasamaddar/go-kmsrequest/utils"
)

func TestAppendGrowth(t *testing.T) {
	s := New()
	for i := 0; i < 100; i++ {
		s.AppendChar(byte('a' + i%26))
	}
	assert.Equal(t, 100, s.Len())
	assert.Equal(t, strings.Repeat("abcdefghijklmnopqrstuvwxyz", 4)[:100], s.String())
}

func TestAppendNewline(t *testing.T) {
	s := NewFromString("x")
	s.AppendNewline()
	assert.Equal(t, "x\n", s.String())
}

func TestDupIsDeep(t *testing.T) {
	s := NewFromString("abc")
	d := s.Dup()
	d.AppendChar('d')
	assert.Equal(t, "abc", s.String())
	assert.Equal(t, "abcd", d.String())
}

func TestAppendLowercase(t *testing.T) {
	s := New()
	s.AppendLowercase(NewFromString("AbC-XYZ"))
	assert.Equal(t, "abc-xyz", s.String())
}

func TestAppendLowercasePreservesNonASCII(t *testing.T) {
	// every high-bit byte must pass through untouched
	in := make([]byte, 0, 128)
	for c := 0x80; c <= 0xFF; c++ {
		in = append(in, byte(c))
	}
	s := New()
	s.AppendLowercase(NewFromChars(in))
	assert.Equal(t, in, s.Bytes())
}

func TestAppendStripped(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"a", "a"},
		{"  a   b  ", "a b"},
		{"\t a \r\n b \f\v", "a b"},
		{"a  b   c", "a b c"},
		{"   ", ""},
	}
	for _, c := range cases {
		s := New()
		s.AppendStripped(NewFromString(c.in))
		assert.Equal(t, c.want, s.String(), "input %q", c.in)
	}
}

func TestStripIdempotent(t *testing.T) {
	strip := func(in string) string {
		s := New()
		s.AppendStripped(NewFromString(in))
		return s.String()
	}
	for _, in := range []string{"  a   b  ", "a b", "", " \t ", "x\n\ny"} {
		once := strip(in)
		assert.Equal(t, once, strip(once), "input %q", in)
	}
}

func TestAppendEscapedUnreservedRoundTrip(t *testing.T) {
	unreserved := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~"
	s := New()
	s.AppendEscaped(NewFromString(unreserved), true)
	assert.Equal(t, unreserved, s.String())
}

func TestAppendEscaped(t *testing.T) {
	s := New()
	s.AppendEscaped(NewFromString("a b/c%"), true)
	assert.Equal(t, "a%20b%2Fc%25", s.String())

	s = New()
	s.AppendEscaped(NewFromString("a b/c%"), false)
	assert.Equal(t, "a%20b/c%25", s.String())
}

func TestAppendEscapedSlashPolicy(t *testing.T) {
	// the two modes may differ only in '/' vs %2F
	in := NewFromString("/x/€ /..//")
	esc := New()
	esc.AppendEscaped(in, true)
	kept := New()
	kept.AppendEscaped(in, false)
	assert.Equal(t, esc.String(), strings.ReplaceAll(kept.String(), "/", "%2F"))
}

func TestAppendEscapedMultibyte(t *testing.T) {
	// each UTF-8 byte is escaped independently, with uppercase hex
	s := New()
	s.AppendEscaped(NewFromString("€"), true)
	assert.Equal(t, "%E2%82%AC", s.String())
}

func TestAppendHex(t *testing.T) {
	s := New()
	s.AppendHex([]byte{0x00, 0xAB, 0xFF})
	assert.Equal(t, "00abff", s.String())
}

func TestAppendHashedEmpty(t *testing.T) {
	s := New()
	err := s.AppendHashed(New(), utils.Crypto{})
	require.NoError(t, err)
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		s.String())
}
