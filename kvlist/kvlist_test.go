package kvlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayantasamaddar/go-kmsrequest/bytestr"
)

func add(l *List, k, v string) {
	l.Add(bytestr.NewFromString(k), bytestr.NewFromString(v))
}

func TestAddCopies(t *testing.T) {
	l := New()
	k := bytestr.NewFromString("key")
	v := bytestr.NewFromString("value")
	l.Add(k, v)
	k.AppendChar('!')
	v.AppendChar('!')
	assert.Equal(t, "key", l.At(0).Key.String())
	assert.Equal(t, "value", l.At(0).Value.String())
}

func TestFindIsCaseInsensitiveFirstMatch(t *testing.T) {
	l := New()
	add(l, "Content-Length", "10")
	add(l, "HOST", "one")
	add(l, "Host", "two")

	kv := l.Find("host")
	require.NotNil(t, kv)
	assert.Equal(t, "one", kv.Value.String())

	assert.Nil(t, l.Find("missing"))
}

func TestFindDoesNotFoldHighBitBytes(t *testing.T) {
	l := New()
	add(l, "€", "euro")
	require.NotNil(t, l.Find("€"))
	assert.Nil(t, l.Find("À")) // different non-ASCII bytes never match
}

func TestDelRemovesEveryExactMatch(t *testing.T) {
	l := New()
	add(l, "a", "1")
	add(l, "b", "2")
	add(l, "a", "3")
	add(l, "a", "4")
	add(l, "A", "5")

	l.Del("a")

	require.Equal(t, 2, l.Len())
	assert.Equal(t, "b", l.At(0).Key.String())
	assert.Equal(t, "A", l.At(1).Key.String()) // delete is case-sensitive
}

func TestDupIsDeep(t *testing.T) {
	l := New()
	add(l, "a", "1")
	d := l.Dup()
	d.At(0).Value.AppendChar('!')
	assert.Equal(t, "1", l.At(0).Value.String())
	assert.Equal(t, "1!", d.At(0).Value.String())
}

func TestSortedIsStable(t *testing.T) {
	l := New()
	add(l, "b", "b1")
	add(l, "a", "a1")
	add(l, "b", "b2")
	add(l, "a", "a2")
	add(l, "b", "b3")

	s := l.Sorted()

	require.Equal(t, 5, s.Len())
	var keys, values []string
	for i := 0; i < s.Len(); i++ {
		keys = append(keys, s.At(i).Key.String())
		values = append(values, s.At(i).Value.String())
	}
	assert.Equal(t, []string{"a", "a", "b", "b", "b"}, keys)
	// equal keys keep their insertion order
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "b3"}, values)

	// the input is untouched
	assert.Equal(t, "b", l.At(0).Key.String())
}

func TestSortedComparesRawBytes(t *testing.T) {
	l := New()
	add(l, "a", "lower")
	add(l, "B", "upper")

	s := l.Sorted()
	// ASCII 'B' (0x42) sorts before 'a' (0x61)
	assert.Equal(t, "B", s.At(0).Key.String())
	assert.Equal(t, "a", s.At(1).Key.String())
}
