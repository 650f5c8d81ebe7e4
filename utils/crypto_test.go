package utils

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256EmptyInput(t *testing.T) {
	sum, err := Crypto{}.SHA256(nil)
	require.NoError(t, err)
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		hex.EncodeToString(sum[:]))
}

// RFC 4231 test case 2
func TestHMACSHA256(t *testing.T) {
	sum, err := Crypto{}.HMACSHA256([]byte("Jefe"), []byte("what do ya want for nothing?"))
	require.NoError(t, err)
	assert.Equal(t,
		"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		hex.EncodeToString(sum[:]))
}

func TestHMACSHA256LongKey(t *testing.T) {
	// keys longer than the block size are hashed first; just check determinism
	key := bytes.Repeat([]byte{0xaa}, 131)
	a, err := Crypto{}.HMACSHA256(key, []byte("msg"))
	require.NoError(t, err)
	b, err := Crypto{}.HMACSHA256(key, []byte("msg"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHash(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Hash(nil))
}
