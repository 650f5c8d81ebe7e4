package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Crypto is the default crypto provider, backed by the standard
// library SHA-256 and HMAC-SHA256 implementations.
type Crypto struct{}

func (Crypto) SHA256(data []byte) ([32]byte, error) {
	return sha256.Sum256(data), nil
}

func (Crypto) HMACSHA256(key, data []byte) ([32]byte, error) {
	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write(data); err != nil {
		return [32]byte{}, err
	}
	var out [32]byte
	copy(out[:], mac.Sum(nil))
	return out, nil
}

// Hash returns the lowercase-hex SHA-256 of b.
func Hash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
