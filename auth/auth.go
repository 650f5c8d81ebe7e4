package auth

import "net/http"

// Signer interface to be implemented by any signing mechanism.
type Signer interface {
	SignHTTPRequest(req *http.Request) error
}

// Crypto is the provider of the two hash primitives the signing
// algorithm consumes. Implementations must be deterministic; an error
// indicates resource exhaustion in the underlying provider, not bad
// input.
type Crypto interface {
	SHA256(data []byte) ([32]byte, error)
	HMACSHA256(key, data []byte) ([32]byte, error)
}
