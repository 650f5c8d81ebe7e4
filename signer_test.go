package kmsrequest

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayantasamaddar/go-kmsrequest/sigv4"
)

func fixedNow(t *testing.T) {
	t.Helper()
	parsed, err := time.Parse("20060102T150405Z", "20150830T123600Z")
	require.NoError(t, err)
	old := now
	now = func() time.Time { return parsed }
	t.Cleanup(func() { now = old })
}

func TestNewSignerWithNoService(t *testing.T) {
	_, err := NewSigner("", &sigv4.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ERROR_MANDATORY_FIELD_NOT_SPECIFIED)
}

// the signed GET / request must match the corpus get-vanilla value
func TestSignHTTPRequest(t *testing.T) {
	fixedNow(t)

	signer, err := NewSigner("service", &sigv4.Config{
		AccessKeyID: "AKIDEXAMPLE",
		SecretKey:   "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		Region:      "us-east-1",
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://example.amazonaws.com/", nil)
	require.NoError(t, err)

	require.NoError(t, signer.SignHTTPRequest(req))

	assert.Equal(t, "20150830T123600Z", req.Header.Get("X-Amz-Date"))
	assert.Equal(t,
		"AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20150830/us-east-1/service/aws4_request, "+
			"SignedHeaders=host;x-amz-date, "+
			"Signature=5fa00fa31553b73ebf1942676e86291e8372ff2a2260956d9b8aae1d763fbf31",
		req.Header.Get("Authorization"))
}

func TestSignHTTPRequestWithBody(t *testing.T) {
	fixedNow(t)

	signer, err := NewSigner("service", &sigv4.Config{
		AccessKeyID: "AKIDEXAMPLE",
		SecretKey:   "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		Region:      "us-east-1",
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "https://example.amazonaws.com/",
		strings.NewReader("Param1=value1"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.NoError(t, signer.SignHTTPRequest(req))

	authz := req.Header.Get("Authorization")
	assert.Contains(t, authz, "SignedHeaders=content-length;content-type;host;x-amz-date,")

	// the body is still readable after signing
	body := make([]byte, 13)
	n, _ := req.Body.Read(body)
	assert.Equal(t, "Param1=value1", string(body[:n]))
}

func TestSignHTTPRequestDeterministic(t *testing.T) {
	fixedNow(t)

	signer, err := NewSigner("service", &sigv4.Config{
		AccessKeyID: "AKIDEXAMPLE",
		SecretKey:   "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		Region:      "us-east-1",
	})
	require.NoError(t, err)

	sign := func() string {
		req, err := http.NewRequest(http.MethodGet, "https://example.amazonaws.com/?b=2&a=1", nil)
		require.NoError(t, err)
		req.Header.Set("My-Header1", "value1")
		req.Header.Set("My-Header2", "value2")
		require.NoError(t, signer.SignHTTPRequest(req))
		return req.Header.Get("Authorization")
	}

	assert.Equal(t, sign(), sign())
}
