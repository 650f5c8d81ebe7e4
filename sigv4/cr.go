package sigv4

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/jayantasamaddar/go-kmsrequest/bytestr"
	"github.com/jayantasamaddar/go-kmsrequest/kvlist"
)

// headerList returns the request's header fields in insertion order,
// with a Content-Length entry synthesized at the end when the payload
// is non-empty, auto content length is on, and no Content-Length
// header is already present.
func (r *Request) headerList() *kvlist.List {
	lst := r.headers.Dup()
	if r.payload.Len() > 0 && r.autoContentLength && lst.Find("Content-Length") == nil {
		lst.Add(
			bytestr.NewFromString("Content-Length"),
			bytestr.NewFromString(strconv.Itoa(r.payload.Len())),
		)
	}
	return lst
}

// canonicalHeaderList lowercases the header names of lst, then
// stable-sorts by the lowercased name so that duplicates keep their
// insertion order.
func canonicalHeaderList(lst *kvlist.List) *kvlist.List {
	lowered := kvlist.New()
	for i := 0; i < lst.Len(); i++ {
		kv := lst.At(i)
		name := bytestr.New()
		name.AppendLowercase(kv.Key)
		lowered.Add(name, kv.Value)
	}
	return lowered.Sorted()
}

func appendCanonicalQuery(params *kvlist.List, str *bytestr.Str) {
	if params.Len() == 0 {
		return
	}

	sorted := params.Sorted()
	for i := 0; i < sorted.Len(); i++ {
		if i > 0 {
			str.AppendChar('&')
		}
		kv := sorted.At(i)
		str.AppendEscaped(kv.Key, true)
		str.AppendChar('=')
		str.AppendEscaped(kv.Value, true)
	}
}

func appendCanonicalHeaders(lst *kvlist.List, str *bytestr.Str) {
	for i := 0; i < lst.Len(); i++ {
		kv := lst.At(i)
		str.Append(kv.Key)
		str.AppendChar(':')
		str.AppendStripped(kv.Value)
		str.AppendNewline()
	}
}

func appendSignedHeaders(lst *kvlist.List, str *bytestr.Str) {
	for i := 0; i < lst.Len(); i++ {
		if i > 0 {
			str.AppendChar(';')
		}
		str.Append(lst.At(i).Key)
	}
}

// CanonicalRequest derives the canonical request text:
//
//	METHOD\n
//	CANONICAL_URI\n
//	CANONICAL_QUERY\n
//	CANONICAL_HEADERS\n
//	SIGNED_HEADERS\n
//	HEX(SHA256(PAYLOAD))
//
// At least one header field (the Host header) must have been added.
func (r *Request) CanonicalRequest() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.headers.Len() == 0 {
		return "", r.fail(errors.New("At least one header field is required"))
	}

	lst := canonicalHeaderList(r.headerList())

	canonical := bytestr.New()
	canonical.Append(r.method)
	canonical.AppendNewline()
	canonical.AppendEscaped(bytestr.PathNormalized(r.path), false)
	canonical.AppendNewline()
	appendCanonicalQuery(r.queryParams, canonical)
	canonical.AppendNewline()
	appendCanonicalHeaders(lst, canonical)
	canonical.AppendNewline()
	appendSignedHeaders(lst, canonical)
	canonical.AppendNewline()
	if err := canonical.AppendHashed(r.payload, r.crypto); err != nil {
		return "", r.fail(err)
	}

	return canonical.String(), nil
}
