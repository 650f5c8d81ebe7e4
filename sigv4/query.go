package sigv4

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/jayantasamaddar/go-kmsrequest/bytestr"
	"github.com/jayantasamaddar/go-kmsrequest/kvlist"
)

// parseQueryParams splits a raw query string into key/value pairs
// without URL-decoding. Each key runs up to the next '=' and its value
// up to the following '&'; parsing fails when no '=' is left in the
// rest of the query, so a key without '=' followed by a later pair is
// folded into that pair's key ("b&c=2" gives key "b&c"). Values may be
// empty, duplicate keys keep their insertion order, and a trailing
// '&' is permitted. An empty query yields an empty list.
func parseQueryParams(query *bytestr.Str) (*kvlist.List, error) {
	lst := kvlist.New()

	p := query.Bytes()
	for len(p) > 0 {
		eq := bytes.IndexByte(p, '=')
		if eq < 0 {
			return nil, errors.New("Cannot parse query string")
		}

		rest := p[eq+1:]
		amp := bytes.IndexByte(rest, '&')
		var value []byte
		if amp < 0 {
			value = rest
			rest = nil
		} else {
			value = rest[:amp]
			rest = rest[amp+1:]
		}

		k := bytestr.NewFromChars(p[:eq])
		v := bytestr.NewFromChars(value)
		lst.Add(k, v)

		p = rest
	}

	return lst, nil
}
