// Package sigv4 builds and signs HTTP/1.1 requests with the AWS
// Signature Version 4 scheme. A Request is a mutable builder: callers
// set credentials, scope and date, append header fields and payload
// bytes, then read the derived artifacts (canonical request, string
// to sign, signing key, signature and the full signed request text).
// Derivations are pure functions of the builder state.
//
// Failure is sticky: once any mutator or derivation fails, every
// later call returns the first error and the state never changes
// again. The only recovery is to build a new Request.
package sigv4

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jayantasamaddar/go-kmsrequest/auth"
	"github.com/jayantasamaddar/go-kmsrequest/bytestr"
	"github.com/jayantasamaddar/go-kmsrequest/kvlist"
	"github.com/jayantasamaddar/go-kmsrequest/utils"
)

// Timestamp is a broken-down UTC time. Mon is numbered from 0
// (January) through 11; Year is the full calendar year.
type Timestamp struct {
	Year int
	Mon  int
	Mday int
	Hour int
	Min  int
	Sec  int
}

// NewTimestamp converts t to a broken-down UTC Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp{
		Year: t.Year(),
		Mon:  int(t.Month()) - 1,
		Mday: t.Day(),
		Hour: t.Hour(),
		Min:  t.Minute(),
		Sec:  t.Second(),
	}
}

func (ts Timestamp) valid() bool {
	// Sec admits 60 for leap seconds
	return ts.Sec <= 60 && ts.Min <= 59 && ts.Hour <= 23 &&
		ts.Mday >= 1 && ts.Mday <= 31 && ts.Mon >= 0 && ts.Mon <= 11 &&
		ts.Year >= 0
}

// DateString formats the timestamp as YYYYMMDD.
func (ts Timestamp) DateString() string {
	return fmt.Sprintf("%04d%02d%02d", ts.Year, ts.Mon+1, ts.Mday)
}

// DateTimeString formats the timestamp as YYYYMMDDTHHMMSSZ.
func (ts Timestamp) DateTimeString() string {
	return fmt.Sprintf("%sT%02d%02d%02dZ", ts.DateString(), ts.Hour, ts.Min, ts.Sec)
}

// Request is the mutable builder for one signed request.
type Request struct {
	err error

	method      *bytestr.Str
	path        *bytestr.Str
	query       *bytestr.Str
	queryParams *kvlist.List

	headers *kvlist.List
	payload *bytestr.Str

	region      *bytestr.Str
	service     *bytestr.Str
	accessKeyID *bytestr.Str
	secretKey   *bytestr.Str

	date     *bytestr.Str
	datetime *bytestr.Str

	autoContentLength bool
	crypto            auth.Crypto
}

// New constructs a Request from a method and a raw path-and-query
// string, split on the first '?'. The query, if present, is parsed
// immediately; a malformed query leaves the Request constructed but
// failed, so the error can still be read with Err.
func New(method, pathAndQuery string) *Request {
	r := &Request{
		method:            bytestr.NewFromString(method),
		headers:           kvlist.New(),
		payload:           bytestr.New(),
		region:            bytestr.New(),
		service:           bytestr.New(),
		accessKeyID:       bytestr.New(),
		secretKey:         bytestr.New(),
		date:              bytestr.New(),
		datetime:          bytestr.New(),
		autoContentLength: true,
		crypto:            utils.Crypto{},
	}

	if q := strings.IndexByte(pathAndQuery, '?'); q >= 0 {
		r.path = bytestr.NewFromString(pathAndQuery[:q])
		r.query = bytestr.NewFromString(pathAndQuery[q+1:])
	} else {
		r.path = bytestr.NewFromString(pathAndQuery)
		r.query = bytestr.New()
	}

	params, err := parseQueryParams(r.query)
	if err != nil {
		r.fail(err)
		r.queryParams = kvlist.New()
	} else {
		r.queryParams = params
	}

	return r
}

// fail records the first error; later failures never overwrite it.
func (r *Request) fail(err error) error {
	if r.err == nil {
		r.err = err
	}
	return r.err
}

// Err returns the sticky failure, or nil.
func (r *Request) Err() error {
	return r.err
}

// SetCrypto replaces the crypto provider. The default is the
// standard-library backend.
func (r *Request) SetCrypto(c auth.Crypto) {
	r.crypto = c
}

// SetAutoContentLength controls whether a Content-Length header is
// synthesized at canonicalization time for a non-empty payload when
// none is present. It defaults to on.
func (r *Request) SetAutoContentLength(on bool) {
	r.autoContentLength = on
}

// SetRegion replaces the signing-scope region.
func (r *Request) SetRegion(region string) error {
	if r.err != nil {
		return r.err
	}
	r.region = bytestr.NewFromString(region)
	return nil
}

// SetService replaces the signing-scope service name.
func (r *Request) SetService(service string) error {
	if r.err != nil {
		return r.err
	}
	r.service = bytestr.NewFromString(service)
	return nil
}

// SetAccessKeyID replaces the access key id used in the Credential
// scope of the Authorization header.
func (r *Request) SetAccessKeyID(akid string) error {
	if r.err != nil {
		return r.err
	}
	r.accessKeyID = bytestr.NewFromString(akid)
	return nil
}

// SetSecretKey replaces the secret key the signing key is derived
// from.
func (r *Request) SetSecretKey(key string) error {
	if r.err != nil {
		return r.err
	}
	r.secretKey = bytestr.NewFromString(key)
	return nil
}

// SetCredentials applies a loaded Config to the request.
func (r *Request) SetCredentials(cfg *Config) error {
	if r.err != nil {
		return r.err
	}
	r.accessKeyID = bytestr.NewFromString(cfg.AccessKeyID)
	r.secretKey = bytestr.NewFromString(cfg.SecretKey)
	r.region = bytestr.NewFromString(cfg.Region)
	return nil
}

// SetDate validates ts and formats the request date (YYYYMMDD) and
// datetime (YYYYMMDDTHHMMSSZ).
func (r *Request) SetDate(ts Timestamp) error {
	if r.err != nil {
		return r.err
	}
	if !ts.valid() {
		return r.fail(errors.New("Invalid tm struct"))
	}
	r.date = bytestr.NewFromString(ts.DateString())
	r.datetime = bytestr.NewFromString(ts.DateTimeString())
	return nil
}

// AddHeaderField appends a header. Adding a header named X-Amz-Date
// (case-insensitively) also sets the request datetime from the header
// value, and the date from the value's prefix up to the first 'T'
// (the whole value when there is no 'T').
func (r *Request) AddHeaderField(name, value string) error {
	if r.err != nil {
		return r.err
	}

	k := bytestr.NewFromString(name)
	v := bytestr.NewFromString(value)
	r.headers.Add(k, v)

	if asciiEqualFoldString(name, "X-Amz-Date") {
		r.datetime = v.Dup()
		if t := strings.IndexByte(value, 'T'); t >= 0 {
			r.date = bytestr.NewFromString(value[:t])
		} else {
			r.date = v.Dup()
		}
	}

	return nil
}

// AppendHeaderFieldValue appends bytes to the value of the most
// recently added header field.
func (r *Request) AppendHeaderFieldValue(b []byte) error {
	if r.err != nil {
		return r.err
	}
	if r.headers.Len() == 0 {
		return r.fail(errors.New("No header field to append to"))
	}
	r.headers.At(r.headers.Len() - 1).Value.AppendChars(b)
	return nil
}

// AppendPayload appends bytes to the request body.
func (r *Request) AppendPayload(b []byte) error {
	if r.err != nil {
		return r.err
	}
	r.payload.AppendChars(b)
	return nil
}

func asciiEqualFoldString(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca&0x80 == 0 && ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb&0x80 == 0 && cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
