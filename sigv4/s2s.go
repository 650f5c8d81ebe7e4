package sigv4

import "github.com/jayantasamaddar/go-kmsrequest/bytestr"

// StringToSign derives the four-line string that feeds the final
// HMAC:
//
//	AWS4-HMAC-SHA256\n
//	{datetime}\n
//	{date}/{region}/{service}/aws4_request\n
//	HEX(SHA256(canonical_request))
func (r *Request) StringToSign() (string, error) {
	creq, err := r.CanonicalRequest()
	if err != nil {
		return "", err
	}

	out := bytestr.New()
	out.AppendString("AWS4-HMAC-SHA256")
	out.AppendNewline()
	out.Append(r.datetime)
	out.AppendNewline()
	r.appendCredentialScope(out)
	out.AppendNewline()
	if err := out.AppendHashed(bytestr.NewFromString(creq), r.crypto); err != nil {
		return "", r.fail(err)
	}

	return out.String(), nil
}

// appendCredentialScope appends {date}/{region}/{service}/aws4_request.
func (r *Request) appendCredentialScope(out *bytestr.Str) {
	out.Append(r.date)
	out.AppendChar('/')
	out.Append(r.region)
	out.AppendChar('/')
	out.Append(r.service)
	out.AppendChar('/')
	out.AppendString("aws4_request")
}
