package sigv4

import "github.com/jayantasamaddar/go-kmsrequest/bytestr"

// SigningKey derives the 32-byte signing key:
//
//	k_secret  = "AWS4" || secret_key
//	k_date    = HMAC_SHA256(k_secret,  date)
//	k_region  = HMAC_SHA256(k_date,    region)
//	k_service = HMAC_SHA256(k_region,  service)
//	k_signing = HMAC_SHA256(k_service, "aws4_request")
func (r *Request) SigningKey() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	key := make([]byte, 0, 4+r.secretKey.Len())
	key = append(key, "AWS4"...)
	key = append(key, r.secretKey.Bytes()...)

	for _, msg := range [][]byte{
		r.date.Bytes(),
		r.region.Bytes(),
		r.service.Bytes(),
		[]byte("aws4_request"),
	} {
		sum, err := r.crypto.HMACSHA256(key, msg)
		if err != nil {
			return nil, r.fail(err)
		}
		key = append(key[:0], sum[:]...)
	}

	return key, nil
}

// Signature derives the full Authorization header value:
//
//	AWS4-HMAC-SHA256 Credential={akid}/{scope}, SignedHeaders={names}, Signature={hex}
func (r *Request) Signature() (string, error) {
	sts, err := r.StringToSign()
	if err != nil {
		return "", err
	}
	key, err := r.SigningKey()
	if err != nil {
		return "", err
	}
	sig, err := r.crypto.HMACSHA256(key, []byte(sts))
	if err != nil {
		return "", r.fail(err)
	}

	out := bytestr.New()
	out.AppendString("AWS4-HMAC-SHA256 Credential=")
	out.Append(r.accessKeyID)
	out.AppendChar('/')
	r.appendCredentialScope(out)
	out.AppendString(", SignedHeaders=")
	appendSignedHeaders(canonicalHeaderList(r.headerList()), out)
	out.AppendString(", Signature=")
	out.AppendHex(sig[:])

	return out.String(), nil
}
