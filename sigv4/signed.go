package sigv4

import "github.com/jayantasamaddar/go-kmsrequest/bytestr"

// SignedRequest serializes the full signed HTTP/1.1 request text with
// LF-terminated lines: the request line, every header field in
// insertion order (including a synthesized Content-Length), the
// Authorization header, then a blank line and the payload when the
// payload is non-empty. There is no trailing newline after the
// payload.
func (r *Request) SignedRequest() (string, error) {
	signature, err := r.Signature()
	if err != nil {
		return "", err
	}

	out := bytestr.New()
	out.Append(r.method)
	out.AppendChar(' ')
	out.Append(r.path)
	if r.query.Len() > 0 {
		out.AppendChar('?')
		out.Append(r.query)
	}
	out.AppendString(" HTTP/1.1")
	out.AppendNewline()

	lst := r.headerList()
	for i := 0; i < lst.Len(); i++ {
		kv := lst.At(i)
		out.Append(kv.Key)
		out.AppendChar(':')
		out.Append(kv.Value)
		out.AppendNewline()
	}

	out.AppendString("Authorization: ")
	out.AppendString(signature)
	out.AppendNewline()

	if r.payload.Len() > 0 {
		out.AppendNewline()
		out.Append(r.payload)
	}

	return out.String(), nil
}
