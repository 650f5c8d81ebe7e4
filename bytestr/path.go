package bytestr

import "bytes"

// PathNormalized returns a new Str holding the normalized form of the
// URI path in s: "." segments are dropped, ".." segments pop their
// parent (never rising above the root), and runs of slashes collapse
// to one. An absolute input stays absolute, a trailing slash is kept,
// and an empty result becomes "/".
func PathNormalized(s *Str) *Str {
	if s.Len() == 0 {
		return NewFromString("/")
	}

	in := s.Bytes()
	absolute := in[0] == '/'

	var stack [][]byte
	for _, seg := range bytes.Split(in, []byte{'/'}) {
		switch {
		case len(seg) == 0 || bytes.Equal(seg, []byte(".")):
			// skip
		case bytes.Equal(seg, []byte("..")):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}

	out := New()
	if absolute {
		out.AppendChar('/')
	}
	for i, seg := range stack {
		if i > 0 {
			out.AppendChar('/')
		}
		out.AppendChars(seg)
	}
	if in[len(in)-1] == '/' && out.Len() > 0 && out.Bytes()[out.Len()-1] != '/' {
		out.AppendChar('/')
	}
	if out.Len() == 0 {
		out.AppendChar('/')
	}

	return out
}
