// Package kvlist implements the ordered key/value pair list used for
// query parameters and header fields. Entries keep their insertion
// order until explicitly sorted, and the sort is stable so that
// entries with equal keys keep their relative order.
package kvlist

import (
	"bytes"
	"sort"

	"github.com/jayantasamaddar/go-kmsrequest/bytestr"
)

// KV is an owned key/value pair.
type KV struct {
	Key   *bytestr.Str
	Value *bytestr.Str
}

// List is an ordered sequence of KV pairs. Lookup is linear; the
// lists involved in request signing are tiny.
type List struct {
	kvs []KV
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.kvs)
}

// At returns the entry at index i.
func (l *List) At(i int) KV {
	return l.kvs[i]
}

// Add deep-copies key and value into a new trailing entry.
func (l *List) Add(key, value *bytestr.Str) {
	l.kvs = append(l.kvs, KV{Key: key.Dup(), Value: value.Dup()})
}

// asciiEqualFold reports whether a and b are equal under ASCII-only
// case folding. High-bit bytes must match exactly.
func asciiEqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
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

// Find returns the first entry whose key case-insensitively equals
// name, or nil if there is none.
func (l *List) Find(name string) *KV {
	for i := range l.kvs {
		if asciiEqualFold(l.kvs[i].Key.Bytes(), []byte(name)) {
			return &l.kvs[i]
		}
	}
	return nil
}

// Del removes every entry whose key exactly equals name, preserving
// the order of the remaining entries.
func (l *List) Del(name string) {
	kept := l.kvs[:0]
	for _, kv := range l.kvs {
		if kv.Key.String() != name {
			kept = append(kept, kv)
		}
	}
	l.kvs = kept
}

// Dup returns a deep copy.
func (l *List) Dup() *List {
	dup := &List{kvs: make([]KV, 0, len(l.kvs))}
	for _, kv := range l.kvs {
		dup.Add(kv.Key, kv.Value)
	}
	return dup
}

// Sorted returns a new list sorted by key with a byte-wise ASCII
// compare. The sort is stable: entries with equal keys keep their
// insertion order.
func (l *List) Sorted() *List {
	dup := l.Dup()
	sort.SliceStable(dup.kvs, func(i, j int) bool {
		return bytes.Compare(dup.kvs[i].Key.Bytes(), dup.kvs[j].Key.Bytes()) < 0
	})
	return dup
}
