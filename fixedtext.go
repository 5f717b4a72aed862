// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package automap

import "github.com/brandtbucher/automap-go/internal/fxhash"

// textSeed is a fixed hash seed shared by every fixed-width text store.
// It doesn't need to vary per-store: unlike a DoS-hardened general
// mapping, this one deliberately doesn't defend against adversarial
// inputs.
const textSeed fxhash.Seed = 0x6a09e667f3bcc909

// fixedTextStore is the typed specialization for fixed-width Unicode
// keys: every stored key occupies exactly width code points, null-padded.
// It is immutable and only ever constructed from a typed array.
type fixedTextStore struct {
	width   int
	data    []rune // flat, len == width*Len()
	scratch []rune // width+1 scratch buffer, reused across lookups
}

// newFixedTextStore builds a fixed-width text store. Any record longer
// than width is rejected.
func newFixedTextStore(width int, records []string) (*fixedTextStore, error) {
	if width <= 0 {
		return nil, ErrInvalidArgument
	}

	data := make([]rune, 0, width*len(records))
	for _, rec := range records {
		n := 0
		for _, r := range rec {
			if n == width {
				return nil, ErrInvalidArgument
			}
			data = append(data, r)
			n++
		}
		for ; n < width; n++ {
			data = append(data, 0)
		}
	}

	return &fixedTextStore{width: width, data: data, scratch: make([]rune, width+1)}, nil
}

func (s *fixedTextStore) Len() int64 { return int64(len(s.data) / s.width) }

func (s *fixedTextStore) record(i int64) []rune {
	w := int64(s.width)
	return s.data[i*w : i*w+w]
}

// At decodes the record at i, trimming at the first null code point (or
// the full width, if none is present), per the spec's implicit-
// termination rule for fixed-width text.
func (s *fixedTextStore) At(i int64) string {
	r := s.record(i)
	n := 0
	for n < len(r) && r[n] != 0 {
		n++
	}
	return string(r[:n])
}

// Hash copies up to width code points of k into the store's reusable
// scratch buffer and hashes that prefix. A query longer than width hashes
// as though truncated to width; this is always safe because [Equal]
// compares the untruncated query against the (likewise untruncated, since
// it can never exceed width) stored string, so an over-long query can
// never falsely report a hit.
func (s *fixedTextStore) Hash(k string) int64 {
	n := 0
	for _, r := range k {
		if n == s.width {
			break
		}
		s.scratch[n] = r
		n++
	}
	return textSeed.Runes(s.scratch[:n]).Int64()
}

func (s *fixedTextStore) Equal(a, b string) bool { return a == b }
func (s *fixedTextStore) Growable() bool         { return false }
func (s *fixedTextStore) Append(string) int64    { panic(errNotGrowable) }
func (s *fixedTextStore) Truncate(int64)         { panic(errNotGrowable) }

// CoerceText reports whether q fits in this store's element width. It is
// not part of the generic [coercer] interface, since it is keyed on
// string rather than on a cross-dtype numeric query; it implements
// [textCoercer], through which mapCore.queryText reaches it.
func (s *fixedTextStore) CoerceText(q string) (string, bool) {
	n := 0
	for range q {
		n++
		if n > s.width {
			return "", false
		}
	}
	return q, true
}
