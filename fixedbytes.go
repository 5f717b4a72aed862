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

const bytesSeed fxhash.Seed = 0x243f6a8885a308d3

// fixedBytesStore is the typed specialization for fixed-width byte-string
// keys: the single-byte-unit analog of [fixedTextStore].
type fixedBytesStore struct {
	width   int
	data    []byte // flat, len == width*Len()
	scratch []byte // width+1 scratch buffer, reused across lookups
}

func newFixedBytesStore(width int, records [][]byte) (*fixedBytesStore, error) {
	if width <= 0 {
		return nil, ErrInvalidArgument
	}

	data := make([]byte, 0, width*len(records))
	for _, rec := range records {
		if len(rec) > width {
			return nil, ErrInvalidArgument
		}
		data = append(data, rec...)
		for i := len(rec); i < width; i++ {
			data = append(data, 0)
		}
	}

	return &fixedBytesStore{width: width, data: data, scratch: make([]byte, width+1)}, nil
}

func (s *fixedBytesStore) Len() int64 { return int64(len(s.data) / s.width) }

func (s *fixedBytesStore) record(i int64) []byte {
	w := int64(s.width)
	return s.data[i*w : i*w+w]
}

func (s *fixedBytesStore) At(i int64) string {
	r := s.record(i)
	n := 0
	for n < len(r) && r[n] != 0 {
		n++
	}
	return string(r[:n])
}

func (s *fixedBytesStore) Hash(k string) int64 {
	n := copy(s.scratch[:s.width], k)
	return bytesSeed.Bytes(s.scratch[:n]).Int64()
}

func (s *fixedBytesStore) Equal(a, b string) bool { return a == b }
func (s *fixedBytesStore) Growable() bool         { return false }
func (s *fixedBytesStore) Append(string) int64    { panic(errNotGrowable) }
func (s *fixedBytesStore) Truncate(int64)         { panic(errNotGrowable) }

// CoerceText reports whether q fits in this store's element width.
func (s *fixedBytesStore) CoerceText(q string) (string, bool) {
	if len(q) > s.width {
		return "", false
	}
	return q, true
}
