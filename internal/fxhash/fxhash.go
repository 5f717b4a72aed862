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

// Package fxhash computes a cheap, non-cryptographic hash for byte and
// rune material, used wherever the mapping stores fixed-width text or byte
// strings rather than a type with a canonical numeric hash.
package fxhash

import "math/bits"

const (
	rotate = 5
	key    = 0x517cc1b727220a95
)

// Seed is a hash seed, mixed into every hash computed against it. The
// fixed-width text stores share one constant seed and the fixed-width byte
// stores share another.
type Seed uint64

// Hash is a hash accumulator; call [Seed.Bytes] to finish.
type Hash uint64

// Bytes hashes b, starting from seed s.
func (s Seed) Bytes(b []byte) Hash {
	h := Hash(s)
	for len(b) >= 8 {
		h = h.word(
			uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
				uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56,
		)
		b = b[8:]
	}

	var last uint64
	for i, c := range b {
		last |= uint64(c) << (8 * i)
	}
	return h.word(last).word(uint64(len(b)))
}

// Runes hashes r, starting from seed s, folding in one code point per word
// and then the rune count. Its result is not the same as [Seed.Bytes] over
// r's UTF-32 encoding, which packs eight bytes per word.
func (s Seed) Runes(r []rune) Hash {
	h := Hash(s)
	for _, c := range r {
		h = h.word(uint64(uint32(c)))
	}
	return h.word(uint64(len(r)))
}

// word folds a single 64-bit word into the accumulator.
//
// See https://docs.rs/fxhash.
func (h Hash) word(n uint64) Hash {
	hi, lo := bits.Mul64(bits.RotateLeft64(uint64(h), rotate)^n, key)
	return Hash(lo ^ hi)
}

// Int64 reduces the accumulated hash to the signed 64-bit range used by the
// table, remapping the table's empty-slot sentinel -1 to -2.
func (h Hash) Int64() int64 {
	v := int64(h)
	if v == -1 {
		return -2
	}
	return v
}
