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

import (
	"math"

	"github.com/brandtbucher/automap-go/internal/fhash"
)

// Float16 is an IEEE-754 half-precision float, stored as its 16-bit bit
// pattern. Go has no native half-precision type, so typed mappings keyed
// on this dtype use Float16 directly rather than joining the [Float]
// constraint.
type Float16 uint16

// Float64 decodes f to a float64.
func (f Float16) Float64() float64 {
	sign := uint32(f>>15) & 0x1
	exp := uint32(f>>10) & 0x1f
	frac := uint32(f) & 0x3ff

	var bits32 uint32
	switch exp {
	case 0:
		if frac == 0 {
			bits32 = sign << 31
		} else {
			// Subnormal half -> normalize into a normal float32.
			e := 0
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			frac &= 0x3ff
			exp32 := uint32(127 - 15 + e + 1)
			bits32 = sign<<31 | exp32<<23 | frac<<13
		}
	case 0x1f:
		bits32 = sign<<31 | 0xff<<23 | frac<<13
	default:
		exp32 := exp - 15 + 127
		bits32 = sign<<31 | exp32<<23 | frac<<13
	}
	return float64(math.Float32frombits(bits32))
}

// Float16FromFloat64 rounds f to the nearest Float16, per round-to-nearest-
// even, saturating to +/-Inf on overflow.
func Float16FromFloat64(f float64) Float16 {
	bits32 := math.Float32bits(float32(f))
	sign := (bits32 >> 31) & 0x1
	exp := int32((bits32>>23)&0xff) - 127 + 15
	frac := bits32 & 0x7fffff

	var half uint32
	switch {
	case math.IsNaN(f):
		half = 0x7e00
	case exp >= 0x1f:
		half = 0x7c00 // +Inf magnitude; sign applied below.
	case exp <= 0:
		half = 0 // Flushes subnormals and underflow to zero.
	default:
		half = uint32(exp)<<10 | frac>>13
		// Round to nearest, ties to even; a carry out of the fraction
		// bumps the exponent, up to +Inf.
		if rem := frac & 0x1fff; rem > 0x1000 || (rem == 0x1000 && half&1 == 1) {
			half++
		}
	}
	return Float16(sign<<15 | half)
}

// float16Store is the typed specialization for [Float16] keys. It is not
// expressed over the [Float] constraint because Float16 is a bit-pattern
// type, not an arithmetic one; its hash must decode to a float64 first so
// that it agrees with [floatStore] and [signedStore] on shared values.
type float16Store struct {
	data []Float16
}

func newFloat16Store(data []Float16) *float16Store { return &float16Store{data: data} }

func (s *float16Store) Len() int64        { return int64(len(s.data)) }
func (s *float16Store) At(i int64) Float16 { return s.data[i] }

func (s *float16Store) Hash(k Float16) int64 {
	return fhash.Of(k.Float64())
}

func (s *float16Store) Equal(a, b Float16) bool { return a == b }
func (s *float16Store) Growable() bool          { return false }
func (s *float16Store) Append(Float16) int64    { panic(errNotGrowable) }
func (s *float16Store) Truncate(int64)          { panic(errNotGrowable) }

// CoerceInt64 implements [coercer].
func (s *float16Store) CoerceInt64(q int64) (Float16, bool) {
	return s.CoerceFloat64(float64(q))
}

// CoerceFloat64 implements [coercer], rejecting values that don't
// round-trip through half precision exactly.
func (s *float16Store) CoerceFloat64(q float64) (Float16, bool) {
	k := Float16FromFloat64(q)
	if k.Float64() != q {
		return k, false
	}
	return k, true
}
