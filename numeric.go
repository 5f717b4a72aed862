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

// Signed is the set of signed integer dtypes a typed mapping can be keyed
// on.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer dtypes a typed mapping can be
// keyed on.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of (IEEE-754 single and double precision) float
// dtypes a typed mapping can be keyed on. See [Float16] for the
// half-precision specialization, which is not an arithmetic Go type and
// so cannot join this constraint.
type Float interface {
	~float32 | ~float64
}

// signedStore is the typed specialization for signed-integer keys. Its
// stored hash is the value itself, per the spec's key-coercion rules for
// the signed-integer dtype; for values below 2^61-1 in magnitude this
// equals the internal/fhash hash [floatStore] uses. A floating point
// query that holds an exact integer (3.0) reaches a key stored as that
// same int (3) through [signedStore.CoerceFloat64].
type signedStore[K Signed] struct {
	data []K
}

// newSignedStore builds an immutable signed-integer key store. data is
// shared by reference, never copied or mutated; callers must not mutate
// it for the lifetime of the mapping (see the spec's immutable-typed-
// array-store contract).
func newSignedStore[K Signed](data []K) *signedStore[K] { return &signedStore[K]{data: data} }

func (s *signedStore[K]) Len() int64   { return int64(len(s.data)) }
func (s *signedStore[K]) At(i int64) K { return s.data[i] }

func (s *signedStore[K]) Hash(k K) int64 {
	h := int64(k)
	if h == -1 {
		return -2
	}
	return h
}

func (s *signedStore[K]) Equal(a, b K) bool { return a == b }
func (s *signedStore[K]) Growable() bool    { return false }
func (s *signedStore[K]) Append(K) int64    { panic(errNotGrowable) }
func (s *signedStore[K]) Truncate(int64)    { panic(errNotGrowable) }

// CoerceInt64 implements [coercer]. It rejects a query that overflows K.
func (s *signedStore[K]) CoerceInt64(q int64) (K, bool) {
	k := K(q)
	if int64(k) != q {
		return k, false
	}
	return k, true
}

// CoerceFloat64 implements [coercer]. It rejects non-integral floats and
// anything that overflows K, per the spec's "accept any float with
// floor(x) == x" rule for signed-integer stores.
func (s *signedStore[K]) CoerceFloat64(q float64) (K, bool) {
	var zero K
	if math.Floor(q) != q {
		return zero, false
	}
	qi := int64(q)
	if float64(qi) != q {
		return zero, false
	}
	return s.CoerceInt64(qi)
}

// unsignedStore is the typed specialization for unsigned-integer keys.
// Its stored hash is the value shifted right one bit, so it always fits
// the signed hash range without needing the sentinel remap (the shift
// guarantees the result is never negative, hence never -1).
type unsignedStore[K Unsigned] struct {
	data []K
}

func newUnsignedStore[K Unsigned](data []K) *unsignedStore[K] { return &unsignedStore[K]{data: data} }

func (s *unsignedStore[K]) Len() int64   { return int64(len(s.data)) }
func (s *unsignedStore[K]) At(i int64) K { return s.data[i] }

func (s *unsignedStore[K]) Hash(k K) int64 {
	return int64(uint64(k) >> 1)
}

func (s *unsignedStore[K]) Equal(a, b K) bool { return a == b }
func (s *unsignedStore[K]) Growable() bool    { return false }
func (s *unsignedStore[K]) Append(K) int64    { panic(errNotGrowable) }
func (s *unsignedStore[K]) Truncate(int64)    { panic(errNotGrowable) }

// CoerceInt64 implements [coercer]. Negative queries and anything that
// overflows K are rejected.
func (s *unsignedStore[K]) CoerceInt64(q int64) (K, bool) {
	var zero K
	if q < 0 {
		return zero, false
	}
	k := K(q)
	if int64(k) != q {
		return zero, false
	}
	return k, true
}

// CoerceFloat64 implements [coercer], accepting non-negative integral
// floats only.
func (s *unsignedStore[K]) CoerceFloat64(q float64) (K, bool) {
	var zero K
	if q < 0 || math.Floor(q) != q {
		return zero, false
	}
	qi := int64(q)
	if float64(qi) != q {
		return zero, false
	}
	return s.CoerceInt64(qi)
}

// floatStore is the typed specialization for float32/float64 keys. Its
// hash is the canonical numeric hash from internal/fhash, which agrees
// with [signedStore.Hash] on shared integral values below 2^61-1 in
// magnitude. It does not agree with [unsignedStore.Hash], which halves
// the value.
type floatStore[K Float] struct {
	data []K
}

func newFloatStore[K Float](data []K) *floatStore[K] { return &floatStore[K]{data: data} }

func (s *floatStore[K]) Len() int64   { return int64(len(s.data)) }
func (s *floatStore[K]) At(i int64) K { return s.data[i] }

func (s *floatStore[K]) Hash(k K) int64 {
	return fhash.Of(float64(k))
}

func (s *floatStore[K]) Equal(a, b K) bool { return a == b }
func (s *floatStore[K]) Growable() bool    { return false }
func (s *floatStore[K]) Append(K) int64    { panic(errNotGrowable) }
func (s *floatStore[K]) Truncate(int64)    { panic(errNotGrowable) }

// CoerceInt64 implements [coercer]; any int64 is accepted, rounded to the
// nearest representable value of K and validated by round-tripping.
func (s *floatStore[K]) CoerceInt64(q int64) (K, bool) {
	k := K(float64(q))
	if int64(float64(k)) != q {
		return k, false
	}
	return k, true
}

// CoerceFloat64 implements [coercer]; every float64 is accepted, possibly
// with precision loss when K is float32.
func (s *floatStore[K]) CoerceFloat64(q float64) (K, bool) {
	return K(q), true
}
