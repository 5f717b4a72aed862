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

// Package fhash computes the canonical numeric hash used by float-keyed
// mappings.
//
// The algorithm is the one shared by CPython's float, int, and Decimal
// hashing (PEP 456's numeric hash, built around the Mersenne prime
// 2^61 - 1): it is chosen specifically so that a float and an int holding
// the same mathematical value hash identically, which is what lets a query
// of 3.0 find a key stored as the int 3.
package fhash

import "math"

// modulus is the Mersenne prime 2^61 - 1, chosen so that reduction mod m is
// a cheap shift-and-mask instead of a division.
const modulus = (1 << 61) - 1

// Of computes the canonical hash of f, agreeing with [OfInt64] whenever f
// holds an integral value representable exactly as an int64.
func Of(f float64) int64 {
	if math.IsNaN(f) {
		// CPython hashes every NaN object identically to a fixed sentinel;
		// we don't have object identity to fall back on, so any fixed value
		// will do, as long as it isn't a hash the table treats specially.
		return 0
	}

	neg := f < 0
	if neg {
		f = -f
	}

	if math.IsInf(f, 1) {
		return reduceSign(2305843009213693951, neg) // A conventional stand-in for +/-inf.
	}

	// Decompose f = m * 2^e with m in [0.5, 1).
	m, e := math.Frexp(f)

	var h uint64
	for m != 0 {
		// Pull 28 bits at a time out of the mantissa, matching CPython's
		// PyLong digit width, and fold them in mod the Mersenne prime.
		m *= 268435456.0 // 2^28
		e -= 28
		digit, frac := math.Modf(m)
		m = frac

		h = ((h << 28) & modulus) | (h >> (61 - 28))
		h += uint64(digit)
		if h >= modulus {
			h -= modulus
		}
	}

	// Fold the exponent back in; e is a multiple of 28 short of the true
	// binary exponent by this point, so normalize it mod 61 (the period of
	// 2^61-1 under multiplication by 2) before applying it as a rotation.
	e %= 61
	if e < 0 {
		e += 61
	}
	h = ((h << uint(e)) & modulus) | (h >> uint(61-e))

	return reduceSign(h, neg)
}

// OfInt64 computes the canonical hash of an exact integer value, agreeing
// with [Of] for any value representable exactly as a float64.
func OfInt64(n int64) int64 {
	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	h := u % modulus
	return reduceSign(h, neg)
}

func reduceSign(h uint64, neg bool) int64 {
	v := int64(h)
	if neg {
		v = -v
	}
	if v == -1 {
		return -2
	}
	return v
}
