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

import "hash/maphash"

// store is the key-store contract every mapping specialization satisfies:
// a source of canonical keys in insertion order, together with the hash
// and equality it wants the table to use for them.
//
// Only the object store is Growable; every typed specialization sizes
// itself once, at construction, from an immutable backing buffer.
type store[K comparable] interface {
	Len() int64
	At(i int64) K
	Hash(k K) int64
	Equal(a, b K) bool

	Growable() bool
	// Append and Truncate panic on a store with Growable() == false; callers
	// must check first.
	Append(k K) int64
	Truncate(n int64)
}

// coercer is implemented by typed stores whose key type can be reached
// from a query expressed in a different concrete Go type, mirroring the
// spec's key-coercion component (e.g. a float64 query of 3.0 reaching an
// int32-keyed store holding 3). Stores that don't implement it only ever
// accept queries of their own key type.
type coercer[K comparable] interface {
	CoerceInt64(q int64) (K, bool)
	CoerceFloat64(q float64) (K, bool)
}

// textCoercer is implemented by the fixed-width stores, whose key type is
// already string but whose CoerceText still has real work to do: checking
// that q fits in the store's fixed element width. Unlike [coercer], it
// isn't parameterized on K, since a query and a hit are both always
// string for these stores.
type textCoercer interface {
	CoerceText(q string) (string, bool)
}

const errNotGrowable = mappingErrorString("store does not support growth")

type mappingErrorString string

func (e mappingErrorString) Error() string { return string(e) }

// objectStore is the general-case key store: an ordinary growable slice
// of arbitrary comparable keys, hashed with the host's built-in hashing
// ([hash/maphash.Comparable]) the way the spec's object dtype defers to
// the host runtime's hash and rich-equality protocols.
type objectStore[K comparable] struct {
	keys []K
	seed maphash.Seed
}

// objectSeed is shared by every object store, so that two mappings built
// from the same key sequence place their keys identically and so hash
// alike (see [FrozenAutoMap.Hash]).
var objectSeed = maphash.MakeSeed()

func newObjectStore[K comparable](initial []K) *objectStore[K] {
	return &objectStore[K]{keys: initial, seed: objectSeed}
}

func (s *objectStore[K]) Len() int64  { return int64(len(s.keys)) }
func (s *objectStore[K]) At(i int64) K { return s.keys[i] }

func (s *objectStore[K]) Hash(k K) int64 {
	h := int64(maphash.Comparable(s.seed, k))
	if h == -1 {
		return -2
	}
	return h
}

func (s *objectStore[K]) Equal(a, b K) bool { return a == b }
func (s *objectStore[K]) Growable() bool    { return true }

func (s *objectStore[K]) Append(k K) int64 {
	s.keys = append(s.keys, k)
	return int64(len(s.keys) - 1)
}

func (s *objectStore[K]) Truncate(n int64) {
	s.keys = s.keys[:n]
}
