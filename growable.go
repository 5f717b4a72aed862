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
	"iter"

	"github.com/brandtbucher/automap-go/internal/valuecache"
)

// AutoMap is a grow-only, insertion-ordered, unique-key mapping whose
// value for any key is that key's zero-based insertion position.
//
// Unlike [FrozenAutoMap], an AutoMap can accept new keys after
// construction, via [AutoMap.Add], [AutoMap.Extend], and
// [AutoMap.InPlaceUnion]. It never supports removal: the spec's mapping
// is append-only by design, so that every value stays a stable insertion
// rank for the mapping's entire lifetime.
type AutoMap[K comparable] struct {
	core *mapCore[K]
}

// NewAutoMap builds an empty, growable AutoMap over key type K.
func NewAutoMap[K comparable]() *AutoMap[K] {
	c, err := newCore[K](newObjectStore[K](nil))
	if err != nil {
		// newCore on an empty store can never fail.
		panic(err)
	}
	return &AutoMap[K]{core: c}
}

// NewAutoMapFromSeq builds an AutoMap seeded from keys, in order, failing
// with a [*DuplicateKeyError] if any key repeats.
func NewAutoMapFromSeq[K comparable](keys iter.Seq[K]) (*AutoMap[K], error) {
	var materialized []K
	for k := range keys {
		materialized = append(materialized, k)
	}
	c, err := newCore[K](newObjectStore(materialized))
	if err != nil {
		return nil, err
	}
	return &AutoMap[K]{core: c}, nil
}

// CopyAutoMap builds a new, independent AutoMap holding m's keys in m's
// order. Further growth of either mapping does not affect the other.
func CopyAutoMap[K comparable](m *AutoMap[K]) *AutoMap[K] {
	keys := make([]K, m.Len())
	for i := range keys {
		keys[i] = m.core.kv.At(int64(i))
	}
	am, err := NewAutoMapFromSeq(func(yield func(K) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	})
	if err != nil {
		panic(err) // m was already duplicate-free.
	}
	return am
}

// Len returns the number of keys in the mapping.
func (m *AutoMap[K]) Len() int { return int(m.core.Len()) }

// Contains reports whether k is a key in the mapping.
func (m *AutoMap[K]) Contains(k K) bool { return m.core.Contains(k) }

// Get returns the position k was inserted at, and true. If k is not a
// key, it returns (nil, false).
func (m *AutoMap[K]) Get(k K) (*int, bool) { return m.core.Value(k) }

// GetOr is like [AutoMap.Get], but returns def on a miss.
func (m *AutoMap[K]) GetOr(k K, def *int) *int {
	if v, ok := m.core.Value(k); ok {
		return v
	}
	return def
}

// MustGet is like [AutoMap.Get], but panics with [ErrKeyNotFound] on a
// miss.
func (m *AutoMap[K]) MustGet(k K) *int {
	v, ok := m.core.Value(k)
	if !ok {
		panic(ErrKeyNotFound)
	}
	return v
}

// GetInt64 is the coercing-query counterpart of [FrozenAutoMap.GetInt64],
// for growable mappings.
func (m *AutoMap[K]) GetInt64(q int64) (*int, bool) {
	pos, ok := m.core.queryInt64(q)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// GetFloat64 is the coercing-query counterpart of
// [FrozenAutoMap.GetFloat64], for growable mappings.
func (m *AutoMap[K]) GetFloat64(q float64) (*int, bool) {
	pos, ok := m.core.queryFloat64(q)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// GetText is the coercing-query counterpart of [FrozenAutoMap.GetText],
// for growable mappings.
func (m *AutoMap[K]) GetText(q string) (*int, bool) {
	pos, ok := m.core.queryText(q)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// Add appends a single new key, returning its assigned position. It
// fails, leaving the mapping entirely unchanged, if k is already a key.
func (m *AutoMap[K]) Add(k K) (int, error) {
	pos, err := m.core.insertOne(k)
	return int(pos), err
}

// Extend appends every key in ks, in order, as a single atomic batch: if
// any key is a duplicate of an existing key or of an earlier key in ks,
// the mapping is left exactly as it was before the call, and the
// position of the offending key is not assigned to anything.
func (m *AutoMap[K]) Extend(ks ...K) error { return m.core.extend(ks) }

// InPlaceUnion is the mutating counterpart of [FrozenAutoMap.Union]: it
// extends m with every key of other, in other's order, failing (and
// leaving m unchanged) if any of other's keys is already present in m.
// Unioning is not a merge: an overlapping key fails the whole call,
// exactly as two overlapping keys fail [FrozenAutoMap.Union].
func (m *AutoMap[K]) InPlaceUnion(other *FrozenAutoMap[K]) error {
	keys := make([]K, other.Len())
	for i := int64(0); i < other.core.Len(); i++ {
		keys[i] = other.core.kv.At(i)
	}
	return m.core.extend(keys)
}

// Close releases m's share of the process-wide value cache's watermark.
// See [FrozenAutoMap.Close]; the same safe-to-call-more-than-once-or-not-
// at-all contract applies here.
func (m *AutoMap[K]) Close() {
	if m.core == nil {
		return
	}
	valuecache.Release(m.core.Len())
	m.core = nil
}

// Freeze returns an immutable snapshot of m's current keys. Further
// growth of m does not affect the returned mapping.
func (m *AutoMap[K]) Freeze() *FrozenAutoMap[K] {
	keys := make([]K, m.Len())
	for i := range keys {
		keys[i] = m.core.kv.At(int64(i))
	}
	fm, err := NewFrozenAutoMap(keys...)
	if err != nil {
		panic(err) // m was already duplicate-free.
	}
	return fm
}

// Keys returns a view over the mapping's keys.
func (m *AutoMap[K]) Keys() KeysView[K] { return KeysView[K]{core: m.core} }

// Values returns a view over the mapping's values.
func (m *AutoMap[K]) Values() ValuesView[K] { return ValuesView[K]{core: m.core} }

// Items returns a view over the mapping's (key, value) pairs.
func (m *AutoMap[K]) Items() ItemsView[K] { return ItemsView[K]{core: m.core} }

// All iterates over the mapping's keys in insertion order.
func (m *AutoMap[K]) All() iter.Seq[K] { return m.Keys().All() }

// Backward iterates over the mapping's keys in reverse insertion order.
func (m *AutoMap[K]) Backward() iter.Seq[K] { return m.Keys().Backward() }
