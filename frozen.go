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
	"fmt"
	"iter"

	"github.com/brandtbucher/automap-go/internal/valuecache"
)

// FrozenAutoMap is an immutable, insertion-ordered, unique-key mapping
// whose value for any key is that key's zero-based insertion position.
//
// A FrozenAutoMap never changes after construction: no method on it
// mutates the receiver. Use [AutoMap] for a grow-only variant.
type FrozenAutoMap[K comparable] struct {
	core *mapCore[K]
}

// newFrozen wraps an already-populated core. Callers are responsible for
// ensuring construction succeeded.
func newFrozen[K comparable](c *mapCore[K]) *FrozenAutoMap[K] {
	return &FrozenAutoMap[K]{core: c}
}

// NewFrozenAutoMap builds a FrozenAutoMap over an arbitrary comparable
// key type, in the order the keys are given. It fails with a
// [*DuplicateKeyError] if any key repeats.
func NewFrozenAutoMap[K comparable](keys ...K) (*FrozenAutoMap[K], error) {
	return newFrozenFromSeq(newObjectStore(append([]K(nil), keys...)))
}

// NewFrozenAutoMapFromSeq is like [NewFrozenAutoMap], but draws its keys
// from an [iter.Seq], materializing it in order first (the spec's
// "any iterable of keys" constructor path).
func NewFrozenAutoMapFromSeq[K comparable](keys iter.Seq[K]) (*FrozenAutoMap[K], error) {
	var materialized []K
	for k := range keys {
		materialized = append(materialized, k)
	}
	return newFrozenFromSeq(newObjectStore(materialized))
}

func newFrozenFromSeq[K comparable](s *objectStore[K]) (*FrozenAutoMap[K], error) {
	c, err := newCore[K](s)
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}

// CopyFrozenAutoMap copies another mapping's keys, sharing its dtype and
// key sequence. Since the source is already known duplicate-free, this
// can never fail.
func CopyFrozenAutoMap[K comparable](m *FrozenAutoMap[K]) *FrozenAutoMap[K] {
	keys := make([]K, m.Len())
	for i := range keys {
		keys[i] = m.core.kv.At(int64(i))
	}
	fm, err := NewFrozenAutoMap(keys...)
	if err != nil {
		panic(fmt.Sprintf("automap: copying a mapping produced a duplicate: %v", err))
	}
	return fm
}

// Len returns the number of keys in the mapping.
func (m *FrozenAutoMap[K]) Len() int { return int(m.core.Len()) }

// Contains reports whether k is a key in the mapping.
func (m *FrozenAutoMap[K]) Contains(k K) bool { return m.core.Contains(k) }

// Get returns the position k was inserted at, and true. If k is not a
// key, it returns (nil, false); see [FrozenAutoMap.GetOr] for a default-
// valued variant and [FrozenAutoMap.MustGet] for a panicking one.
func (m *FrozenAutoMap[K]) Get(k K) (*int, bool) { return m.core.Value(k) }

// GetOr is like [FrozenAutoMap.Get], but returns def on a miss instead of
// (nil, false).
func (m *FrozenAutoMap[K]) GetOr(k K, def *int) *int {
	if v, ok := m.core.Value(k); ok {
		return v
	}
	return def
}

// MustGet is like [FrozenAutoMap.Get], but panics with [ErrKeyNotFound]
// on a miss, mirroring the spec's raise-on-subscript-miss contract.
func (m *FrozenAutoMap[K]) MustGet(k K) *int {
	v, ok := m.core.Value(k)
	if !ok {
		panic(ErrKeyNotFound)
	}
	return v
}

// GetInt64 looks up q against the mapping, coercing it to the mapping's
// own key dtype first (see the package's key-coercion rules): an
// int32-keyed mapping can be queried with any int64 that fits in int32,
// and a float-keyed mapping can be queried with any exact integer.
// Mappings whose key dtype does not support coercion (fixed-width text
// and bytes, and the general object dtype) never match.
func (m *FrozenAutoMap[K]) GetInt64(q int64) (*int, bool) {
	pos, ok := m.core.queryInt64(q)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// ContainsInt64 is the membership-only counterpart of
// [FrozenAutoMap.GetInt64].
func (m *FrozenAutoMap[K]) ContainsInt64(q int64) bool {
	_, ok := m.core.queryInt64(q)
	return ok
}

// GetFloat64 is the float64 counterpart of [FrozenAutoMap.GetInt64]: an
// integer-keyed mapping can be queried with any float64 whose value is
// exactly representable in the key dtype (e.g. 3.0 finds an int32 key
// of 3; 3.5 never matches an integer-keyed mapping).
func (m *FrozenAutoMap[K]) GetFloat64(q float64) (*int, bool) {
	pos, ok := m.core.queryFloat64(q)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// ContainsFloat64 is the membership-only counterpart of
// [FrozenAutoMap.GetFloat64].
func (m *FrozenAutoMap[K]) ContainsFloat64(q float64) bool {
	_, ok := m.core.queryFloat64(q)
	return ok
}

// GetText looks up q against the mapping, coercing it the way
// [FrozenAutoMap.GetInt64] coerces a numeric query, but for the
// fixed-width text and bytes dtypes: q matches a key if and only if it
// fits within the store's fixed element width and is equal to it.
// Mappings whose key dtype isn't fixed-width text or bytes never match.
func (m *FrozenAutoMap[K]) GetText(q string) (*int, bool) {
	pos, ok := m.core.queryText(q)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// ContainsText is the membership-only counterpart of
// [FrozenAutoMap.GetText].
func (m *FrozenAutoMap[K]) ContainsText(q string) bool {
	_, ok := m.core.queryText(q)
	return ok
}

// Hash combines every table slot's stored hash into one value. It is
// stable across repeated calls and across copies (see
// [CopyFrozenAutoMap]), but, per the spec, depends on table layout: only
// compare hashes of mappings built from the same key sequence in the
// same order.
func (m *FrozenAutoMap[K]) Hash() int64 { return m.core.FoldHash() }

// Equal reports whether m and other hold the same keys in the same
// order.
func (m *FrozenAutoMap[K]) Equal(other *FrozenAutoMap[K]) bool {
	return m.core.Equal(other.core)
}

// Keys returns a view over the mapping's keys.
func (m *FrozenAutoMap[K]) Keys() KeysView[K] { return KeysView[K]{core: m.core} }

// Values returns a view over the mapping's values.
func (m *FrozenAutoMap[K]) Values() ValuesView[K] { return ValuesView[K]{core: m.core} }

// Items returns a view over the mapping's (key, value) pairs.
func (m *FrozenAutoMap[K]) Items() ItemsView[K] { return ItemsView[K]{core: m.core} }

// All iterates over the mapping's keys in insertion order, satisfying
// [iter.Seq]. This is the iteration the spec assigns to iter(m).
func (m *FrozenAutoMap[K]) All() iter.Seq[K] { return m.Keys().All() }

// Backward iterates over the mapping's keys in reverse insertion order,
// satisfying [iter.Seq]. This is the iteration the spec assigns to
// reversed(m).
func (m *FrozenAutoMap[K]) Backward() iter.Seq[K] { return m.Keys().Backward() }

// Union returns a new FrozenAutoMap holding m's keys followed by other's,
// failing if any key repeats across the two.
func (m *FrozenAutoMap[K]) Union(other *FrozenAutoMap[K]) (*FrozenAutoMap[K], error) {
	keys := make([]K, 0, m.Len()+other.Len())
	for i := int64(0); i < m.core.Len(); i++ {
		keys = append(keys, m.core.kv.At(i))
	}
	for i := int64(0); i < other.core.Len(); i++ {
		keys = append(keys, other.core.kv.At(i))
	}
	return NewFrozenAutoMap(keys...)
}

// Close releases m's share of the process-wide value cache's watermark.
// A FrozenAutoMap is otherwise garbage-collected normally; Close is only
// needed to make the watermark shrink back promptly (see
// internal/valuecache) instead of waiting for a GC-driven finalizer,
// which this package does not register. Calling Close more than once, or
// not at all, is safe.
func (m *FrozenAutoMap[K]) Close() {
	if m.core == nil {
		return
	}
	valuecache.Release(m.core.Len())
	m.core = nil
}
