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
	"github.com/brandtbucher/automap-go/internal/table"
	"github.com/brandtbucher/automap-go/internal/valuecache"
)

// mapCore is the engine shared by [FrozenAutoMap] and [AutoMap]: a table
// of slots over a key store. Every mutating operation here either fully
// succeeds or leaves the receiver exactly as it found it.
type mapCore[K comparable] struct {
	tbl *table.Table
	kv  store[K]
}

// newCore builds a mapCore by inserting every key s already holds, in
// order, failing on the first duplicate. On failure the returned core is
// nil and no value-cache watermark has been reserved.
func newCore[K comparable](s store[K]) (*mapCore[K], error) {
	n := s.Len()
	c := &mapCore[K]{tbl: table.New(n), kv: s}

	for i := int64(0); i < n; i++ {
		k := s.At(i)
		h := s.Hash(k)
		idx := c.tbl.Probe(h, c.equalTo(k))
		if c.tbl.Slot(idx).Hash != table.Empty {
			return nil, &DuplicateKeyError[K]{Key: k}
		}
		c.tbl.Insert(idx, i, h)
	}

	valuecache.Acquire(n)
	return c, nil
}

// equalTo returns a closure suitable for [table.Table.Probe] that tests
// whether the key at a candidate position equals k.
func (c *mapCore[K]) equalTo(k K) func(int64) bool {
	return func(pos int64) bool { return c.kv.Equal(c.kv.At(pos), k) }
}

// Len returns the number of keys currently stored.
func (c *mapCore[K]) Len() int64 { return c.kv.Len() }

// lookup returns the key's position and true on a hit.
func (c *mapCore[K]) lookup(k K) (int64, bool) {
	h := c.kv.Hash(k)
	idx := c.tbl.Probe(h, c.equalTo(k))
	s := c.tbl.Slot(idx)
	if s.Hash == table.Empty {
		return 0, false
	}
	return s.KeysPos, true
}

// Contains reports membership, implementing the spec's lookup contract.
func (c *mapCore[K]) Contains(k K) bool {
	_, ok := c.lookup(k)
	return ok
}

// Value returns the shared boxed position for k, and true on a hit.
func (c *mapCore[K]) Value(k K) (*int, bool) {
	pos, ok := c.lookup(k)
	if !ok {
		return nil, false
	}
	return valuecache.Get(pos), true
}

// FoldHash implements the spec's frozen-only hash combinator.
func (c *mapCore[K]) FoldHash() int64 { return c.tbl.FoldHash() }

// Equal implements the spec's key-store equality: same keys, same order.
func (c *mapCore[K]) Equal(other *mapCore[K]) bool {
	n := c.Len()
	if n != other.Len() {
		return false
	}
	for i := int64(0); i < n; i++ {
		if !c.kv.Equal(c.kv.At(i), other.kv.At(i)) {
			return false
		}
	}
	return true
}

// queryInt64 looks up an int64 query against the mapping, coercing it to
// K first if the key store supports cross-dtype coercion (see
// [coercer]). Stores that don't implement coercer - fixed-width text and
// bytes, and the general object store - never match a numeric query.
func (c *mapCore[K]) queryInt64(q int64) (int64, bool) {
	kc, ok := any(c.kv).(coercer[K])
	if !ok {
		return 0, false
	}
	k, ok := kc.CoerceInt64(q)
	if !ok {
		return 0, false
	}
	return c.lookup(k)
}

// queryFloat64 is the float64 counterpart of queryInt64.
func (c *mapCore[K]) queryFloat64(q float64) (int64, bool) {
	kc, ok := any(c.kv).(coercer[K])
	if !ok {
		return 0, false
	}
	k, ok := kc.CoerceFloat64(q)
	if !ok {
		return 0, false
	}
	return c.lookup(k)
}

// queryText looks up a string query against the mapping, coercing it
// through [textCoercer] if the key store implements it (the fixed-width
// text and bytes stores, whose key type is already string but which
// still reject a query wider than their fixed element width) and then,
// for any key type, attempting to reach K from the coerced string via a
// plain type assertion - which only ever succeeds when K is itself
// string, since that's the only key type these stores support.
func (c *mapCore[K]) queryText(q string) (int64, bool) {
	tc, ok := any(c.kv).(textCoercer)
	if !ok {
		return 0, false
	}
	coerced, ok := tc.CoerceText(q)
	if !ok {
		return 0, false
	}
	k, ok := any(coerced).(K)
	if !ok {
		return 0, false
	}
	return c.lookup(k)
}

// insertOne implements the spec's append-one: grow the table if needed,
// then insert. A duplicate is reported without mutating the key store;
// the table may have grown regardless (harmless - it only changes spare
// capacity, never observable mapping state), matching the spec's note
// that this design doesn't optimize for memory footprint.
func (c *mapCore[K]) insertOne(k K) (int64, error) {
	if !c.kv.Growable() {
		return 0, ErrTypeNotSupported
	}

	needed := c.kv.Len() + 1
	if !c.tbl.FitsLoad(needed) {
		grown, err := growSafely(c.tbl, needed)
		if err != nil {
			return 0, err
		}
		c.tbl = grown
	}

	h := c.kv.Hash(k)
	idx := c.tbl.Probe(h, c.equalTo(k))
	if c.tbl.Slot(idx).Hash != table.Empty {
		return 0, &DuplicateKeyError[K]{Key: k}
	}

	pos := c.kv.Append(k)
	c.tbl.Insert(idx, pos, h)
	valuecache.Acquire(1)
	return pos, nil
}

// extend implements the spec's extend: grow once for the whole batch,
// then insert one by one against a private working copy of the table, so
// that a duplicate partway through can be rolled back in full (the key
// store's append-only Truncate undoes the keys already appended this
// call; the table's working copy is simply discarded, since it was never
// installed on the receiver).
func (c *mapCore[K]) extend(ks []K) error {
	if !c.kv.Growable() {
		return ErrTypeNotSupported
	}
	if len(ks) == 0 {
		return nil
	}

	origLen := c.kv.Len()
	working := c.tbl.Clone()

	needed := origLen + int64(len(ks))
	if !working.FitsLoad(needed) {
		grown, err := growSafely(working, needed)
		if err != nil {
			return err
		}
		working = grown
	}

	for _, k := range ks {
		h := c.kv.Hash(k)
		idx := working.Probe(h, c.equalTo(k))
		if working.Slot(idx).Hash != table.Empty {
			c.kv.Truncate(origLen)
			return &DuplicateKeyError[K]{Key: k}
		}
		pos := c.kv.Append(k)
		working.Insert(idx, pos, h)
	}

	c.tbl = working
	valuecache.Acquire(int64(len(ks)))
	return nil
}

// growSafely runs t.Grow, converting a panic (e.g. from an allocation so
// large the runtime refuses it) into an [ErrAllocationFailure], leaving t
// itself untouched either way.
func growSafely(t *table.Table, neededKeysSize int64) (grown *table.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			grown, err = nil, ErrAllocationFailure
		}
	}()
	return t.Grow(neededKeysSize), nil
}
