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

// Package table provides the open-addressed slot table shared by every
// automap mapping.
//
// Unlike a general-purpose hash table, this one never stores keys or
// values: a slot only ever holds a stored hash and the position of the
// owning key in the mapping's key store. Growth, probing, and the slot
// layout are all that live here; hashing and equality are supplied by the
// caller, so the same table serves object-keyed maps and every typed
// specialization alike.
//
// Collision resolution is block-sequential rather than the quadratic
// probe this package historically used: a run of Scan adjacent slots is
// scanned linearly (good for the cache and the branch predictor), and
// only once that run is exhausted does the probe jump to a new block.
package table

import (
	"math"

	"github.com/brandtbucher/automap-go/internal/dbg"
)

const (
	// Load is the maximum ratio of populated slots to Size.
	Load = 0.9

	// Scan is the length of the in-block sequential probe run.
	Scan = 16

	// Empty is the sentinel hash value marking an unpopulated slot.
	Empty int64 = -1
)

// Slot is one entry of the table: a stored hash, and the position of the
// owning key in the key store. KeysPos is meaningful only when Hash is not
// Empty.
type Slot struct {
	KeysPos int64
	Hash    int64
}

// Table is the open-addressed slot array backing a mapping.
//
// A zero Table is not valid; construct one with New or NewSized.
type Table struct {
	slots []Slot
	size  int64 // power of two
}

// New allocates a table sized to hold keysSize keys at the mandated load
// factor.
func New(keysSize int64) *Table {
	return NewSized(SizeFor(keysSize))
}

// NewSized allocates a table with exactly size buckets, which must already
// be a power of two. [New] and [Table.Grow] size their tables through it.
func NewSized(size int64) *Table {
	dbg.Assert(size > 0 && size&(size-1) == 0, "table size %d is not a power of two", size)

	t := &Table{
		slots: make([]Slot, size+Scan-1),
		size:  size,
	}
	for i := range t.slots {
		t.slots[i].Hash = Empty
	}
	return t
}

// SizeFor returns the smallest power of two table size whose load-factor
// capacity is at least keysSize.
func SizeFor(keysSize int64) int64 {
	if keysSize <= 0 {
		return 1
	}
	size := int64(1)
	for float64(size)*Load < float64(keysSize) {
		size <<= 1
	}
	return size
}

// Size returns the number of addressable buckets (excluding the Scan-1
// overrun tail).
func (t *Table) Size() int64 { return t.size }

// Capacity returns the largest keysSize this table can hold without
// violating the load invariant.
func (t *Table) Capacity() int64 {
	return int64(math.Floor(float64(t.size) * Load))
}

// FitsLoad reports whether a total of keysSize keys fits in this table
// without exceeding the load factor.
func (t *Table) FitsLoad(keysSize int64) bool {
	return keysSize <= t.Capacity()
}

// Slot returns a pointer to the slot at the given table index, as
// previously returned by Probe.
func (t *Table) Slot(index int64) *Slot {
	return &t.slots[index]
}

// Probe runs block-sequential probing for hash, which must not be Empty.
// equal is called with the KeysPos of any slot whose stored hash matches;
// it should report whether the key at that position equals the query.
//
// The returned index names either a hit (Slot(index).Hash == hash and
// equal held) or the first empty slot found along the probe sequence
// (a miss, and the position at which to insert).
func (t *Table) Probe(hash int64, equal func(keysPos int64) bool) int64 {
	dbg.Assert(hash != Empty, "cannot probe for the empty sentinel hash")

	mask := t.size - 1
	mixin := hash
	if mixin < 0 {
		mixin = -mixin
	}

	blockStart := hash & mask
	for {
		stop := blockStart + Scan
		for index := blockStart; index < stop; index++ {
			s := &t.slots[index]
			switch {
			case s.Hash == Empty:
				return index
			case s.Hash == hash && equal(s.KeysPos):
				return index
			}
		}

		mixin >>= 1
		blockStart = (5*blockStart + mixin + 1) & mask
		dbg.Assert(blockStart >= 0 && blockStart < t.size, "probe block start %d escaped the table", blockStart)
	}
}

// never matches any stored hash's key; used to relocate an already-unique
// entry during Grow, where no equality test is needed.
func never(int64) bool { return false }

// Insert populates the slot at index, previously returned as a miss by
// Probe, with keysPos and hash.
func (t *Table) Insert(index int64, keysPos, hash int64) {
	t.slots[index] = Slot{KeysPos: keysPos, Hash: hash}
}

// Clone returns an independent copy of t, sharing no memory with it.
func (t *Table) Clone() *Table {
	slots := make([]Slot, len(t.slots))
	copy(slots, t.slots)
	return &Table{slots: slots, size: t.size}
}

// Grow builds a new table sized for at least neededKeysSize keys and
// reinserts every populated slot of t into it. It does not mutate t.
//
// Reinsertion never needs an equality test: every key already in t is
// known to be unique, so it is always safe to drop it into the first
// empty slot its hash's probe sequence finds in the new table.
func (t *Table) Grow(neededKeysSize int64) *Table {
	size := SizeFor(neededKeysSize)
	if size < t.size {
		size = t.size
	}

	grown := NewSized(size)
	for i := range t.slots {
		s := t.slots[i]
		if s.Hash == Empty {
			continue
		}
		idx := grown.Probe(s.Hash, never)
		grown.slots[idx] = s
	}

	if dbg.Enabled {
		for i := range t.slots {
			s := t.slots[i]
			if s.Hash == Empty {
				continue
			}
			idx := grown.Probe(s.Hash, func(pos int64) bool { return pos == s.KeysPos })
			if grown.Slot(idx).Hash != s.Hash {
				grown.log("grow", "lost slot hash=%d keysPos=%d", s.Hash, s.KeysPos)
			}
		}
	}

	return grown
}

func (t *Table) log(op, format string, args ...any) {
	dbg.Log([]any{"%p", t}, op, format, args...)
}

// FoldHash combines every slot's stored hash into a single value, in
// table order. The result depends on Size, so it is only meaningful to
// compare between tables built from the same key sequence (see
// [Table.Size] and [SizeFor], which are both deterministic functions of
// keysSize).
func (t *Table) FoldHash() int64 {
	var h int64
	for i := range t.slots {
		v := t.slots[i].Hash
		if v == Empty {
			v = 0
		}
		h = h*3 + v
	}
	return h
}
