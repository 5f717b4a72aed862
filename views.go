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

// Item is one (key, value) pair produced by an [ItemsView].
type Item[K comparable] struct {
	Key   K
	Value *int
}

// KeysView is a thin, lazy handle onto a mapping's keys, in insertion
// order. It never copies the mapping it was taken from.
type KeysView[K comparable] struct {
	core *mapCore[K]
}

// Len returns the number of keys the view would yield.
func (v KeysView[K]) Len() int { return int(v.core.Len()) }

// Contains delegates to the owning mapping's membership test, which is
// O(1) - unlike [ValuesView.Contains], which must scan.
func (v KeysView[K]) Contains(k K) bool { return v.core.Contains(k) }

// All iterates the view's keys in insertion order.
func (v KeysView[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := int64(0); i < v.core.Len(); i++ {
			if !yield(v.core.kv.At(i)) {
				return
			}
		}
	}
}

// Backward iterates the view's keys in reverse insertion order.
func (v KeysView[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := v.core.Len() - 1; i >= 0; i-- {
			if !yield(v.core.kv.At(i)) {
				return
			}
		}
	}
}

// Set materializes the view into a plain [Set], the "set of the
// implementation's choice" the spec's view set-algebra is defined
// against.
func (v KeysView[K]) Set() Set[K] { return NewSet(v.All()) }

// Union returns the set union of this view and other.
func (v KeysView[K]) Union(other iter.Seq[K]) Set[K] { return v.Set().Union(NewSet(other)) }

// Intersect returns the set intersection of this view and other.
func (v KeysView[K]) Intersect(other iter.Seq[K]) Set[K] { return v.Set().Intersect(NewSet(other)) }

// Difference returns the keys in this view but not in other.
func (v KeysView[K]) Difference(other iter.Seq[K]) Set[K] { return v.Set().Difference(NewSet(other)) }

// SymmetricDifference returns the keys in exactly one of this view or
// other.
func (v KeysView[K]) SymmetricDifference(other iter.Seq[K]) Set[K] {
	return v.Set().SymmetricDifference(NewSet(other))
}

// IsDisjoint reports whether this view and other share no keys.
func (v KeysView[K]) IsDisjoint(other iter.Seq[K]) bool { return v.Set().IsDisjoint(NewSet(other)) }

// Equal reports whether this view and other hold the same keys, order
// ignored (views compare as sets, per the spec; mappings themselves
// compare order-sensitively - see [FrozenAutoMap.Equal]).
func (v KeysView[K]) Equal(other iter.Seq[K]) bool { return v.Set().Equal(NewSet(other)) }

// IsSubsetOf reports whether every key in this view is also in other.
func (v KeysView[K]) IsSubsetOf(other iter.Seq[K]) bool { return v.Set().IsSubsetOf(NewSet(other)) }

// IsSupersetOf reports whether this view holds every key of other.
func (v KeysView[K]) IsSupersetOf(other iter.Seq[K]) bool {
	return v.Set().IsSupersetOf(NewSet(other))
}

// ValuesView is a thin, lazy handle onto a mapping's values - the shared
// boxed insertion ranks held by the process-wide value cache.
type ValuesView[K comparable] struct {
	core *mapCore[K]
}

// Len returns the number of values the view would yield.
func (v ValuesView[K]) Len() int { return int(v.core.Len()) }

// Contains scans the view for value, since values carry no index of
// their own back to a key.
func (v ValuesView[K]) Contains(value int) bool {
	for got := range v.All() {
		if *got == value {
			return true
		}
	}
	return false
}

// All iterates the view's values in insertion order.
func (v ValuesView[K]) All() iter.Seq[*int] {
	return func(yield func(*int) bool) {
		for i := int64(0); i < v.core.Len(); i++ {
			if !yield(valuecache.Get(i)) {
				return
			}
		}
	}
}

// Backward iterates the view's values in reverse insertion order.
func (v ValuesView[K]) Backward() iter.Seq[*int] {
	return func(yield func(*int) bool) {
		for i := v.core.Len() - 1; i >= 0; i-- {
			if !yield(valuecache.Get(i)) {
				return
			}
		}
	}
}

// Ints materializes the view as plain ints, the natural element type for
// set algebra against an ordinary set of integers (e.g. a values view
// intersected with a literal int set).
func (v ValuesView[K]) Ints() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := int64(0); i < v.core.Len(); i++ {
			if !yield(int(i)) {
				return
			}
		}
	}
}

// Set materializes the view's values into a plain [Set] of ints.
func (v ValuesView[K]) Set() Set[int] { return NewSet(v.Ints()) }

// Union returns the set union of this view's values and other.
func (v ValuesView[K]) Union(other iter.Seq[int]) Set[int] { return v.Set().Union(NewSet(other)) }

// Intersect returns the set intersection of this view's values and
// other.
func (v ValuesView[K]) Intersect(other iter.Seq[int]) Set[int] {
	return v.Set().Intersect(NewSet(other))
}

// Difference returns the values in this view but not in other.
func (v ValuesView[K]) Difference(other iter.Seq[int]) Set[int] {
	return v.Set().Difference(NewSet(other))
}

// SymmetricDifference returns the values in exactly one of this view or
// other.
func (v ValuesView[K]) SymmetricDifference(other iter.Seq[int]) Set[int] {
	return v.Set().SymmetricDifference(NewSet(other))
}

// IsDisjoint reports whether this view's values and other share nothing.
func (v ValuesView[K]) IsDisjoint(other iter.Seq[int]) bool {
	return v.Set().IsDisjoint(NewSet(other))
}

// ItemsView is a thin, lazy handle onto a mapping's (key, value) pairs.
type ItemsView[K comparable] struct {
	core *mapCore[K]
}

// Len returns the number of items the view would yield.
func (v ItemsView[K]) Len() int { return int(v.core.Len()) }

// Contains reports whether the view holds the exact (key, value) pair,
// by looking up the key in the owning mapping and comparing its position.
func (v ItemsView[K]) Contains(item Item[K]) bool {
	pos, ok := v.core.lookup(item.Key)
	return ok && int64(*item.Value) == pos
}

// All iterates the view's items in insertion order.
func (v ItemsView[K]) All() iter.Seq[Item[K]] {
	return func(yield func(Item[K]) bool) {
		for i := int64(0); i < v.core.Len(); i++ {
			item := Item[K]{Key: v.core.kv.At(i), Value: valuecache.Get(i)}
			if !yield(item) {
				return
			}
		}
	}
}

// Backward iterates the view's items in reverse insertion order.
func (v ItemsView[K]) Backward() iter.Seq[Item[K]] {
	return func(yield func(Item[K]) bool) {
		for i := v.core.Len() - 1; i >= 0; i-- {
			item := Item[K]{Key: v.core.kv.At(i), Value: valuecache.Get(i)}
			if !yield(item) {
				return
			}
		}
	}
}
