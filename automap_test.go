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

package automap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandtbucher/automap-go"
	"github.com/brandtbucher/automap-go/internal/valuecache"
)

func TestFrozenAutoMapAssignsInsertionOrderAsValue(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMap("a", "b", "c")
	require.NoError(t, err)

	for i, k := range []string{"a", "b", "c"} {
		v, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, i, *v)
	}
}

func TestFrozenAutoMapRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := automap.NewFrozenAutoMap("a", "b", "a")
	var dup *automap.DuplicateKeyError[string]
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "a", dup.Key)
}

func TestFrozenAutoMapMissingKey(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMap("a", "b")
	require.NoError(t, err)

	_, ok := m.Get("z")
	require.False(t, ok)
	require.False(t, m.Contains("z"))

	require.PanicsWithValue(t, automap.ErrKeyNotFound, func() { m.MustGet("z") })
}

func TestCopyFrozenAutoMapIsIndependentAndEqual(t *testing.T) {
	t.Parallel()

	orig, err := automap.NewFrozenAutoMap(1, 2, 3)
	require.NoError(t, err)

	cp := automap.CopyFrozenAutoMap(orig)
	require.True(t, orig.Equal(cp))
	require.Equal(t, orig.Hash(), cp.Hash())
}

func TestAutoMapAddRejectsDuplicateWithoutMutating(t *testing.T) {
	t.Parallel()

	m := automap.NewAutoMap[string]()
	_, err := m.Add("a")
	require.NoError(t, err)
	_, err = m.Add("b")
	require.NoError(t, err)

	before := m.Len()
	_, err = m.Add("a")
	require.Error(t, err)
	require.Equal(t, before, m.Len())
}

func TestAutoMapExtendRollsBackOnDuplicate(t *testing.T) {
	t.Parallel()

	m := automap.NewAutoMap[string]()
	_, err := m.Add("a")
	require.NoError(t, err)

	err = m.Extend("b", "c", "a", "d")
	require.Error(t, err)
	require.Equal(t, 1, m.Len())
	require.False(t, m.Contains("b"))
	require.False(t, m.Contains("c"))
	require.False(t, m.Contains("d"))
}

func TestAutoMapExtendAllOrNothingOnSuccess(t *testing.T) {
	t.Parallel()

	m := automap.NewAutoMap[string]()
	require.NoError(t, m.Extend("a", "b", "c"))
	require.Equal(t, 3, m.Len())
	for i, k := range []string{"a", "b", "c"} {
		v, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, i, *v)
	}
}

func TestAutoMapFreezeSnapshotsIndependently(t *testing.T) {
	t.Parallel()

	m := automap.NewAutoMap[string]()
	require.NoError(t, m.Extend("a", "b"))

	frozen := m.Freeze()
	require.NoError(t, m.Extend("c"))

	require.Equal(t, 2, frozen.Len())
	require.Equal(t, 3, m.Len())
	require.False(t, frozen.Contains("c"))
}

func TestFrozenAutoMapUnion(t *testing.T) {
	t.Parallel()

	left, err := automap.NewFrozenAutoMap("a", "b")
	require.NoError(t, err)
	right, err := automap.NewFrozenAutoMap("c", "d")
	require.NoError(t, err)

	union, err := left.Union(right)
	require.NoError(t, err)
	require.Equal(t, 4, union.Len())

	for i, k := range []string{"a", "b", "c", "d"} {
		v, ok := union.Get(k)
		require.True(t, ok)
		require.Equal(t, i, *v)
	}
}

func TestFrozenAutoMapUnionRejectsOverlap(t *testing.T) {
	t.Parallel()

	left, err := automap.NewFrozenAutoMap("a", "b")
	require.NoError(t, err)
	right, err := automap.NewFrozenAutoMap("b", "c")
	require.NoError(t, err)

	_, err = left.Union(right)
	require.Error(t, err)
}

func TestAutoMapInPlaceUnion(t *testing.T) {
	t.Parallel()

	m := automap.NewAutoMap[string]()
	require.NoError(t, m.Extend("a", "b"))

	other, err := automap.NewFrozenAutoMap("c", "d")
	require.NoError(t, err)

	require.NoError(t, m.InPlaceUnion(other))
	require.Equal(t, 4, m.Len())
	for i, k := range []string{"a", "b", "c", "d"} {
		v, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, i, *v)
	}
}

func TestAutoMapInPlaceUnionRejectsOverlap(t *testing.T) {
	t.Parallel()

	m := automap.NewAutoMap[string]()
	require.NoError(t, m.Extend("a", "b"))

	other, err := automap.NewFrozenAutoMap("b", "c", "d")
	require.NoError(t, err)

	before := m.Len()
	require.Error(t, m.InPlaceUnion(other))
	require.Equal(t, before, m.Len())
	require.False(t, m.Contains("c"))
	require.False(t, m.Contains("d"))
}

func TestKeyCoercionAcrossNumericDtypes(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMapFromSigned([]int32{10, 20, 30})
	require.NoError(t, err)

	v, ok := m.GetFloat64(20.0)
	require.True(t, ok)
	require.Equal(t, 1, *v)

	_, ok = m.GetFloat64(20.5)
	require.False(t, ok)
}

func TestFloatKeyedMapFindsIntQuery(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMapFromFloat([]float64{1.0, 2.0, 3.0})
	require.NoError(t, err)

	v, ok := m.GetInt64(3)
	require.True(t, ok)
	require.Equal(t, 2, *v)
}

func TestValuesViewSetIntersection(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMap("a", "b", "c")
	require.NoError(t, err)

	other := automap.NewSet(func(yield func(int) bool) {
		for _, v := range []int{1, 2, 9} {
			if !yield(v) {
				return
			}
		}
	})

	got := m.Values().Intersect(other.All())
	require.Equal(t, 2, got.Len())
	require.True(t, got.Contains(1))
	require.True(t, got.Contains(2))
}

func TestKeysViewIteratesInsertionOrderAndReverse(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMap("a", "b", "c")
	require.NoError(t, err)

	var forward []string
	for k := range m.Keys().All() {
		forward = append(forward, k)
	}
	require.Equal(t, []string{"a", "b", "c"}, forward)

	var backward []string
	for k := range m.Keys().Backward() {
		backward = append(backward, k)
	}
	require.Equal(t, []string{"c", "b", "a"}, backward)
}

func TestDuplicateKeyErrorIsMatchableAcrossKeyTypes(t *testing.T) {
	t.Parallel()

	_, err := automap.NewFrozenAutoMap(1, 2, 1)
	// errors.Is matches any *DuplicateKeyError regardless of its type
	// parameter, so callers can check "was this a duplicate-key failure"
	// without knowing (or caring) the mapping's key type.
	require.True(t, errors.Is(err, &automap.DuplicateKeyError[int]{}))
	require.True(t, errors.Is(err, &automap.DuplicateKeyError[string]{}))

	var dup *automap.DuplicateKeyError[int]
	require.True(t, errors.As(err, &dup))
	require.Equal(t, 1, dup.Key)
}

func TestGetTextCoercesAgainstFixedWidthStores(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMapFromFixedText(4, []string{"ab", "cdef"})
	require.NoError(t, err)

	v, ok := m.GetText("cdef")
	require.True(t, ok)
	require.Equal(t, 1, *v)
	require.True(t, m.ContainsText("ab"))

	_, ok = m.GetText("toolongforwidth")
	require.False(t, ok)
	require.False(t, m.ContainsText("toolongforwidth"))

	_, ok = m.GetText("zz")
	require.False(t, ok)
}

func TestGetTextMissesOnStoresWithoutCoercion(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMap("a", "b")
	require.NoError(t, err)

	_, ok := m.GetText("a")
	require.False(t, ok)
}

func TestAutoMapCloseShrinksValueCacheWatermark(t *testing.T) {
	before := valuecache.Len()

	m := automap.NewAutoMap[string]()
	require.NoError(t, m.Extend("a", "b", "c"))
	require.GreaterOrEqual(t, valuecache.Len(), before+3)

	m.Close()
	require.Equal(t, before, valuecache.Len())

	// Safe to call more than once.
	m.Close()
	require.Equal(t, before, valuecache.Len())
}

func TestFixedWidthTextStoreTrimsAndRejectsOverlong(t *testing.T) {
	t.Parallel()

	m, err := automap.NewFrozenAutoMapFromFixedText(4, []string{"ab", "cdef"})
	require.NoError(t, err)
	require.True(t, m.Contains("ab"))
	require.True(t, m.Contains("cdef"))

	_, err = automap.NewFrozenAutoMapFromFixedText(2, []string{"abc"})
	require.Error(t, err)
}
