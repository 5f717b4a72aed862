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

package table_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandtbucher/automap-go/internal/dbg"
	"github.com/brandtbucher/automap-go/internal/table"
)

// keys mirrors a key store good enough for the table's own tests: parallel
// slices of stored hash-bearing values, indexed by KeysPos.
type keys []int64

func (k keys) equal(want int64) func(int64) bool {
	return func(pos int64) bool { return k[pos] == want }
}

func TestProbeInsertGrow(t *testing.T) {
	t.Parallel()

	tb := table.New(0)
	var ks keys

	for n := range int64(2000) {
		idx := tb.Probe(n, ks.equal(n))
		if tb.Slot(idx).Hash != table.Empty {
			t.Fatalf("unexpected hit for never-inserted key %d", n)
		}

		if !tb.FitsLoad(int64(len(ks)) + 1) {
			tb = tb.Grow(int64(len(ks)) + 1)
			idx = tb.Probe(n, ks.equal(n))
		}

		ks = append(ks, n)
		tb.Insert(idx, int64(len(ks)-1), n)

		ok := t.Run(strconv.FormatInt(n, 10), func(t *testing.T) {
			for i := int64(0); i <= n; i++ {
				idx := tb.Probe(i, ks.equal(i))
				require.NotEqual(t, table.Empty, tb.Slot(idx).Hash, "key %d missing after inserting up to %d", i, n)
				require.Equal(t, i, ks[tb.Slot(idx).KeysPos])
			}
		})
		if !ok {
			t.FailNow()
		}
	}
}

func TestSizeForIsPowerOfTwoAboveLoad(t *testing.T) {
	t.Parallel()

	for keysSize := int64(0); keysSize < 4096; keysSize++ {
		size := table.SizeFor(keysSize)
		require.Equal(t, size&(size-1), int64(0), "size %d for keysSize %d is not a power of two", size, keysSize)
		require.GreaterOrEqual(t, float64(size)*table.Load, float64(keysSize), "keysSize %d exceeds load factor of size %d", keysSize, size)
	}
}

func TestGrowPreservesLookups(t *testing.T) {
	t.Parallel()
	defer dbg.WithTesting(t)()

	tb := table.NewSized(1)
	var ks keys
	for n := range int64(64) {
		idx := tb.Probe(n, ks.equal(n))
		ks = append(ks, n)
		if tb.Slot(idx).Hash == table.Empty {
			tb.Insert(idx, int64(len(ks)-1), n)
		}

		if !tb.FitsLoad(int64(len(ks))) {
			grown := tb.Grow(int64(len(ks)))
			for i := int64(0); i <= n; i++ {
				idx := grown.Probe(i, ks.equal(i))
				require.NotEqual(t, table.Empty, grown.Slot(idx).Hash)
			}
			tb = grown
		}
	}
}

func TestFoldHashIsStableForSameInput(t *testing.T) {
	t.Parallel()

	build := func(order []int64) int64 {
		tb := table.New(int64(len(order)))
		var ks keys
		for _, n := range order {
			idx := tb.Probe(n, ks.equal(n))
			ks = append(ks, n)
			tb.Insert(idx, int64(len(ks)-1), n)
		}
		return tb.FoldHash()
	}

	h1 := build([]int64{1, 2, 3})
	h2 := build([]int64{1, 2, 3})
	require.Equal(t, h1, h2)
}
