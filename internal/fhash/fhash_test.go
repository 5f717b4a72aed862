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

package fhash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandtbucher/automap-go/internal/fhash"
)

func TestIntAndFloatAgreeOnSharedValues(t *testing.T) {
	t.Parallel()

	for _, n := range []int64{0, 1, -1, 2, 3, 100, -100, 1 << 40, -(1 << 40)} {
		require.Equal(t, fhash.OfInt64(n), fhash.Of(float64(n)), "n=%d", n)
	}
}

func TestNonIntegralFloatsDoNotCollideTrivially(t *testing.T) {
	t.Parallel()
	require.NotEqual(t, fhash.Of(3.0), fhash.Of(3.5))
}

func TestNeverReturnsTheEmptySentinel(t *testing.T) {
	t.Parallel()
	for _, n := range []float64{0, 1, -1, 3.5, -3.5, 1e300, -1e300} {
		require.NotEqual(t, int64(-1), fhash.Of(n))
	}
	for _, n := range []int64{0, 1, -1, 1 << 62, -(1 << 62)} {
		require.NotEqual(t, int64(-1), fhash.OfInt64(n))
	}
}
