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

// Package automap implements an insertion-ordered, unique-key mapping
// whose values are never supplied by the caller: the value of a key is
// always its zero-based insertion position. Two variants are provided,
// [FrozenAutoMap] (immutable once built) and [AutoMap] (append-only).
//
// To build one, use [NewFrozenAutoMap] or [NewAutoMap] for a
// general-purpose, arbitrarily-typed key, or one of the
// NewFrozenAutoMapFrom* constructors to key directly on a typed array
// (signed or unsigned integers of any width, float32/float64,
// [Float16], or fixed-width text/bytes) without boxing.
//
// # Key coercion
//
// A typed, numeric-keyed mapping can be queried with a different
// concrete numeric type than it was built with - [FrozenAutoMap.GetInt64]
// and [FrozenAutoMap.GetFloat64] convert the query to the mapping's own
// key dtype before probing, so a float64 query of 3.0 can find an
// int32-keyed mapping's entry for 3, and vice versa.
//
// # Support status
//
// This package does not implement key removal in any form: both
// variants are append-only, so that a key's value - its insertion rank -
// never changes or is invalidated once assigned. The following are
// currently not implemented:
//
//   - Arbitrary-precision integer keys.
//   - Concurrent-safe mutation of a growable [AutoMap] from multiple
//     goroutines.
package automap
