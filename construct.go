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

// This file collects the typed-array constructors: one per dtype
// specialization the spec calls out (signed/unsigned integers of every
// width, both float widths, half-precision floats, and the two
// fixed-width text/bytes dtypes). Each builds an immutable store and
// hands it to [newCore], bypassing the general object path in
// [NewFrozenAutoMap]. The numeric constructors build their store straight
// over the caller's backing slice - no copy, no boxing; the fixed-width
// text and bytes constructors copy their records into one flat, padded
// buffer.

// NewFrozenAutoMapFromSigned builds a FrozenAutoMap directly over a
// signed-integer typed array, without boxing each key. data is retained
// by reference and must not be mutated afterward.
func NewFrozenAutoMapFromSigned[K Signed](data []K) (*FrozenAutoMap[K], error) {
	c, err := newCore[K](newSignedStore(data))
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}

// NewFrozenAutoMapFromUnsigned is the unsigned-integer counterpart of
// [NewFrozenAutoMapFromSigned].
func NewFrozenAutoMapFromUnsigned[K Unsigned](data []K) (*FrozenAutoMap[K], error) {
	c, err := newCore[K](newUnsignedStore(data))
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}

// NewFrozenAutoMapFromFloat is the float32/float64 counterpart of
// [NewFrozenAutoMapFromSigned].
func NewFrozenAutoMapFromFloat[K Float](data []K) (*FrozenAutoMap[K], error) {
	c, err := newCore[K](newFloatStore(data))
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}

// NewFrozenAutoMapFromFloat16 builds a FrozenAutoMap keyed on
// half-precision floats.
func NewFrozenAutoMapFromFloat16(data []Float16) (*FrozenAutoMap[Float16], error) {
	c, err := newCore[Float16](newFloat16Store(data))
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}

// NewFrozenAutoMapFromFixedText builds a FrozenAutoMap keyed on
// fixed-width Unicode strings, each padded or rejected against width
// code points. It is the typed specialization for the spec's
// fixed-width-text dtype.
func NewFrozenAutoMapFromFixedText(width int, records []string) (*FrozenAutoMap[string], error) {
	s, err := newFixedTextStore(width, records)
	if err != nil {
		return nil, err
	}
	c, err := newCore[string](s)
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}

// NewFrozenAutoMapFromFixedBytes is the byte-string counterpart of
// [NewFrozenAutoMapFromFixedText].
func NewFrozenAutoMapFromFixedBytes(width int, records [][]byte) (*FrozenAutoMap[string], error) {
	s, err := newFixedBytesStore(width, records)
	if err != nil {
		return nil, err
	}
	c, err := newCore[string](s)
	if err != nil {
		return nil, err
	}
	return newFrozen(c), nil
}
