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

import "fmt"

// errCode names the taxonomy of failures a mapping can report, independent
// of the key type involved.
type errCode int

const (
	errCodeKeyNotFound errCode = iota
	errCodeAllocationFailure
	errCodeTypeNotSupported
	errCodeInvalidArgument
)

var errMessages = [...]string{
	errCodeKeyNotFound:       "key not found",
	errCodeAllocationFailure: "allocation failure",
	errCodeTypeNotSupported:  "operation not supported for this mapping's key store",
	errCodeInvalidArgument:   "invalid argument",
}

// ErrKeyNotFound is the value MustGet panics with when a query has no
// matching entry; Get reports the same miss as (nil, false). A failed key
// coercion is reported as a miss in the same way, since a query that
// cannot even be expressed as the stored dtype can't possibly match any
// key of that type.
var ErrKeyNotFound = &mappingError{code: errCodeKeyNotFound}

// ErrAllocationFailure is surfaced when growing the table fails; the
// mapping is left exactly as it was before the call.
var ErrAllocationFailure = &mappingError{code: errCodeAllocationFailure}

// ErrTypeNotSupported is returned by mutating operations on a mapping
// backed by an immutable typed-array key store, which can only be sized
// once, at construction.
var ErrTypeNotSupported = &mappingError{code: errCodeTypeNotSupported}

// ErrInvalidArgument is returned at construction time by the fixed-width
// text and bytes constructors for a non-positive width or a record longer
// than width. The typed-array constructors do not check whether the
// caller's slice is written to after construction.
var ErrInvalidArgument = &mappingError{code: errCodeInvalidArgument}

// mappingError is the concrete type behind the Err* sentinels above. It
// exists so that errors.Is(err, ErrKeyNotFound) works without requiring
// every call site to wrap a plain string.
type mappingError struct {
	code errCode
}

func (e *mappingError) Error() string { return "automap: " + errMessages[e.code] }

// DuplicateKeyError is returned by the constructors, Add, Extend, Union,
// and InPlaceUnion when a key already exists. It carries the offending key so the caller doesn't have
// to go looking for it.
type DuplicateKeyError[K any] struct {
	Key K
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("automap: duplicate key: %v", e.Key)
}

// Is reports whether target is also a *DuplicateKeyError, regardless of
// key type or value, so callers can use errors.Is(err, new(automap.DuplicateKeyError[int]))
// without needing to match the exact key.
func (e *DuplicateKeyError[K]) Is(target error) bool {
	_, ok := target.(interface{ duplicateKey() })
	return ok
}

func (e *DuplicateKeyError[K]) duplicateKey() {}
