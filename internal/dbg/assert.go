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

package dbg

import (
	"fmt"
	"os"
	"sync"
	"testing"
)

// Enabled controls whether [Assert] and [Log] do anything. It is off by
// default; set the AUTOMAP_DEBUG environment variable to enable it, which
// is useful when chasing down a probe sequence that refuses to terminate.
var Enabled = os.Getenv("AUTOMAP_DEBUG") != ""

var (
	mu   sync.Mutex
	sink *testing.T
)

// Assert panics with the formatted message if cond is false and debugging
// is enabled. Checks gated behind Enabled are for invariants that are too
// expensive to run unconditionally, such as re-walking a whole probe
// sequence after every insert.
func Assert(cond bool, format string, args ...any) {
	if !Enabled || cond {
		return
	}
	panic(fmt.Sprintf("automap: assertion failed: "+format, args...))
}

// Log writes a debug line tagged with op, but only if debugging is enabled.
// When called from within a [WithTesting] scope, it writes to the active
// *testing.T instead of stderr.
func Log(prefix []any, op, format string, args ...any) {
	if !Enabled {
		return
	}

	mu.Lock()
	t := sink
	mu.Unlock()

	line := fmt.Sprintf(prefix[0].(string)+" "+op+": "+format, append(prefix[1:], args...)...)
	if t != nil {
		t.Log(line)
		return
	}
	fmt.Fprintln(os.Stderr, line)
}

// WithTesting redirects Log output to t for the duration of the returned
// scope. Intended to be used as `defer dbg.WithTesting(t)()` at the top of
// a test.
func WithTesting(t *testing.T) func() {
	mu.Lock()
	prev := sink
	sink = t
	mu.Unlock()

	return func() {
		mu.Lock()
		sink = prev
		mu.Unlock()
	}
}
