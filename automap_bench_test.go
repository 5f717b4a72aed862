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
	"testing"

	"github.com/google/uuid"

	"github.com/brandtbucher/automap-go"
)

const benchKeys = 4096

func uuidKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	return keys
}

func BenchmarkFrozenAutoMapConstruct(b *testing.B) {
	keys := uuidKeys(benchKeys)
	b.ResetTimer()
	for range b.N {
		if _, err := automap.NewFrozenAutoMap(keys...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFrozenAutoMapLookup(b *testing.B) {
	keys := uuidKeys(benchKeys)
	m, err := automap.NewFrozenAutoMap(keys...)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := range b.N {
		m.Contains(keys[i%len(keys)])
	}
}

func BenchmarkAutoMapAdd(b *testing.B) {
	keys := uuidKeys(benchKeys)
	b.ResetTimer()
	for range b.N {
		m := automap.NewAutoMap[string]()
		for _, k := range keys {
			if _, err := m.Add(k); err != nil {
				b.Fatal(err)
			}
		}
	}
}
