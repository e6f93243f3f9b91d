/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry_test

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/config"
	"dirpx.dev/rcx/registry"
)

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("client-%d", i)
	}

	// Register once (sequential) to establish baseline.
	for _, id := range ids {
		if err := reg.Register(descriptor(id)); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				id := ids[i%len(ids)]
				if got, ok := reg.Lookup(id); !ok || got.ContextID != id {
					t.Errorf("lookup failed for %s: ok=%v got=%q", id, ok, got.ContextID)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_ = reg.Register(descriptor(ids[(i+id)%len(ids)]))
			}
		}(w)
	}

	wg.Wait()

	if reg.Count() != len(ids) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(ids))
	}
	for i, e := range reg.Entries() {
		if e.ContextID != ids[i] || e.Descriptor.ContextID != ids[i] {
			t.Fatalf("entry %d mismatch: got %q want %q", i, e.ContextID, ids[i])
		}
	}
}

// TestConcurrentConflictingRegister races different descriptors for the
// same context id: exactly one wins, every other attempt conflicts.
func TestConcurrentConflictingRegister(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	const n = 32
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			d := descriptor("shared")
			d.Endpoint = fmt.Sprintf("http://svc-%d", i)
			switch err := reg.Register(d); {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, registry.ErrConflictingRegistration):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if wins.Load() != 1 || conflicts.Load() != n-1 {
		t.Fatalf("wins=%d conflicts=%d, want 1 and %d", wins.Load(), conflicts.Load(), n-1)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_ = reg.Register(descriptor("a"))
	_ = reg.Register(descriptor("b"))

	snap := reg.Entries()
	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	if snap[0].Descriptor.Identity == "" || snap[1].Descriptor.Identity == "" {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
