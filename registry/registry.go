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

package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/utils/text"
)

var (
	// ErrEmptyContextID is returned when a descriptor without a context id is registered.
	ErrEmptyContextID = errors.New("rcx(registry): empty context id")
	// ErrConflictingRegistration indicates an attempt to register a different
	// descriptor under an already used context id.
	ErrConflictingRegistration = errors.New("rcx(registry): conflicting client registration")
)

// Restorer is implemented by registries that can take over entries of
// another registry with their registration time.
type Restorer interface {
	Restore(e apis.Entry) error
}

// Compile-time check.
var _ Restorer = (*registry)(nil)

// New constructs a Registry that stamps registrations with the wall clock.
func New(cfg apis.Config) apis.Registry {
	return NewWithClock(cfg, clockwork.NewRealClock())
}

// NewWithClock constructs a Registry that stamps registrations with clock.
// A nil clock means the wall clock.
func NewWithClock(cfg apis.Config, clock clockwork.Clock) apis.Registry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &registry{cfg: cfg, clock: clock}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg supplies the logger.
	cfg apis.Config
	// clock stamps RegisteredAt.
	clock clockwork.Clock
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps context id to *record.
	m sync.Map // map[string]*record
	// count tracks the number of registered entries.
	count int
}

// record is an immutable registration.
type record struct {
	d  apis.ClientDescriptor
	at time.Time
}

// Register stores a copy of d under d.ContextID.
// It is idempotent for descriptors equal to the registered one.
func (r *registry) Register(d apis.ClientDescriptor) error {
	return r.store(d, time.Time{})
}

// Restore registers e.Descriptor keeping e.RegisteredAt, so entries moved
// between registries retain their original registration time. A zero
// RegisteredAt is stamped with the registry clock.
func (r *registry) Restore(e apis.Entry) error {
	return r.store(e.Descriptor, e.RegisteredAt)
}

func (r *registry) store(d apis.ClientDescriptor, at time.Time) error {
	if text.IsBlank(d.ContextID) {
		return ErrEmptyContextID
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(d.ContextID); ok {
		return r.compare(old.(*record), d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(d.ContextID); ok {
		return r.compare(old.(*record), d)
	}

	if at.IsZero() {
		at = r.clock.Now()
	}
	r.m.Store(d.ContextID, &record{d: d.Clone(), at: at})
	r.count++
	r.cfg.Logger.V(1).Info("registered client descriptor", "contextId", d.ContextID, "identity", d.Identity)
	return nil
}

func (r *registry) compare(old *record, d apis.ClientDescriptor) error {
	if old.d.Equal(d) {
		return nil
	}
	return fmt.Errorf("%w: context id %q already holds client %q", ErrConflictingRegistration, d.ContextID, old.d.Identity)
}

// Lookup returns a copy of the descriptor registered under contextID.
func (r *registry) Lookup(contextID string) (apis.ClientDescriptor, bool) {
	if v, ok := r.m.Load(contextID); ok {
		return v.(*record).d.Clone(), true
	}
	return apis.ClientDescriptor{}, false
}

// Entries returns a snapshot ordered by context id.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		rec := value.(*record)
		entries = append(entries, apis.Entry{
			ContextID:    key.(string),
			Descriptor:   rec.d.Clone(),
			RegisteredAt: rec.at,
		})
		return true
	})
	slices.SortFunc(entries, func(a, b apis.Entry) int {
		return cmp.Compare(a.ContextID, b.ContextID)
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
