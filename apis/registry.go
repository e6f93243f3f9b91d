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

package apis

import "time"

// Registry maps context ids to resolved descriptors.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register stores d under d.ContextID. Re-registering an equal descriptor
	// is a no-op; a different descriptor under the same key is a conflict.
	Register(d ClientDescriptor) error
	// Lookup returns the descriptor registered under contextID, if present.
	Lookup(contextID string) (d ClientDescriptor, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single registration in a Registry snapshot.
type Entry struct {
	// ContextID is the registration key.
	ContextID string
	// Descriptor is the registered descriptor.
	Descriptor ClientDescriptor
	// RegisteredAt is the time of the first successful registration. Entries
	// migrated into a rebuilt registry keep their original time.
	RegisteredAt time.Time
}
