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

// Package rcx resolves declarative HTTP client declarations into canonical
// client descriptors.
//
// A declaration (apis.RawAttributes) is what a user writes on a client
// interface: a service name, possibly under its alias "value", a context id,
// qualifiers, a base URL and path, fallback types and configuration types.
// Resolution collapses the aliases, applies defaults and validates the
// result into an apis.ClientDescriptor that the rest of the client stack
// (registration, configuration lookup, proxy construction) consumes.
//
// # Resolution
//
// The resolver runs a fixed pipeline:
//
//   - Identity: exactly one of name/value, or both equal. A conflict or an
//     absent identity fails immediately.
//   - Context id: the declared one, or the identity.
//   - Qualifiers: an ordered list of apis.QualifierRule values. The standard
//     rules are plural qualifiers, then the deprecated singular qualifier,
//     then contextId + Config.QualifierSuffix.
//   - Fallbacks: each optional reference must name a concrete type.
//   - Configuration: declared references followed by
//     Config.DefaultConfigurations, deduplicated in first-seen order.
//   - Endpoint: url and path joined with exactly one "/".
//
// Everything after the identity is checked together, so one attempt reports
// every problem in a resolver.ValidationError. Resolution never publishes a
// partial descriptor.
//
// # Design
//
// The package keeps a read-mostly global snapshot holding the Config, a
// Registry of resolved descriptors keyed by context id, a Resolver and the
// Builder that constructs both. Readers load the snapshot atomically and
// never lock:
//
//	d, err := rcx.Resolve(attrs)
//	d, err = rcx.Register(attrs)
//	d, ok := rcx.Lookup("orders")
//
// Writers (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver,
// SetAll, pin helpers) take a build lock, derive a new snapshot, rebuild
// the layers that are not pinned and swap the snapshot in.
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: later SetConfig,
// SetBuilder or SetExt calls leave a pinned layer alone until it is
// unpinned. Rebuilding an unpinned registry migrates its entries.
//
// # Extension payload
//
// SetExt stores an opaque value handed to the Builder on every rebuild.
// The default builder understands builder.Extension, which adds custom
// qualifier rules ahead of the standard ones and injects the clock used to
// stamp registrations.
//
// # Batches
//
// ResolveAll and RegisterAll process many declarations concurrently, bounded
// by Config.Concurrency. Each declaration gets its own Result; one failure
// does not cancel the others.
//
// # Scope
//
// rcx does not evaluate placeholders (see package placeholder), load
// declarations (see package declaration), check that a fallback implements
// the client interface, or build HTTP clients. It only turns declarations
// into descriptors.
package rcx
