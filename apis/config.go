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

import "github.com/go-logr/logr"

// Config carries read-only resolution knobs that influence resolvers and rules.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// QualifierSuffix is appended to the context id to form the default
	// qualifier when neither qualifiers nor the singular qualifier carry data.
	QualifierSuffix string

	// DefaultScheme is prepended (as "<scheme>://") to URLs declared without
	// a protocol. An empty scheme disables prefixing.
	DefaultScheme string

	// StrictServiceID requires the resolved identity to be a legal host name,
	// optionally prefixed with a protocol.
	StrictServiceID bool

	// DefaultConfigurations are externally supplied configuration references
	// merged after the declared ones.
	DefaultConfigurations []TypeRef

	// MaxUnwrap limits pointer unwrapping when naming a type reference.
	MaxUnwrap int

	// Concurrency bounds the number of declarations resolved in parallel by
	// batch operations.
	Concurrency int

	// Logger receives diagnostics. The zero value discards.
	Logger logr.Logger
}
