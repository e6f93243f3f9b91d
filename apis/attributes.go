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

// RawAttributes is one client declaration as read by a declaration loader,
// one field per declarable attribute. String fields may contain unresolved
// placeholders ("${key}"); they are passed through verbatim.
type RawAttributes struct {
	// Value is a synonym for Name.
	Value string
	// Name is the service id, with an optional protocol prefix.
	Name string
	// ContextID is used as registration key instead of the service id when set.
	ContextID string
	// Qualifier is the deprecated singular qualifier. Qualifiers supersedes it
	// whenever Qualifiers carries at least one non-blank entry.
	Qualifier string
	// Qualifiers are the alternative registration names of the client. Blank
	// entries are ignored.
	Qualifiers []string
	// URL is an absolute URL or resolvable host name; the protocol is optional.
	URL string
	// Path is the prefix used by all method-level mappings.
	Path string
	// Decode404 reports whether 404 responses should be decoded instead of
	// treated as errors.
	Decode404 bool
	// Configuration lists configuration references for the client.
	Configuration []TypeRef
	// Fallback is the fallback implementation, nil when unset.
	Fallback *TypeRef
	// FallbackFactory is the fallback factory, nil when unset.
	FallbackFactory *TypeRef
	// Primary reports whether the client proxy is the primary candidate.
	Primary bool
}

// NewRawAttributes returns attributes holding the declaration defaults.
func NewRawAttributes() RawAttributes {
	return RawAttributes{Primary: true}
}
