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

package resolver

import (
	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/typeref"
)

const (
	attrFallback        = "fallback"
	attrFallbackFactory = "fallbackFactory"
)

// resolveFallback validates an optional fallback or fallback factory
// reference. nil means unset and is always valid. Whether the type actually
// implements the client interface is left to the proxy factory.
func resolveFallback(attribute string, ref *apis.TypeRef, cfg apis.Config) (*apis.TypeRef, error) {
	if ref == nil {
		return nil, nil
	}
	impl, err := typeref.Implementation(*ref, cfg)
	if err != nil {
		return nil, &FallbackError{Attribute: attribute, Ref: *ref, Err: err}
	}
	return &impl, nil
}
