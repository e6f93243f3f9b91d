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
	"dirpx.dev/rcx/utils/text"
)

// resolveQualifiers runs the rules in order until one handles attrs.
// Returns an empty list if no rule produced qualifiers. Blank entries a
// custom rule might return are dropped.
func resolveQualifiers(rules []apis.QualifierRule, attrs apis.RawAttributes, contextID string, cfg apis.Config) []string {
	for _, r := range rules {
		if q, ok := r.TryQualifiers(attrs, contextID, cfg); ok {
			if q = text.NonBlank(q); q != nil {
				return q
			}
			return []string{}
		}
	}
	return []string{}
}
