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

// QualifierRule is a pluggable qualifier resolution step. A Resolver tries its
// rules in order (e.g., plural -> singular -> default) and uses the first one
// that handles the declaration.
type QualifierRule interface {
	// TryQualifiers returns (qualifiers, true) if the rule applies to attrs;
	// otherwise (nil, false) to fall through. contextID is the already
	// resolved context id.
	TryQualifiers(attrs RawAttributes, contextID string, cfg Config) (qualifiers []string, handled bool)
}
