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

package strategy

import (
	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/utils/text"
)

// NewSingularRule creates an apis.QualifierRule that uses the deprecated
// singular qualifier.
func NewSingularRule() apis.QualifierRule {
	return singularRule{}
}

// singularRule keeps declarations that predate the plural attribute working:
// an empty or all-blank plural list must not discard a valid singular value.
type singularRule struct{}

// Ensure singularRule implements apis.QualifierRule.
var _ apis.QualifierRule = singularRule{}

// TryQualifiers returns the singular qualifier as a one-element list.
func (singularRule) TryQualifiers(attrs apis.RawAttributes, contextID string, cfg apis.Config) ([]string, bool) {
	if text.IsBlank(attrs.Qualifier) {
		return nil, false
	}
	cfg.Logger.Info("deprecated singular qualifier in use, declare qualifiers instead",
		"contextId", contextID, "qualifier", attrs.Qualifier)
	return []string{attrs.Qualifier}, true
}
