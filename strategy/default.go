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
)

// NewDefaultRule creates an apis.QualifierRule that derives the qualifier
// from the context id. It always handles the declaration and therefore
// belongs at the end of a rule list.
func NewDefaultRule() apis.QualifierRule {
	return defaultRule{}
}

// defaultRule is the universal fallback: contextID + cfg.QualifierSuffix.
type defaultRule struct{}

// Ensure defaultRule implements apis.QualifierRule.
var _ apis.QualifierRule = defaultRule{}

// TryQualifiers returns the default qualifier.
func (defaultRule) TryQualifiers(_ apis.RawAttributes, contextID string, cfg apis.Config) ([]string, bool) {
	return []string{contextID + cfg.QualifierSuffix}, true
}

// DefaultRules returns the standard precedence: plural, then singular, then default.
func DefaultRules() []apis.QualifierRule {
	return []apis.QualifierRule{
		NewPluralRule(),
		NewSingularRule(),
		NewDefaultRule(),
	}
}
