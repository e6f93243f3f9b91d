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

// NewPluralRule creates an apis.QualifierRule that uses the plural qualifiers.
func NewPluralRule() apis.QualifierRule {
	return pluralRule{}
}

// pluralRule wins whenever the plural qualifiers yield at least one usable
// value. Blank entries are dropped; the others are kept verbatim and in order.
type pluralRule struct{}

// Ensure pluralRule implements apis.QualifierRule.
var _ apis.QualifierRule = pluralRule{}

// TryQualifiers returns the non-blank plural qualifiers, if any.
func (pluralRule) TryQualifiers(attrs apis.RawAttributes, _ string, _ apis.Config) ([]string, bool) {
	cleaned := text.NonBlank(attrs.Qualifiers)
	if len(cleaned) == 0 {
		return nil, false
	}
	return cleaned, true
}
