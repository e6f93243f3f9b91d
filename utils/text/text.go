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

// Package text holds the string predicates shared by resolvers and loaders.
package text

import (
	"strings"
	"unicode"
)

// PlaceholderStart opens an unresolved placeholder, as in "${key}".
const PlaceholderStart = "${"

// IsBlank reports whether s is empty or consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// HasPlaceholder reports whether s still contains placeholder syntax.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, PlaceholderStart)
}

// HasSpace reports whether s contains any whitespace rune.
func HasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// NonBlank returns the non-blank entries of values in order.
// It returns nil when no entry survives.
func NonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if !IsBlank(v) {
			out = append(out, v)
		}
	}
	return out
}
