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

package placeholder

import "os"

// Source supplies placeholder values.
type Source interface {
	// Lookup returns the value for key and whether it is defined.
	Lookup(key string) (string, bool)
}

// MapSource is a Source backed by a map.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvSource reads the process environment. Keys are used as variable names
// after Prefix is prepended.
type EnvSource struct {
	Prefix string
}

// Lookup implements Source.
func (s EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(s.Prefix + key)
}

// Chain consults its sources in order and returns the first hit.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

var (
	_ Source = MapSource(nil)
	_ Source = EnvSource{}
	_ Source = Chain(nil)
)
