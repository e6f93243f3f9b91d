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

// aggregateConfigurations merges the declared references with the externally
// supplied defaults, declared first. Duplicates by key are removed keeping
// the first occurrence. References that name nothing are dropped, so this
// step never fails.
func aggregateConfigurations(declared []apis.TypeRef, cfg apis.Config) []apis.TypeRef {
	out := make([]apis.TypeRef, 0, len(declared)+len(cfg.DefaultConfigurations))
	seen := make(map[string]struct{}, cap(out))

	add := func(refs []apis.TypeRef, source string) {
		for _, ref := range refs {
			n, err := typeref.Normalize(ref, cfg)
			if err != nil {
				cfg.Logger.V(1).Info("ignoring unusable configuration reference",
					"source", source, "reference", ref.String(), "reason", err.Error())
				continue
			}
			if _, dup := seen[n.Key()]; dup {
				continue
			}
			seen[n.Key()] = struct{}{}
			out = append(out, n)
		}
	}
	add(declared, "declared")
	add(cfg.DefaultConfigurations, "default")
	return out
}
