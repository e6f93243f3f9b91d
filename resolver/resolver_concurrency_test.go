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

package resolver_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/config"
	"dirpx.dev/rcx/resolver"
	"dirpx.dev/rcx/typeref"
)

// TestResolve_Concurrent runs one shared resolver from many goroutines and
// checks that every result matches the sequential one.
func TestResolve_Concurrent(t *testing.T) {
	r := resolver.New()
	cfg := config.NewConfig(config.WithDefaultConfigurations(typeref.Of[loggingConfig]()))

	const n = 64
	attrsFor := func(i int) apis.RawAttributes {
		return apis.RawAttributes{
			Name:          fmt.Sprintf("svc-%d", i%8),
			URL:           "gateway:8080",
			Path:          fmt.Sprintf("/v%d", i%3),
			Configuration: []apis.TypeRef{typeref.Of[retryConfig](), typeref.Of[loggingConfig]()},
			Fallback:      typeref.Ptr(typeref.Of[*catalogFallback]()),
			Primary:       true,
		}
	}

	want := make([]apis.ClientDescriptor, n)
	for i := range want {
		d, err := r.Resolve(attrsFor(i), cfg)
		require.NoError(t, err)
		want[i] = d
	}

	got := make([]apis.ClientDescriptor, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = r.Resolve(attrsFor(i), cfg)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, want[i].Equal(got[i]), "descriptor %d differs", i)
	}
}
