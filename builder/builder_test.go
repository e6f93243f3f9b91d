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

package builder_test

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/builder"
	"dirpx.dev/rcx/config"
	"dirpx.dev/rcx/metrics"
	"dirpx.dev/rcx/registry"
)

// teamRule qualifies every client with a team prefix.
type teamRule struct{}

func (teamRule) TryQualifiers(_ apis.RawAttributes, contextID string, _ apis.Config) ([]string, bool) {
	return []string{"team." + contextID}, true
}

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working Registry.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()

	// prev may be nil; this must still produce a valid registry.
	reg := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	d := apis.ClientDescriptor{Identity: "svc", ContextID: "svc"}
	if err := reg.Register(d); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if got, ok := reg.Lookup("svc"); !ok || got.Identity != "svc" {
		t.Fatalf("Lookup mismatch: ok=%v got=%q", ok, got.Identity)
	}
}

// TestBuildRegistry_Migrates verifies that entries survive a rebuild.
func TestBuildRegistry_Migrates(t *testing.T) {
	registered := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := registry.NewWithClock(config.DefaultConfig(), clockwork.NewFakeClockAt(registered))
	for _, id := range []string{"a", "b", "c"} {
		if err := old.Register(apis.ClientDescriptor{Identity: id, ContextID: id}); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}

	clock := clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	nreg := builder.New().BuildRegistry(config.DefaultConfig(), old, &builder.Extension{Clock: clock})

	if nreg.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", nreg.Count())
	}
	for _, e := range nreg.Entries() {
		if !e.RegisteredAt.Equal(registered) {
			t.Fatalf("%s: RegisteredAt = %v, want original %v", e.ContextID, e.RegisteredAt, registered)
		}
	}

	// new registrations use the clock from the extension
	if err := nreg.Register(apis.ClientDescriptor{Identity: "d", ContextID: "d"}); err != nil {
		t.Fatalf("Register(d): %v", err)
	}
	if e := nreg.Entries()[3]; e.ContextID != "d" || !e.RegisteredAt.Equal(clock.Now()) {
		t.Fatalf("%s: RegisteredAt = %v, want clock from extension", e.ContextID, e.RegisteredAt)
	}
	// the old registry is left untouched
	old.Reset()
	if _, ok := nreg.Lookup("b"); !ok {
		t.Fatal("migrated entry shares state with the previous registry")
	}
}

// TestBuildResolver_Default verifies the standard qualifier precedence.
func TestBuildResolver_Default(t *testing.T) {
	cfg := config.DefaultConfig()
	res := builder.New().BuildResolver(cfg, nil, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	d, err := res.Resolve(apis.RawAttributes{Name: "catalog"}, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(d.BeanQualifiers) != 1 || d.BeanQualifiers[0] != "catalogFeignClient" {
		t.Fatalf("default qualifier: got %v", d.BeanQualifiers)
	}
}

// TestBuildResolver_ExtensionRules verifies that custom rules take priority
// and that explicit qualifiers only win when the custom rule declines.
func TestBuildResolver_ExtensionRules(t *testing.T) {
	cfg := config.DefaultConfig()
	res := builder.New().BuildResolver(cfg, nil, builder.Extension{Rules: []apis.QualifierRule{teamRule{}}})

	d, err := res.Resolve(apis.RawAttributes{Name: "catalog", Qualifiers: []string{"explicit"}}, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(d.BeanQualifiers) != 1 || d.BeanQualifiers[0] != "team.catalog" {
		t.Fatalf("custom rule not consulted first: got %v", d.BeanQualifiers)
	}
}

// TestBuildResolver_ReusesPreviousRules verifies that a rebuild without an
// extension keeps the rules of the previous resolver.
func TestBuildResolver_ReusesPreviousRules(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	first := b.BuildResolver(cfg, nil, &builder.Extension{Rules: []apis.QualifierRule{teamRule{}}})
	second := b.BuildResolver(config.NewConfig(config.WithQualifierSuffix("Client")), first, nil)

	d, err := second.Resolve(apis.RawAttributes{Name: "orders"}, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.BeanQualifiers[0] != "team.orders" {
		t.Fatalf("previous rules lost on rebuild: got %v", d.BeanQualifiers)
	}
}

// TestBuildResolver_Metrics verifies that an extension with collectors
// yields an instrumented resolver that keeps the custom rules on rebuild.
func TestBuildResolver_Metrics(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	c := metrics.MustRegister(prometheus.NewRegistry())
	ext := builder.Extension{Rules: []apis.QualifierRule{teamRule{}}, Metrics: c}

	res := b.BuildResolver(cfg, nil, ext)
	if _, err := res.Resolve(apis.RawAttributes{Name: "orders"}, cfg); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := res.Resolve(apis.RawAttributes{}, cfg); err == nil {
		t.Fatal("Resolve: expected identity error")
	}
	if got := testutil.ToFloat64(c.Resolutions.WithLabelValues(metrics.OutcomeSuccess)); got != 1 {
		t.Fatalf("success count = %v, want 1", got)
	}

	rebuilt := b.BuildResolver(cfg, res, nil)
	d, err := rebuilt.Resolve(apis.RawAttributes{Name: "orders"}, cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.BeanQualifiers[0] != "team.orders" {
		t.Fatalf("rules lost through instrumented resolver: got %v", d.BeanQualifiers)
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to
// ensure it is safe to call Resolve concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	cfg := config.DefaultConfig()
	res := builder.New().BuildResolver(cfg, nil, nil)

	inputs := []apis.RawAttributes{
		{Name: "a"},
		{Value: "b", Qualifiers: []string{"q1", "q2"}},
		{Name: "c", URL: "c:8080", Path: "/api"},
		{Name: "d", Qualifier: "legacy"},
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if _, err := res.Resolve(inputs[(i+id)%len(inputs)], cfg); err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
