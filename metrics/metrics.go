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

// Package metrics instruments client resolution with Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/resolver"
)

const (
	namespace = "rcx"
	component = "resolver"
)

// Outcome label values.
const (
	OutcomeSuccess             = "success"
	OutcomeIdentityMissing     = "identity_missing"
	OutcomeConflictingIdentity = "conflicting_identity"
	OutcomeIllegalServiceID    = "illegal_service_id"
	OutcomeValidationFailed    = "validation_failed"
	OutcomeError               = "error"
)

// Collectors holds the resolution metrics. Collectors registered once can be
// shared by any number of instrumented resolvers.
type Collectors struct {
	// Resolutions counts resolutions by outcome.
	Resolutions *prometheus.CounterVec
	// Duration observes resolution latency in seconds.
	Duration prometheus.Histogram
}

// MustRegister creates the resolution collectors and registers them with reg.
// If reg already holds them, the registered ones are returned.
func MustRegister(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: component,
			Name:      "resolutions_total",
			Help:      "Number of client declarations resolved, by outcome.",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: component,
			Name:      "resolution_duration_seconds",
			Help:      "Time spent resolving one client declaration.",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
		}),
	}
	c.Resolutions = mustRegisterOrReuse(reg, c.Resolutions)
	c.Duration = mustRegisterOrReuse(reg, c.Duration)
	return c
}

func mustRegisterOrReuse[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Outcome classifies a resolution error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, resolver.ErrIdentityMissing):
		return OutcomeIdentityMissing
	case errors.Is(err, resolver.ErrConflictingIdentity):
		return OutcomeConflictingIdentity
	case errors.Is(err, resolver.ErrIllegalServiceID):
		return OutcomeIllegalServiceID
	case errors.Is(err, resolver.ErrDescriptorValidationFailed):
		return OutcomeValidationFailed
	}
	return OutcomeError
}

// NewResolver wraps next so that every resolution is counted and timed.
func NewResolver(next apis.Resolver, c *Collectors) apis.Resolver {
	return &instrumented{next: next, c: c}
}

type instrumented struct {
	next apis.Resolver
	c    *Collectors
}

// Compile-time check.
var _ apis.Resolver = (*instrumented)(nil)

// Resolve delegates to the wrapped resolver.
func (r *instrumented) Resolve(attrs apis.RawAttributes, cfg apis.Config) (apis.ClientDescriptor, error) {
	start := time.Now()
	d, err := r.next.Resolve(attrs, cfg)
	r.c.Duration.Observe(time.Since(start).Seconds())
	r.c.Resolutions.WithLabelValues(Outcome(err)).Inc()
	return d, err
}

// Rules exposes the qualifier rules of the wrapped resolver, if any, so
// builders can carry them over on rebuild.
func (r *instrumented) Rules() []apis.QualifierRule {
	if p, ok := r.next.(interface{ Rules() []apis.QualifierRule }); ok {
		return p.Rules()
	}
	return nil
}
