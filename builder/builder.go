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

package builder

import (
	"github.com/jonboulle/clockwork"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/metrics"
	"dirpx.dev/rcx/registry"
	"dirpx.dev/rcx/resolver"
	"dirpx.dev/rcx/strategy"
)

// Extension is the ext payload understood by the default builder.
// Both Extension and *Extension are accepted; anything else is ignored.
type Extension struct {
	// Rules are custom qualifier rules consulted before the standard ones.
	Rules []apis.QualifierRule
	// Clock stamps registrations. Nil means the wall clock.
	Clock clockwork.Clock
	// Metrics, if set, instruments every resolver built.
	Metrics *metrics.Collectors
}

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Compile-time check.
var _ apis.Builder = (*builder)(nil)

// BuildRegistry builds a new apis.Registry for cfg. Entries of a previous
// registry are copied over with their registration time; entries that
// conflict are dropped and logged.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, ext any) apis.Registry {
	var clock clockwork.Clock
	if x, ok := extension(ext); ok {
		clock = x.Clock
	}
	nreg := registry.NewWithClock(cfg, clock)
	if preg != nil {
		restorer, _ := nreg.(registry.Restorer)
		for _, e := range preg.Entries() {
			var err error
			if restorer != nil {
				err = restorer.Restore(e)
			} else {
				err = nreg.Register(e.Descriptor)
			}
			if err != nil {
				cfg.Logger.Error(err, "dropping registry entry during rebuild", "contextId", e.ContextID)
			}
		}
	}
	return nreg
}

// BuildResolver builds a new apis.Resolver for cfg.
//
// Custom rules from an Extension come first, followed by the standard
// plural, singular and default rules. Without custom rules the rules of a
// previous resolver built by this package are reused.
func (b *builder) BuildResolver(_ apis.Config, pres apis.Resolver, ext any) apis.Resolver {
	x, _ := extension(ext)
	var res apis.Resolver
	switch p, ok := pres.(interface{ Rules() []apis.QualifierRule }); {
	case len(x.Rules) > 0:
		res = resolver.New(append(append([]apis.QualifierRule{}, x.Rules...), strategy.DefaultRules()...)...)
	case ok:
		res = resolver.New(p.Rules()...)
	default:
		res = resolver.New()
	}
	if x.Metrics != nil {
		res = metrics.NewResolver(res, x.Metrics)
	}
	return res
}

func extension(ext any) (Extension, bool) {
	switch x := ext.(type) {
	case Extension:
		return x, true
	case *Extension:
		if x != nil {
			return *x, true
		}
	}
	return Extension{}, false
}
