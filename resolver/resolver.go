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
	"slices"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/strategy"
	"dirpx.dev/rcx/utils/text"
)

// New constructs an apis.Resolver that resolves qualifiers with the given
// rules in order. Nil rules are ignored; with no rules at all the standard
// precedence (plural, singular, default) is used. The returned resolver holds
// no mutable state and is safe for concurrent use provided the rules are.
func New(rules ...apis.QualifierRule) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.QualifierRule, 0, len(rules))
	for _, r := range rules {
		if r != nil {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = strategy.DefaultRules()
	}
	return pipeline{rules: out}
}

// pipeline is an immutable resolver over an ordered set of qualifier rules.
type pipeline struct {
	rules []apis.QualifierRule
}

// Rules returns a copy of the qualifier rules in precedence order.
func (p pipeline) Rules() []apis.QualifierRule {
	return slices.Clone(p.rules)
}

// Resolve runs the pipeline over attrs.
//
// The identity is resolved first and fails fast: without it the descriptor
// can be neither registered nor cached. Qualifiers, fallbacks, configuration
// and endpoint are then resolved independently and their failures collected.
func (p pipeline) Resolve(attrs apis.RawAttributes, cfg apis.Config) (apis.ClientDescriptor, error) {
	log := cfg.Logger.WithValues("name", attrs.Name, "value", attrs.Value)

	identity, err := resolveIdentity(attrs, cfg)
	if err != nil {
		log.V(1).Info("client identity resolution failed", "error", err.Error())
		return apis.ClientDescriptor{}, err
	}

	contextID := attrs.ContextID
	if text.IsBlank(contextID) {
		contextID = identity
	}

	b := newDescriptorBuilder(identity, contextID, attrs)
	b.qualifiers(resolveQualifiers(p.rules, attrs, contextID, cfg))
	b.fallback(resolveFallback(attrFallback, attrs.Fallback, cfg))
	b.fallbackFactory(resolveFallback(attrFallbackFactory, attrs.FallbackFactory, cfg))
	b.configurations(aggregateConfigurations(attrs.Configuration, cfg))
	b.endpoint(composeEndpoint(attrs.URL, attrs.Path, cfg))

	d, err := b.build()
	if err != nil {
		log.V(1).Info("client descriptor validation failed", "identity", identity, "error", err.Error())
		return apis.ClientDescriptor{}, err
	}
	log.V(1).Info("resolved client descriptor",
		"identity", d.Identity, "contextId", d.ContextID, "endpoint", d.Endpoint, "qualifiers", d.BeanQualifiers)
	return d, nil
}

// ComposeEndpoint exposes the endpoint composition rule on its own, for
// callers that re-derive endpoints (e.g. after placeholder expansion).
func ComposeEndpoint(rawURL, path string, cfg apis.Config) (string, error) {
	return composeEndpoint(rawURL, path, cfg)
}
