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
)

// descriptorBuilder joins the outputs of the independent resolvers and
// collects their failures, so one attempt reports every problem at once.
type descriptorBuilder struct {
	d    apis.ClientDescriptor
	errs []error
}

// newDescriptorBuilder starts a descriptor for an already resolved identity.
func newDescriptorBuilder(identity, contextID string, attrs apis.RawAttributes) *descriptorBuilder {
	return &descriptorBuilder{
		d: apis.ClientDescriptor{
			Identity:  identity,
			ContextID: contextID,
			Decode404: attrs.Decode404,
			Primary:   attrs.Primary,
		},
	}
}

func (b *descriptorBuilder) fail(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

func (b *descriptorBuilder) qualifiers(q []string) {
	b.d.BeanQualifiers = slices.Clone(q)
}

func (b *descriptorBuilder) fallback(ref *apis.TypeRef, err error) {
	b.d.FallbackType = ref
	b.fail(err)
}

func (b *descriptorBuilder) fallbackFactory(ref *apis.TypeRef, err error) {
	b.d.FallbackFactoryType = ref
	b.fail(err)
}

func (b *descriptorBuilder) configurations(refs []apis.TypeRef) {
	b.d.ConfigurationClasses = slices.Clone(refs)
}

func (b *descriptorBuilder) endpoint(endpoint string, err error) {
	b.d.Endpoint = endpoint
	b.fail(err)
}

// build returns the descriptor, or a ValidationError carrying every
// collected problem. Resolution is all-or-nothing.
func (b *descriptorBuilder) build() (apis.ClientDescriptor, error) {
	if len(b.errs) > 0 {
		return apis.ClientDescriptor{}, &ValidationError{
			Identity: b.d.Identity,
			Errs:     slices.Clone(b.errs),
		}
	}
	if b.d.BeanQualifiers == nil {
		b.d.BeanQualifiers = []string{}
	}
	if b.d.ConfigurationClasses == nil {
		b.d.ConfigurationClasses = []apis.TypeRef{}
	}
	return b.d, nil
}
