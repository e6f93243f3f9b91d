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

package apis

import "slices"

// ClientDescriptor is the canonical, resolved form of one client declaration.
//
// A descriptor is produced once by a Resolver and never mutated afterwards.
// Slices and references are owned by the descriptor; use Clone before handing
// a descriptor to code that may modify it.
type ClientDescriptor struct {
	// Identity is the resolved service id. Never blank.
	Identity string `json:"identity"`
	// ContextID is the registration and caching key.
	ContextID string `json:"contextId"`
	// BeanQualifiers are the registration aliases. Never contains blank entries.
	BeanQualifiers []string `json:"beanQualifiers"`
	// FallbackType is the fallback implementation, nil when unset.
	FallbackType *TypeRef `json:"fallbackType,omitempty"`
	// FallbackFactoryType is the fallback factory, nil when unset.
	FallbackFactoryType *TypeRef `json:"fallbackFactoryType,omitempty"`
	// ConfigurationClasses are the deduplicated configuration references.
	ConfigurationClasses []TypeRef `json:"configurationClasses"`
	// Endpoint is the composed base URL and path.
	Endpoint string `json:"endpoint"`
	// Decode404 is carried over from the declaration.
	Decode404 bool `json:"decode404"`
	// Primary is carried over from the declaration.
	Primary bool `json:"primary"`
}

// Clone returns a deep copy of d.
func (d ClientDescriptor) Clone() ClientDescriptor {
	c := d
	c.BeanQualifiers = slices.Clone(d.BeanQualifiers)
	c.ConfigurationClasses = slices.Clone(d.ConfigurationClasses)
	if d.FallbackType != nil {
		ref := *d.FallbackType
		c.FallbackType = &ref
	}
	if d.FallbackFactoryType != nil {
		ref := *d.FallbackFactoryType
		c.FallbackFactoryType = &ref
	}
	return c
}

// Equal reports whether d and o describe the same client.
// Type references are compared by key.
func (d ClientDescriptor) Equal(o ClientDescriptor) bool {
	return d.Identity == o.Identity &&
		d.ContextID == o.ContextID &&
		d.Endpoint == o.Endpoint &&
		d.Decode404 == o.Decode404 &&
		d.Primary == o.Primary &&
		slices.Equal(d.BeanQualifiers, o.BeanQualifiers) &&
		sameRef(d.FallbackType, o.FallbackType) &&
		sameRef(d.FallbackFactoryType, o.FallbackFactoryType) &&
		slices.EqualFunc(d.ConfigurationClasses, o.ConfigurationClasses, func(a, b TypeRef) bool {
			return a.Key() == b.Key()
		})
}

func sameRef(a, b *TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}
