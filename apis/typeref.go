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

import "reflect"

// TypeRef is an opaque reference to an implementation or configuration type.
//
// A reference is identified by its canonical Name, the import path qualified
// type name (for example "example.com/orders.Fallback"). References built from
// Go code also carry the reflect.Type they name; references read from a
// declaration file carry only the name. Use the typeref package to construct
// references; an absent reference is represented by a nil *TypeRef.
type TypeRef struct {
	// Name is the canonical, import path qualified type name.
	Name string
	// Type is the referenced Go type, if known.
	Type reflect.Type
}

// Key returns the identity of the reference.
func (r TypeRef) Key() string {
	return r.Name
}

// IsZero reports whether the reference neither names nor carries a type.
func (r TypeRef) IsZero() bool {
	return r.Name == "" && r.Type == nil
}

// String implements fmt.Stringer.
func (r TypeRef) String() string {
	if r.Name == "" && r.Type != nil {
		return r.Type.String()
	}
	return r.Name
}

// MarshalText encodes the reference as its canonical name.
func (r TypeRef) MarshalText() ([]byte, error) {
	return []byte(r.Name), nil
}

// UnmarshalText decodes a reference by name. The decoded reference carries no
// reflect.Type.
func (r *TypeRef) UnmarshalText(text []byte) error {
	*r = TypeRef{Name: string(text)}
	return nil
}

// Namer can be implemented by fallback or configuration values that want to
// choose their own reference name instead of the reflected one.
type Namer interface {
	// EntityName returns the canonical reference name.
	EntityName() string
}
