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

package typeref

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/config"
	uref "dirpx.dev/rcx/utils/reflect"
	"dirpx.dev/rcx/utils/text"
)

var (
	// ErrEmptyName is returned when a reference has neither a name nor a type.
	ErrEmptyName = errors.New("rcx(typeref): empty type reference")
	// ErrMalformedName is returned when a reference name contains whitespace.
	ErrMalformedName = errors.New("rcx(typeref): malformed type reference name")
	// ErrNameMismatch is returned when a reference carries a type whose
	// canonical name differs from the declared name.
	ErrNameMismatch = errors.New("rcx(typeref): reference name does not match its type")
)

// Of returns a reference to T. Pointer types are unwrapped, so Of[*Fallback]
// and Of[Fallback] name the same type.
func Of[T any]() apis.TypeRef {
	return FromType(reflect.TypeFor[T]())
}

// FromType returns a reference to t. If t does not normalize to a named type
// the reference keeps t but has no name; Normalize and Implementation report
// why.
func FromType(t reflect.Type) apis.TypeRef {
	if t == nil {
		return apis.TypeRef{}
	}
	return apis.TypeRef{Name: nameOf(t), Type: t}
}

// FromValue returns a reference to the dynamic type of v. If v implements
// apis.Namer, its EntityName is used as the reference name.
func FromValue(v any) apis.TypeRef {
	if v == nil {
		return apis.TypeRef{}
	}
	if n, ok := v.(apis.Namer); ok {
		return apis.TypeRef{Name: n.EntityName(), Type: reflect.TypeOf(v)}
	}
	return FromType(reflect.TypeOf(v))
}

// Named returns a reference known only by name, as read from a declaration file.
func Named(name string) apis.TypeRef {
	return apis.TypeRef{Name: name}
}

// Ptr returns a pointer to a copy of ref, for optional reference fields.
func Ptr(ref apis.TypeRef) *apis.TypeRef {
	return &ref
}

// Normalize validates ref as a plain reference and fills in its name from its
// type when missing. It does not require the referenced type to be concrete.
func Normalize(ref apis.TypeRef, cfg apis.Config) (apis.TypeRef, error) {
	if ref.Type == nil {
		return checkName(ref)
	}
	n, err := uref.Normalize(ref.Type, cfg)
	if err != nil {
		return apis.TypeRef{}, err
	}
	return withType(ref, n)
}

// Implementation validates ref as a reference to something that can be
// instantiated: a named, package qualified, non-interface type. References
// known only by name are checked structurally.
func Implementation(ref apis.TypeRef, cfg apis.Config) (apis.TypeRef, error) {
	if ref.Type == nil {
		return checkName(ref)
	}
	c, err := uref.Concrete(ref.Type, cfg)
	if err != nil {
		return apis.TypeRef{}, err
	}
	return withType(ref, c)
}

// Short returns the "pkg.Type" display form of ref.
func Short(ref apis.TypeRef) string {
	return uref.ShortName(ref.String())
}

func checkName(ref apis.TypeRef) (apis.TypeRef, error) {
	switch {
	case text.IsBlank(ref.Name):
		return apis.TypeRef{}, ErrEmptyName
	case text.HasSpace(ref.Name):
		return apis.TypeRef{}, ErrMalformedName
	}
	return ref, nil
}

// withType reconciles the declared name with the normalized type t.
// A name chosen through apis.Namer is kept as is.
func withType(ref apis.TypeRef, t reflect.Type) (apis.TypeRef, error) {
	name := uref.QualifiedName(t)
	switch {
	case ref.Name == "" || ref.Name == name:
		return apis.TypeRef{Name: name, Type: t}, nil
	case implementsNamer(ref.Type):
		return checkName(apis.TypeRef{Name: ref.Name, Type: t})
	}
	return apis.TypeRef{}, ErrNameMismatch
}

func implementsNamer(t reflect.Type) bool {
	return t != nil && t.Implements(namerType)
}

var namerType = reflect.TypeFor[apis.Namer]()

// nameCache caches canonical names by type.
var nameCache sync.Map // key: reflect.Type, val: string

// nameOf resolves the canonical name for t with memoization.
func nameOf(t reflect.Type) string {
	if v, ok := nameCache.Load(t); ok {
		return v.(string)
	}
	name := ""
	if n, err := uref.Normalize(t, config.DefaultConfig()); err == nil {
		name = uref.QualifiedName(n)
	}
	nameCache.Store(t, name)
	return name
}
