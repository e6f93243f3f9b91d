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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func, slice literal type).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not a named type")
	// ErrReflectBuiltinType indicates a named type without a package (e.g., "int", "error").
	ErrReflectBuiltinType = errors.New("reflect: builtin type has no package")
	// ErrReflectInterfaceType indicates an interface type where a concrete type is required.
	ErrReflectInterfaceType = errors.New("reflect: interface type is not a concrete type")
)

// Normalize unwraps unnamed pointers according to cfg.MaxUnwrap and returns
// the nearest named type, or an error if none is found.
//
// Unwrapping policy:
//   - unnamed ptr -> Elem()
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// Composite types (slices, maps, channels, funcs) are never unwrapped: a
// reference to []T does not name T.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Ptr && t.Name() == ""; i++ {
		t = t.Elem()
	}

	if t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// Concrete normalizes t and additionally requires a package qualified,
// non-interface type: something an implementation can actually be.
func Concrete(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	n, err := Normalize(t, cfg)
	if err != nil {
		return nil, err
	}
	if n.PkgPath() == "" {
		return nil, ErrReflectBuiltinType
	}
	if n.Kind() == reflect.Interface {
		return nil, ErrReflectInterfaceType
	}
	return n, nil
}

// QualifiedName returns "import/path.Type" for a named type, or the bare
// name for builtins. Generic instantiation parameters are kept.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if p := t.PkgPath(); p != "" {
		return p + "." + t.Name()
	}
	return t.Name()
}

// ShortName reduces a qualified name to "pkg.Type" and strips generic
// instantiation parameters: "example.com/orders.Box[int]" -> "orders.Box".
func ShortName(qualified string) string {
	_, base := path.Split(stripTypeParams(qualified))
	return base
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
