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

package reflect_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rcx/apis"
	uref "dirpx.dev/rcx/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type Iface interface{ M() }
type Named []A

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_Pointers(t *testing.T) {
	a := A{}
	pa := &a
	ppa := &pa

	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"plain", reflect.TypeOf(a)},
		{"ptr", reflect.TypeOf(pa)},
		{"ptrptr", reflect.TypeOf(ppa)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, cfg())
			require.NoError(t, err)
			assert.Equal(t, reflect.TypeOf(A{}), got)
		})
	}
}

func TestNormalize_CompositesAreNotUnwrapped(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf((chan A)(nil)),
		reflect.TypeOf(func() {}),
		reflect.TypeOf(struct{}{}),
	} {
		_, err := uref.Normalize(typ, cfg())
		assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed, "type %v", typ)
	}

	// a named slice type is itself named
	got, err := uref.Normalize(reflect.TypeOf(Named{}), cfg())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(Named{}), got)
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	var x **A
	_, err := uref.Normalize(reflect.TypeOf(x), cfg(func(c *apis.Config) { c.MaxUnwrap = 1 }))
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	got, err := uref.Normalize(reflect.TypeOf(x), cfg(func(c *apis.Config) { c.MaxUnwrap = 0 }))
	require.NoError(t, err, "non-positive MaxUnwrap falls back to the default")
	assert.Equal(t, reflect.TypeOf(A{}), got)
}

func TestNormalize_NilType(t *testing.T) {
	_, err := uref.Normalize(nil, cfg())
	assert.True(t, errors.Is(err, uref.ErrReflectNilType))
}

func TestConcrete(t *testing.T) {
	got, err := uref.Concrete(reflect.TypeOf(&A{}), cfg())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(A{}), got)

	_, err = uref.Concrete(reflect.TypeOf(0), cfg())
	assert.ErrorIs(t, err, uref.ErrReflectBuiltinType)

	_, err = uref.Concrete(reflect.TypeOf((*error)(nil)).Elem(), cfg())
	assert.ErrorIs(t, err, uref.ErrReflectBuiltinType, "error is a builtin interface")

	_, err = uref.Concrete(reflect.TypeOf((*Iface)(nil)).Elem(), cfg())
	assert.ErrorIs(t, err, uref.ErrReflectInterfaceType)
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "dirpx.dev/rcx/utils/reflect_test.A", uref.QualifiedName(reflect.TypeOf(A{})))
	assert.Equal(t, "int", uref.QualifiedName(reflect.TypeOf(0)))
	assert.Empty(t, uref.QualifiedName(nil))

	g := uref.QualifiedName(reflect.TypeOf(G[int]{}))
	assert.Equal(t, "dirpx.dev/rcx/utils/reflect_test.G[int]", g)
}

func TestShortName(t *testing.T) {
	cases := map[string]string{
		"example.com/orders.Fallback":             "orders.Fallback",
		"example.com/orders.Box[example.com/x.Y]": "orders.Box",
		"orders.Fallback":                         "orders.Fallback",
		"int":                                     "int",
		"a/b/c.T":                                 "c.T",
	}
	for in, want := range cases {
		assert.Equal(t, want, uref.ShortName(in), in)
	}
}
