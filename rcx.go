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

package rcx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/builder"
	"dirpx.dev/rcx/config"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, nil)
	s.res = s.bld.BuildResolver(s.cfg, nil, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rcx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rcx: builder returned nil resolver")
)

// Resolve turns attrs into a descriptor using the global resolver and
// configuration. Nothing is registered.
func Resolve(attrs apis.RawAttributes) (apis.ClientDescriptor, error) {
	s := st.Load()
	return s.res.Resolve(attrs, s.cfg)
}

// Register resolves attrs and stores the descriptor in the global registry
// under its context id. The descriptor is returned even when registration
// fails, so callers can report what conflicted.
func Register(attrs apis.RawAttributes) (apis.ClientDescriptor, error) {
	s := st.Load()
	d, err := s.res.Resolve(attrs, s.cfg)
	if err != nil {
		return apis.ClientDescriptor{}, err
	}
	return d, s.reg.Register(d)
}

// Lookup returns the descriptor registered under contextID in the global registry.
func Lookup(contextID string) (apis.ClientDescriptor, bool) {
	return st.Load().reg.Lookup(contextID)
}

// Result is the outcome of resolving one declaration in a batch.
type Result struct {
	// Descriptor is the resolved descriptor, zero if Err is set.
	Descriptor apis.ClientDescriptor
	// Err is the resolution (or registration) failure for this declaration.
	Err error
}

// ResolveAll resolves every declaration concurrently, at most
// Config().Concurrency at a time. Results are in input order and one
// failing declaration does not stop the others. If ctx is cancelled,
// declarations not yet started carry ctx.Err() and so does the returned error.
func ResolveAll(ctx context.Context, attrs []apis.RawAttributes) ([]Result, error) {
	s := st.Load()
	return batch(ctx, s, attrs, func(a apis.RawAttributes) (apis.ClientDescriptor, error) {
		return s.res.Resolve(a, s.cfg)
	})
}

// RegisterAll is ResolveAll followed by registration of every descriptor
// that resolved. Registrations happen in input order, so for conflicting
// context ids the first declaration wins.
func RegisterAll(ctx context.Context, attrs []apis.RawAttributes) ([]Result, error) {
	s := st.Load()
	results, err := batch(ctx, s, attrs, func(a apis.RawAttributes) (apis.ClientDescriptor, error) {
		return s.res.Resolve(a, s.cfg)
	})
	for i := range results {
		if results[i].Err == nil {
			results[i].Err = s.reg.Register(results[i].Descriptor)
		}
	}
	return results, err
}

func batch(ctx context.Context, s *state, attrs []apis.RawAttributes, fn func(apis.RawAttributes) (apis.ClientDescriptor, error)) ([]Result, error) {
	results := make([]Result, len(attrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range attrs {
		if err := gctx.Err(); err != nil {
			for j := i; j < len(attrs); j++ {
				results[j].Err = err
			}
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Descriptor, results[i].Err = fn(attrs[i])
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		s.cfg.Logger.V(1).Info("batch resolution interrupted", "declarations", len(attrs), "error", err.Error())
		return results, err
	}
	return results, nil
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. Registry and resolver passed
// explicitly are pinned; the others are rebuilt and unpinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := &state{cfg: old.cfg, ext: ext, bld: old.bld, reg: reg, res: res}
	if cfg != nil {
		next.cfg = config.Normalize(*cfg)
	}
	if bld != nil {
		next.bld = bld
	}
	if next.reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	} else {
		next.preg = true
	}
	if next.res == nil {
		next.res = next.bld.BuildResolver(next.cfg, old.res, next.ext)
	} else {
		next.pres = true
	}
	publish(next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the unpinned
// registry and resolver.
func SetConfig(cfg apis.Config) {
	update(func(s *state) { s.cfg = config.Normalize(cfg) }, true)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(s *state) { s.reg, s.preg = reg, true }, false)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver. Nil is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(s *state) { s.res, s.pres = res, true }, false)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the unpinned layers
// with it. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(s *state) { s.bld = b }, true)
}

// SetExt replaces the extension payload and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	update(func(s *state) { s.ext = ext }, true)
}

// ExtAs returns the global extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops rebuilds of the global registry.
func PinRegistry() {
	update(func(s *state) { s.preg = true }, false)
}

// UnpinRegistry allows the global registry to be rebuilt again.
func UnpinRegistry() {
	update(func(s *state) { s.preg = false }, false)
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops rebuilds of the global resolver.
func PinResolver() {
	update(func(s *state) { s.pres = true }, false)
}

// UnpinResolver allows the global resolver to be rebuilt again.
func UnpinResolver() {
	update(func(s *state) { s.pres = false }, false)
}

// update derives a new snapshot from the current one under the build lock.
// With rebuild set, unpinned layers are rebuilt from the modified snapshot.
func update(modify func(*state), rebuild bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	modify(&next)
	if rebuild {
		if !next.preg {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		if !next.pres {
			next.res = next.bld.BuildResolver(next.cfg, old.res, next.ext)
		}
	}
	publish(&next)
}

// publish stores s after checking that the builder produced both layers.
// Callers hold buildMu.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state. Writers copy, modify and swap.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the extension payload handed to the builder.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned.
	preg bool
	// pres indicates whether the resolver is pinned.
	pres bool
}
