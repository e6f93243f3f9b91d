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

package config

import (
	"slices"

	"github.com/go-logr/logr"

	"dirpx.dev/rcx/apis"
)

const (
	// DefaultQualifierSuffix represents the default for QualifierSuffix.
	// The default qualifier of a client is its context id followed by this suffix.
	DefaultQualifierSuffix = "FeignClient"
	// DefaultScheme represents the default for DefaultScheme.
	// URLs declared without a protocol are resolved as plain HTTP.
	DefaultScheme = "http"
	// DefaultStrictServiceID represents the default for StrictServiceID.
	DefaultStrictServiceID = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultConcurrency represents the default for Concurrency.
	DefaultConcurrency = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Normalize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		QualifierSuffix: DefaultQualifierSuffix,
		DefaultScheme:   DefaultScheme,
		StrictServiceID: DefaultStrictServiceID,
		MaxUnwrap:       DefaultMaxUnwrap,
		Concurrency:     DefaultConcurrency,
		Logger:          logr.Discard(),
	}
}

// Normalize replaces out-of-range knobs of cfg with their defaults.
// QualifierSuffix and DefaultScheme are left alone: empty values are meaningful.
// A zero Logger already discards.
func Normalize(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithQualifierSuffix sets the QualifierSuffix option.
func WithQualifierSuffix(suffix string) Option {
	return func(c *apis.Config) {
		c.QualifierSuffix = suffix
	}
}

// WithDefaultScheme sets the DefaultScheme option.
// An empty scheme disables protocol prefixing.
func WithDefaultScheme(scheme string) Option {
	return func(c *apis.Config) {
		c.DefaultScheme = scheme
	}
}

// WithStrictServiceID sets the StrictServiceID option.
func WithStrictServiceID(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictServiceID = strict
	}
}

// WithDefaultConfigurations appends externally supplied configuration references.
func WithDefaultConfigurations(refs ...apis.TypeRef) Option {
	return func(c *apis.Config) {
		c.DefaultConfigurations = append(slices.Clone(c.DefaultConfigurations), refs...)
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithConcurrency sets the Concurrency option.
// A non-positive value resets to the default.
func WithConcurrency(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.Concurrency = DefaultConcurrency
			return
		}
		c.Concurrency = n
	}
}

// WithLogger sets the Logger option.
func WithLogger(logger logr.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = logger
	}
}
