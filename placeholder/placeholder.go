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

// Package placeholder expands "${key}" and "${key:default}" placeholders in
// client declarations before they are resolved.
//
// Expansion is a single pass: values substituted for a placeholder are not
// scanned again. A placeholder whose key is unknown and that has no default
// is left as written, unless the Expander is strict.
package placeholder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/utils/text"
)

const (
	end          = "}"
	defaultSep   = ":"
	placeholders = text.PlaceholderStart
)

var (
	// ErrUnresolvable is matched by UnresolvableError.
	ErrUnresolvable = errors.New("rcx(placeholder): unresolvable placeholder")
	// ErrNestedPlaceholder is returned when a placeholder contains another one.
	ErrNestedPlaceholder = errors.New("rcx(placeholder): nested placeholders are not supported")
)

// UnresolvableError reports a placeholder without a value in strict mode.
type UnresolvableError struct {
	// Key is the placeholder key.
	Key string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("%v: ${%s}", ErrUnresolvable, e.Key)
}

// Is makes errors.Is(err, ErrUnresolvable) match.
func (e *UnresolvableError) Is(target error) bool {
	return target == ErrUnresolvable
}

// Option configures an Expander.
type Option func(*Expander)

// Strict makes unresolvable placeholders an error instead of leaving them in place.
func Strict() Option {
	return func(e *Expander) {
		e.strict = true
	}
}

// WithLogger sets the logger used to report placeholders left unexpanded.
func WithLogger(l logr.Logger) Option {
	return func(e *Expander) {
		e.log = l
	}
}

// Expander substitutes placeholders from a Source. It is safe for concurrent
// use if its Source is.
type Expander struct {
	src    Source
	strict bool
	log    logr.Logger
}

// New returns an Expander reading from src. A nil src resolves nothing.
func New(src Source, opts ...Option) *Expander {
	if src == nil {
		src = Chain{}
	}
	e := &Expander{src: src, log: logr.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand returns s with every placeholder substituted.
func (e *Expander) Expand(s string) (string, error) {
	if !strings.Contains(s, placeholders) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], placeholders)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		start := i + j
		b.WriteString(s[i:start])

		body, next, err := scan(s, start)
		if err != nil {
			return "", err
		}
		if next < 0 {
			// unterminated: the rest is literal text
			b.WriteString(s[start:])
			break
		}

		v, err := e.lookup(body)
		if err != nil {
			return "", err
		}
		b.WriteString(v)
		i = next
	}
	return b.String(), nil
}

// lookup resolves the body of one placeholder, "key" or "key:default".
func (e *Expander) lookup(body string) (string, error) {
	key, def, hasDefault := strings.Cut(body, defaultSep)
	if v, ok := e.src.Lookup(key); ok {
		return v, nil
	}
	if hasDefault {
		return def, nil
	}
	if e.strict {
		return "", &UnresolvableError{Key: key}
	}
	e.log.V(1).Info("leaving placeholder unexpanded", "key", key)
	return placeholders + body + end, nil
}

// scan reads the placeholder opened at start. It returns its body and the
// index just past the closing brace, or next < 0 if it is not terminated.
func scan(s string, start int) (body string, next int, err error) {
	for k := start + len(placeholders); k < len(s); k++ {
		if strings.HasPrefix(s[k:], placeholders) {
			return "", 0, ErrNestedPlaceholder
		}
		if s[k] == end[0] {
			return s[start+len(placeholders) : k], k + 1, nil
		}
	}
	return "", -1, nil
}

// ExpandAttributes expands every string attribute of attrs: value, name,
// contextId, qualifier, each qualifiers entry, url and path. Type
// references and flags are copied unchanged. All failures are reported.
func (e *Expander) ExpandAttributes(attrs apis.RawAttributes) (apis.RawAttributes, error) {
	out := attrs
	var errs []error
	field := func(name string, dst *string) {
		v, err := e.Expand(*dst)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = v
	}
	field("value", &out.Value)
	field("name", &out.Name)
	field("contextId", &out.ContextID)
	field("qualifier", &out.Qualifier)
	field("url", &out.URL)
	field("path", &out.Path)
	if attrs.Qualifiers != nil {
		out.Qualifiers = make([]string, len(attrs.Qualifiers))
		copy(out.Qualifiers, attrs.Qualifiers)
		for i := range out.Qualifiers {
			field(fmt.Sprintf("qualifiers[%d]", i), &out.Qualifiers[i])
		}
	}
	if len(errs) > 0 {
		return apis.RawAttributes{}, errors.Join(errs...)
	}
	return out, nil
}
