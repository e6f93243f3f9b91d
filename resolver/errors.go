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
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/rcx/apis"
)

var (
	// ErrIdentityMissing is returned when neither name nor value is set.
	ErrIdentityMissing = errors.New("rcx(resolver): client identity missing: neither name nor value is set")
	// ErrConflictingIdentity is matched by IdentityConflictError.
	ErrConflictingIdentity = errors.New("rcx(resolver): conflicting client identity")
	// ErrIllegalServiceID is returned in strict mode when the identity is not a legal host name.
	ErrIllegalServiceID = errors.New("rcx(resolver): service id is not a legal hostname")
	// ErrInvalidFallbackDeclaration is matched by FallbackError.
	ErrInvalidFallbackDeclaration = errors.New("rcx(resolver): invalid fallback declaration")
	// ErrMalformedURL is matched by EndpointError.
	ErrMalformedURL = errors.New("rcx(resolver): malformed url")
	// ErrDescriptorValidationFailed is matched by ValidationError.
	ErrDescriptorValidationFailed = errors.New("rcx(resolver): descriptor validation failed")
)

// IdentityConflictError reports a declaration whose name and value are both
// set but differ.
type IdentityConflictError struct {
	Value string
	Name  string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("%v: value %q and name %q differ", ErrConflictingIdentity, e.Value, e.Name)
}

// Is makes errors.Is(err, ErrConflictingIdentity) match.
func (e *IdentityConflictError) Is(target error) bool {
	return target == ErrConflictingIdentity
}

// FallbackError reports a fallback or fallback factory reference that cannot
// denote an implementation.
type FallbackError struct {
	// Attribute is "fallback" or "fallbackFactory".
	Attribute string
	// Ref is the offending reference as declared.
	Ref apis.TypeRef
	// Err is the underlying cause.
	Err error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%v: %s %q: %v", ErrInvalidFallbackDeclaration, e.Attribute, e.Ref.String(), e.Err)
}

// Is makes errors.Is(err, ErrInvalidFallbackDeclaration) match.
func (e *FallbackError) Is(target error) bool {
	return target == ErrInvalidFallbackDeclaration
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}

// EndpointError reports a URL that cannot serve as the base of an endpoint.
type EndpointError struct {
	// URL is the declared url attribute.
	URL string
	// Err is the underlying cause.
	Err error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrMalformedURL, e.URL, e.Err)
}

// Is makes errors.Is(err, ErrMalformedURL) match.
func (e *EndpointError) Is(target error) bool {
	return target == ErrMalformedURL
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// ValidationError carries every problem found once the identity resolved.
type ValidationError struct {
	// Identity is the resolved identity of the failing declaration.
	Identity string
	// Errs holds each collected problem in pipeline order.
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%v for %q: %s", ErrDescriptorValidationFailed, e.Identity, strings.Join(msgs, "; "))
}

// Is makes errors.Is(err, ErrDescriptorValidationFailed) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrDescriptorValidationFailed
}

// Unwrap exposes the collected problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
