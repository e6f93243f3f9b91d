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
	"fmt"
	"net/netip"
	"strings"

	"golang.org/x/net/idna"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/utils/text"
)

// resolveIdentity collapses the name/value alias pair into one identity.
// Exactly one set: use it. Both set: they must be equal. Neither: missing.
func resolveIdentity(attrs apis.RawAttributes, cfg apis.Config) (string, error) {
	hasValue, hasName := !text.IsBlank(attrs.Value), !text.IsBlank(attrs.Name)

	var id string
	switch {
	case hasValue && hasName:
		if attrs.Value != attrs.Name {
			return "", &IdentityConflictError{Value: attrs.Value, Name: attrs.Name}
		}
		id = attrs.Name
	case hasName:
		id = attrs.Name
	case hasValue:
		id = attrs.Value
	default:
		return "", ErrIdentityMissing
	}

	if cfg.StrictServiceID && !text.HasPlaceholder(id) {
		if err := checkServiceID(id); err != nil {
			return "", err
		}
	}
	return id, nil
}

// checkServiceID requires id, minus an optional "scheme://" prefix and
// ":port" suffix, to be a legal host name or a bracketed IPv6 literal.
// Internationalized names are checked in their ASCII form.
func checkServiceID(id string) error {
	host := id
	if _, rest, ok := strings.Cut(host, "://"); ok {
		host = rest
	}
	if strings.HasPrefix(host, "[") {
		if !isIPv6Literal(host) {
			return fmt.Errorf("%w: %q", ErrIllegalServiceID, id)
		}
		return nil
	}
	if h, port, ok := strings.Cut(host, ":"); ok {
		if !isDigits(port) {
			return fmt.Errorf("%w: %q", ErrIllegalServiceID, id)
		}
		host = h
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil || !isLDHName(ascii) {
		return fmt.Errorf("%w: %q", ErrIllegalServiceID, id)
	}
	return nil
}

// isLDHName reports whether s is a dot separated sequence of
// letter-digit-hyphen labels of at most 63 bytes, none starting or ending
// with a hyphen.
func isLDHName(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '-':
			default:
				return false
			}
		}
	}
	return true
}

// isIPv6Literal reports whether s is "[addr]" or "[addr]:port" with addr an
// IPv6 address.
func isIPv6Literal(s string) bool {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return false
	}
	if rest := s[end+1:]; rest != "" {
		port, ok := strings.CutPrefix(rest, ":")
		if !ok || !isDigits(port) {
			return false
		}
	}
	addr, err := netip.ParseAddr(s[1:end])
	return err == nil && addr.Is6()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
