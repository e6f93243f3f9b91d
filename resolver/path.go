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
	"net/url"
	"strings"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/utils/text"
)

var errMissingHost = errors.New("missing host")

// composeEndpoint joins the declared url and path into one endpoint.
//
// Without a url the endpoint is the path, rooted with a leading "/";
// service-name based routing is up to the proxy factory. A url that starts
// with "/" is such a path-only endpoint and is extended, not validated.
// Otherwise a missing protocol is filled from cfg.DefaultScheme and the path
// is appended with exactly one "/" between the two. Composing an endpoint
// again with an empty path returns it unchanged. The url is trimmed; URLs
// that still contain placeholders are neither prefixed nor validated.
func composeEndpoint(rawURL, path string, cfg apis.Config) (string, error) {
	base := strings.TrimSpace(rawURL)
	switch {
	case base == "":
		return rootPath(path), nil
	case strings.HasPrefix(base, "/"):
		if text.IsBlank(path) {
			return base, nil
		}
		return joinPath(base, path), nil
	}

	if !text.HasPlaceholder(base) {
		if !strings.Contains(base, "://") && cfg.DefaultScheme != "" {
			base = cfg.DefaultScheme + "://" + base
		}
		if err := checkBaseURL(base); err != nil {
			return "", &EndpointError{URL: rawURL, Err: err}
		}
	}

	if text.IsBlank(path) {
		return base, nil
	}
	return joinPath(base, path), nil
}

// rootPath returns path with a leading "/", or "" for a blank path. Paths
// that contain placeholders are returned as given.
func rootPath(path string) string {
	switch {
	case text.IsBlank(path):
		return ""
	case strings.HasPrefix(path, "/"), text.HasPlaceholder(path):
		return path
	}
	return "/" + path
}

// checkBaseURL requires an absolute URL with a host.
func checkBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return errMissingHost
	}
	return nil
}

// joinPath concatenates base and path with a single "/" boundary, keeping any
// trailing "/" of path.
func joinPath(base, path string) string {
	switch hasSlash, leadsSlash := strings.HasSuffix(base, "/"), strings.HasPrefix(path, "/"); {
	case hasSlash && leadsSlash:
		return base + path[1:]
	case !hasSlash && !leadsSlash:
		return base + "/" + path
	default:
		return base + path
	}
}
