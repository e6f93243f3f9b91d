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

// Package declaration reads client declarations from YAML or JSON documents.
//
// A document lists clients under "clients", each using the attribute names
// of a client declaration:
//
//	clients:
//	  - name: catalog
//	    url: catalog:8080
//	    path: /v1
//	    fallback: example.com/catalog.Fallback
//
// Documents are validated against a JSON schema derived from Document before
// they are decoded, so unknown attributes and wrongly typed values are
// rejected with a precise location.
package declaration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/typeref"
	"dirpx.dev/rcx/utils/text"
)

var (
	// ErrInvalidDocument is returned when a document is not valid YAML or JSON
	// or does not match the declaration schema.
	ErrInvalidDocument = errors.New("rcx(declaration): invalid declaration document")
)

// Document is a set of client declarations.
type Document struct {
	Clients []Client `json:"clients" jsonschema_description:"Client declarations in resolution order."`
}

// Client is one declaration as written in a document. Type references are
// given by their canonical, import path qualified name.
type Client struct {
	Value           string   `json:"value,omitempty" jsonschema_description:"Alias of name."`
	Name            string   `json:"name,omitempty" jsonschema_description:"Service id of the client."`
	ContextID       string   `json:"contextId,omitempty" jsonschema_description:"Registration key; defaults to the service id."`
	Qualifier       string   `json:"qualifier,omitempty" jsonschema_description:"Deprecated single qualifier."`
	Qualifiers      []string `json:"qualifiers,omitempty" jsonschema_description:"Registration aliases."`
	URL             string   `json:"url,omitempty" jsonschema_description:"Absolute URL or host name."`
	Path            string   `json:"path,omitempty" jsonschema_description:"Path prefix for every method."`
	Decode404       bool     `json:"decode404,omitempty" jsonschema_description:"Decode 404 responses instead of failing."`
	Configuration   []string `json:"configuration,omitempty" jsonschema_description:"Configuration type names."`
	Fallback        string   `json:"fallback,omitempty" jsonschema_description:"Fallback implementation type name."`
	FallbackFactory string   `json:"fallbackFactory,omitempty" jsonschema_description:"Fallback factory type name."`
	Primary         *bool    `json:"primary,omitempty" jsonschema_description:"Mark the client primary; defaults to true."`
}

// Attributes converts c into raw attributes. An omitted primary means true
// and blank type names mean the reference is unset.
func (c Client) Attributes() apis.RawAttributes {
	attrs := apis.NewRawAttributes()
	attrs.Value = c.Value
	attrs.Name = c.Name
	attrs.ContextID = c.ContextID
	attrs.Qualifier = c.Qualifier
	attrs.Qualifiers = c.Qualifiers
	attrs.URL = c.URL
	attrs.Path = c.Path
	attrs.Decode404 = c.Decode404
	if c.Primary != nil {
		attrs.Primary = *c.Primary
	}
	for _, name := range c.Configuration {
		attrs.Configuration = append(attrs.Configuration, typeref.Named(name))
	}
	attrs.Fallback = optionalRef(c.Fallback)
	attrs.FallbackFactory = optionalRef(c.FallbackFactory)
	return attrs
}

func optionalRef(name string) *apis.TypeRef {
	if text.IsBlank(name) {
		return nil
	}
	return typeref.Ptr(typeref.Named(name))
}

// Attributes converts every client of d, in order.
func (d *Document) Attributes() []apis.RawAttributes {
	out := make([]apis.RawAttributes, len(d.Clients))
	for i, c := range d.Clients {
		out[i] = c.Attributes()
	}
	return out
}

// Parse validates and decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("rcx(declaration): read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
