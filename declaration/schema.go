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

package declaration

import (
	"bytes"
	"fmt"
	"sync"

	invjs "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaID = "rcx-declaration.schema.json"

// Schema returns the JSON schema documents are validated against.
func Schema() ([]byte, error) {
	r := invjs.Reflector{Anonymous: true, DoNotReference: true}
	s := r.Reflect(&Document{})
	s.Title = "rcx client declarations"
	return s.MarshalJSON()
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("rcx(declaration): failed to reflect schema: %w", err)
	}
	unmarshaled, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("rcx(declaration): failed to unmarshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaID, unmarshaled); err != nil {
		return nil, fmt.Errorf("rcx(declaration): failed to add schema resource: %w", err)
	}
	s, err := compiler.Compile(schemaID)
	if err != nil {
		return nil, fmt.Errorf("rcx(declaration): failed to compile schema: %w", err)
	}
	return s, nil
})

// validate checks a JSON document against the declaration schema.
func validate(raw []byte) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return s.Validate(inst)
}
