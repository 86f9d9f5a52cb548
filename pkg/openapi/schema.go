/*
Copyright 2026 Nscale.

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

package openapi

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed food.yaml
var spec []byte

// Schema is a parsed and validated copy of the food API contract, along with
// a router to map requests to operations.
type Schema struct {
	// Spec is the OpenAPI document.
	Spec *openapi3.T

	// Router resolves a request to an operation in the document.
	Router routers.Router
}

// NewSchema loads the embedded contract.  Each call returns a fresh copy so
// callers are free to mutate it.
func NewSchema() (*Schema, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("loading food api contract: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating food api contract: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating contract router: %w", err)
	}

	s := &Schema{
		Spec:   doc,
		Router: router,
	}

	return s, nil
}

// RawSpec returns the contract as it is embedded.
func RawSpec() []byte {
	return spec
}
