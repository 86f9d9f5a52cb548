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
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
)

var ErrContractViolation = errors.New("response violates the food api contract")

// ResponseValidator checks responses returned by the service against the
// embedded contract.
type ResponseValidator struct {
	schema *Schema
}

// NewResponseValidator loads the contract and returns a validator for it.
func NewResponseValidator() (*ResponseValidator, error) {
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}

	return &ResponseValidator{
		schema: schema,
	}, nil
}

// Validate checks that the status code is documented for the operation the
// request maps to, and that the body matches the documented media type and
// schema.  The request body is not inspected, it may already be consumed.
func (v *ResponseValidator) Validate(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := v.schema.Router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrContractViolation, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s status=%d: %w", ErrContractViolation, req.Method, req.URL.Path, status, err)
	}

	return nil
}

// RequestValidator checks requests sent to the service against the embedded
// contract.  It is used by test doubles that stand in for the service.
type RequestValidator struct {
	schema *Schema
}

// NewRequestValidator loads the contract and returns a validator for it.
func NewRequestValidator() (*RequestValidator, error) {
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}

	return &RequestValidator{
		schema: schema,
	}, nil
}

// Validate checks the request, including its body.  The body is restored after
// reading so handlers can decode it.
func (v *RequestValidator) Validate(req *http.Request) error {
	route, pathParams, err := v.schema.Router.FindRoute(req)
	if err != nil {
		return err
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	return openapi3filter.ValidateRequest(req.Context(), input)
}
