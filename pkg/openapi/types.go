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
	"errors"
	"fmt"
)

var ErrInvalidProductType = errors.New("invalid product type: must be one of FRUIT or VEGETABLE")

// ProductType is the product category.
type ProductType string

const (
	ProductTypeFruit     ProductType = "FRUIT"
	ProductTypeVegetable ProductType = "VEGETABLE"
)

// Valid reports whether the type is one the service knows about.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeFruit, ProductTypeVegetable:
		return true
	}

	return false
}

func (t *ProductType) UnmarshalText(text []byte) error {
	candidate := ProductType(text)

	if !candidate.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidProductType, string(text))
	}

	*t = candidate

	return nil
}

// Product is a product as returned by the list endpoint.  The category is
// kept as listed, the catalogue may hold categories this package doesn't know.
type Product struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Exotic bool   `json:"exotic"`
}

// ProductCreate is the body of a create request.  Exotic is optional, when
// omitted the service defaults it to false.
type ProductCreate struct {
	Name   string      `json:"name"`
	Type   ProductType `json:"type"`
	Exotic *bool       `json:"exotic,omitempty"`
}
