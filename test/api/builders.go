/*
Copyright 2024-2025 the Unikorn Authors.
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

package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/unikorn-cloud/food/pkg/openapi"

	"k8s.io/utils/ptr"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// ProductPayloadBuilder builds product payloads for testing.
type ProductPayloadBuilder struct {
	payload openapi.ProductCreate
}

// NewProductPayload creates a new, uniquely named, non-exotic fruit.
func NewProductPayload() *ProductPayloadBuilder {
	return &ProductPayloadBuilder{
		payload: openapi.ProductCreate{
			Name:   GenerateTestID(),
			Type:   openapi.ProductTypeFruit,
			Exotic: ptr.To(false),
		},
	}
}

// WithName sets the product name.
func (b *ProductPayloadBuilder) WithName(name string) *ProductPayloadBuilder {
	b.payload.Name = name
	return b
}

// WithType sets the product category.
func (b *ProductPayloadBuilder) WithType(t openapi.ProductType) *ProductPayloadBuilder {
	b.payload.Type = t
	return b
}

// WithExotic sets the exotic flag.
func (b *ProductPayloadBuilder) WithExotic(exotic bool) *ProductPayloadBuilder {
	b.payload.Exotic = ptr.To(exotic)
	return b
}

// WithoutExotic omits the exotic flag so the service default applies.
func (b *ProductPayloadBuilder) WithoutExotic() *ProductPayloadBuilder {
	b.payload.Exotic = nil
	return b
}

// Build returns the completed product payload.
func (b *ProductPayloadBuilder) Build() openapi.ProductCreate {
	return b.payload
}
