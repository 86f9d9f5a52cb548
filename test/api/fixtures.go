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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"slices"

	"github.com/spjmurray/go-util/pkg/set"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/food/pkg/openapi"
)

// Reference fixture data.
const (
	FruitName   = "Банан"
	FruitType   = openapi.ProductTypeFruit
	FruitExotic = true

	VegetableName   = "Артишок"
	VegetableType   = openapi.ProductTypeVegetable
	VegetableExotic = true
)

// FruitPayload is the reference fruit.
func FruitPayload() openapi.ProductCreate {
	return NewProductPayload().
		WithName(FruitName).
		WithType(FruitType).
		WithExotic(FruitExotic).
		Build()
}

// VegetablePayload is the reference vegetable.
func VegetablePayload() openapi.ProductCreate {
	return NewProductPayload().
		WithName(VegetableName).
		WithType(VegetableType).
		WithExotic(VegetableExotic).
		Build()
}

// ExpectedProductNames are the names the reference scenario creates.
func ExpectedProductNames() []string {
	return []string{FruitName, VegetableName}
}

// MissingNames returns the expected names that are not present in actual,
// sorted.  Duplicates on either side are irrelevant.
func MissingNames(actual, expected []string) []string {
	missing := set.New[string](expected...).Difference(set.New[string](actual...))

	return slices.Sorted(missing.All())
}

// PresentNames returns the candidate names that are present in actual, sorted.
func PresentNames(actual, candidates []string) []string {
	present := set.New[string](candidates...).Intersection(set.New[string](actual...))

	return slices.Sorted(present.All())
}

// CreateProducts creates each product in turn, failing the spec on the first error.
func CreateProducts(client ProductAPI, ctx context.Context, products ...openapi.ProductCreate) {
	for _, product := range products {
		Expect(client.CreateProduct(ctx, product)).To(Succeed(), "Expected product %q to be created", product.Name)

		GinkgoWriter.Printf("Created product %q type=%s\n", product.Name, product.Type)
	}
}

// ResetDataOnCleanup schedules a fixture reset, this runs whether the test passes
// or fails so later suites start from the default catalogue.
func ResetDataOnCleanup(client ProductAPI, ctx context.Context) {
	DeferCleanup(func() {
		if err := client.ResetData(ctx); err != nil {
			GinkgoWriter.Printf("Warning: Failed to reset fixture data: %v\n", err)
		} else {
			GinkgoWriter.Printf("Successfully reset fixture data\n")
		}
	})
}

// VerifyProductPresence verifies that products are present in the list.
func VerifyProductPresence(names []string, expectedNames []string) {
	Expect(MissingNames(names, expectedNames)).To(BeEmpty(), "Expected products to be present in the list %v", names)
}

// VerifyProductAbsence verifies that products are absent from the list.
func VerifyProductAbsence(names []string, unexpectedNames []string) {
	Expect(PresentNames(names, unexpectedNames)).To(BeEmpty(), "Expected products to be absent from the list %v", names)
}

// VerifyProductsExist lists products and verifies the expected ones are present.
func VerifyProductsExist(client ProductAPI, ctx context.Context, expectedNames ...string) []string {
	names, err := client.ListProductNames(ctx)
	Expect(err).NotTo(HaveOccurred())

	VerifyProductPresence(names, expectedNames)

	return names
}

// VerifyProductsDoNotExist lists products and verifies the given ones are absent.
func VerifyProductsDoNotExist(client ProductAPI, ctx context.Context, unexpectedNames ...string) []string {
	names, err := client.ListProductNames(ctx)
	Expect(err).NotTo(HaveOccurred())

	VerifyProductAbsence(names, unexpectedNames)

	return names
}

// VerifyProductFields verifies a listed product matches what was submitted.
// An omitted exotic flag is expected to default to false.
func VerifyProductFields(products []openapi.Product, expected openapi.ProductCreate) {
	index := slices.IndexFunc(products, func(p openapi.Product) bool {
		return p.Name == expected.Name
	})
	Expect(index).To(BeNumerically(">=", 0), "Expected product %q to be present in the list", expected.Name)

	product := products[index]
	Expect(product.Type).To(Equal(string(expected.Type)))

	exotic := expected.Exotic != nil && *expected.Exotic
	Expect(product.Exotic).To(Equal(exotic))
}
