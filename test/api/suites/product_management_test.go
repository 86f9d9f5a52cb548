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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/food/test/api"
)

// These specs run in order against shared server state, each one builds on
// what the last left behind.
var _ = Describe("Core Product Management", Ordered, Serial, func() {
	AfterAll(func() {
		// Leave the default catalogue behind even if a spec failed before
		// the reset spec got to run.
		if err := client.ResetData(ctx); err != nil {
			GinkgoWriter.Printf("Warning: Failed to reset fixture data: %v\n", err)
		}
	})

	Context("When checking the service is available", func() {
		It("should respond to the health check", func() {
			Expect(client.HealthCheck(ctx)).To(Succeed())
		})
	})

	Context("When listing products", func() {
		It("should return a list of products", func() {
			products, err := client.ListProducts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(products)).To(BeNumerically(">=", 0))

			GinkgoWriter.Printf("Found %d products: %v\n", len(products), api.ProductNames(products))
		})
	})

	Context("When creating products", func() {
		It("should create an exotic fruit", func() {
			api.CreateProducts(client, ctx, api.FruitPayload())
		})

		It("should create an exotic vegetable", func() {
			api.CreateProducts(client, ctx, api.VegetablePayload())
		})
	})

	Context("When verifying created products", func() {
		It("should list all created products", func() {
			names := api.VerifyProductsExist(client, ctx, api.ExpectedProductNames()...)

			GinkgoWriter.Printf("Product list: %v\n", names)

			products, err := client.ListProducts(ctx)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyProductFields(products, api.FruitPayload())
			api.VerifyProductFields(products, api.VegetablePayload())
		})
	})

	Context("When resetting fixture data", func() {
		It("should remove the created products", func() {
			Expect(client.ResetData(ctx)).To(Succeed())

			names := api.VerifyProductsDoNotExist(client, ctx, api.ExpectedProductNames()...)

			GinkgoWriter.Printf("Product list after reset: %v\n", names)
		})
	})
})
