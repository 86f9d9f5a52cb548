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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/food/pkg/openapi"
	"github.com/unikorn-cloud/food/test/api"
)

var _ = Describe("Product Lifecycle", Serial, func() {
	BeforeEach(func() {
		Expect(client.ResetData(ctx)).To(Succeed())
		api.ResetDataOnCleanup(client, ctx)
	})

	Context("When creating a product", func() {
		DescribeTable("should list any valid product once created",
			func(payload openapi.ProductCreate) {
				api.CreateProducts(client, ctx, payload)

				products, err := client.ListProducts(ctx)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyProductFields(products, payload)
			},
			Entry("an exotic fruit", api.NewProductPayload().WithExotic(true).Build()),
			Entry("a common vegetable", api.NewProductPayload().WithType(openapi.ProductTypeVegetable).Build()),
			Entry("a product with a Cyrillic name", api.NewProductPayload().WithName("Маракуйя "+api.GenerateTestID()).WithExotic(true).Build()),
			Entry("a product with a multi word name", api.NewProductPayload().WithName("Red hot chili pepper "+api.GenerateTestID()).WithType(openapi.ProductTypeVegetable).Build()),
			Entry("a product without an exotic flag", api.NewProductPayload().WithoutExotic().Build()),
		)

		It("should keep every product created since the last reset", func() {
			first := api.NewProductPayload().Build()
			second := api.NewProductPayload().WithType(openapi.ProductTypeVegetable).Build()

			api.CreateProducts(client, ctx, first, second)
			api.VerifyProductsExist(client, ctx, first.Name, second.Name)
		})
	})

	Context("When resetting fixture data", func() {
		It("should return to the default catalogue", func() {
			defaults, err := client.ListProductNames(ctx)
			Expect(err).NotTo(HaveOccurred())

			created := api.NewProductPayload().Build()
			api.CreateProducts(client, ctx, created)
			api.VerifyProductsExist(client, ctx, created.Name)

			Expect(client.ResetData(ctx)).To(Succeed())

			names := api.VerifyProductsDoNotExist(client, ctx, created.Name)
			Expect(names).To(ConsistOf(defaults))
		})

		It("should be idempotent", func() {
			Expect(client.ResetData(ctx)).To(Succeed())
			Expect(client.ResetData(ctx)).To(Succeed())

			products, err := client.ListProducts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(products)).To(BeNumerically(">=", 0))
		})

		It("should still respond to the health check", func() {
			api.CreateProducts(client, ctx, api.NewProductPayload().Build())
			Expect(client.HealthCheck(ctx)).To(Succeed())

			Expect(client.ResetData(ctx)).To(Succeed())
			Expect(client.HealthCheck(ctx)).To(Succeed())
		})
	})
})
