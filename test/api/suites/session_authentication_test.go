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

var _ = Describe("Session Authentication", Serial, func() {
	var anonymous *api.APIClient

	BeforeEach(func() {
		if !config.EnforcesSession {
			Skip("ENFORCES_SESSION is not set for this service")
		}

		var err error

		anonymous, err = api.NewAPIClient(config, baseURL)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("When accessing the API without a valid session", func() {
		Describe("Given no session cookie", func() {
			It("should reject listing products", func() {
				anonymous.SetSessionID("")

				_, err := anonymous.ListProducts(ctx)
				Expect(err).To(MatchError(api.ErrUnexpectedStatus))
				Expect(err.Error()).To(ContainSubstring("401"))
			})

			It("should reject resetting data", func() {
				anonymous.SetSessionID("")

				Expect(anonymous.ResetData(ctx)).To(MatchError(api.ErrUnexpectedStatus))
			})
		})

		Describe("Given an unknown session cookie", func() {
			It("should reject product creation and leave the catalogue untouched", func() {
				api.ResetDataOnCleanup(client, ctx)

				anonymous.SetSessionID("00000000000000000000000000000000")

				payload := api.NewProductPayload().Build()

				err := anonymous.CreateProduct(ctx, payload)
				Expect(err).To(MatchError(api.ErrUnexpectedStatus))
				Expect(err.Error()).To(ContainSubstring("401"))

				api.VerifyProductsDoNotExist(client, ctx, payload.Name)
			})
		})
	})
})
