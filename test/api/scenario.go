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

package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

var (
	ErrProductsMissing  = errors.New("expected products are missing")
	ErrProductsRetained = errors.New("products survived a data reset")
)

// SmokeStep is a single named step of the reference scenario.
type SmokeStep struct {
	Name string
	Run  func(ctx context.Context) error
}

// SmokeSteps returns the reference scenario in the order it must run: later
// steps depend on the server state earlier ones leave behind.
func SmokeSteps(client ProductAPI, log logr.Logger) []SmokeStep {
	return []SmokeStep{
		{
			Name: "health check",
			Run:  client.HealthCheck,
		},
		{
			Name: "list products",
			Run: func(ctx context.Context) error {
				products, err := client.ListProducts(ctx)
				if err != nil {
					return err
				}

				log.V(1).Info("listed products", "count", len(products), "names", ProductNames(products))

				return nil
			},
		},
		{
			Name: "create fruit",
			Run: func(ctx context.Context) error {
				return client.CreateProduct(ctx, FruitPayload())
			},
		},
		{
			Name: "create vegetable",
			Run: func(ctx context.Context) error {
				return client.CreateProduct(ctx, VegetablePayload())
			},
		},
		{
			Name: "verify products exist",
			Run: func(ctx context.Context) error {
				names, err := client.ListProductNames(ctx)
				if err != nil {
					return err
				}

				if missing := MissingNames(names, ExpectedProductNames()); len(missing) > 0 {
					return fmt.Errorf("%w: %v", ErrProductsMissing, missing)
				}

				return nil
			},
		},
		{
			Name: "reset data",
			Run:  client.ResetData,
		},
		{
			Name: "verify products reset",
			Run: func(ctx context.Context) error {
				names, err := client.ListProductNames(ctx)
				if err != nil {
					return err
				}

				log.V(1).Info("listed products after reset", "names", names)

				if present := PresentNames(names, ExpectedProductNames()); len(present) > 0 {
					return fmt.Errorf("%w: %v", ErrProductsRetained, present)
				}

				return nil
			},
		},
	}
}

// RunSmoke runs the reference scenario and stops at the first failure.
func RunSmoke(ctx context.Context, client ProductAPI, log logr.Logger) error {
	for i, step := range SmokeSteps(client, log) {
		log.Info("running step", "step", i+1, "name", step.Name)

		if err := step.Run(ctx); err != nil {
			log.Error(err, "step failed", "step", i+1, "name", step.Name)

			return fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
	}

	log.Info("scenario passed")

	return nil
}
