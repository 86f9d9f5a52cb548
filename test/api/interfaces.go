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

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

package api

import (
	"context"

	"github.com/unikorn-cloud/food/pkg/openapi"
)

// ProductAPI is the set of food API operations the harness performs.
type ProductAPI interface {
	HealthCheck(ctx context.Context) error
	ListProducts(ctx context.Context) ([]openapi.Product, error)
	ListProductNames(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, product openapi.ProductCreate) error
	ResetData(ctx context.Context) error
}
