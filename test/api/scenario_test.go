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

package api_test

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unikorn-cloud/food/pkg/openapi"
	"github.com/unikorn-cloud/food/test/api"
	"github.com/unikorn-cloud/food/test/api/mock"
	"github.com/unikorn-cloud/food/test/stub"
)

func TestSmokeStepOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	steps := api.SmokeSteps(mock.NewMockProductAPI(ctrl), logr.Discard())

	names := make([]string, len(steps))
	for i := range steps {
		names[i] = steps[i].Name
	}

	require.Equal(t, []string{
		"health check",
		"list products",
		"create fruit",
		"create vegetable",
		"verify products exist",
		"reset data",
		"verify products reset",
	}, names)
}

func TestRunSmokeAgainstStub(t *testing.T) {
	t.Parallel()

	client, service := newStubClient(t)

	require.NoError(t, api.RunSmoke(t.Context(), client, logr.Discard()))
	require.Equal(t, stub.DefaultProducts(), service.Products())
}

func TestRunSmokeStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockProductAPI(ctrl)

	errRejected := errors.New("rejected")

	gomock.InOrder(
		client.EXPECT().HealthCheck(gomock.Any()).Return(nil),
		client.EXPECT().ListProducts(gomock.Any()).Return([]openapi.Product{}, nil),
		client.EXPECT().CreateProduct(gomock.Any(), api.FruitPayload()).Return(errRejected),
	)

	err := api.RunSmoke(t.Context(), client, logr.Discard())
	require.ErrorIs(t, err, errRejected)
	require.ErrorContains(t, err, "step 3 (create fruit)")
}

func TestRunSmokeMissingProducts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockProductAPI(ctrl)

	gomock.InOrder(
		client.EXPECT().HealthCheck(gomock.Any()).Return(nil),
		client.EXPECT().ListProducts(gomock.Any()).Return([]openapi.Product{}, nil),
		client.EXPECT().CreateProduct(gomock.Any(), api.FruitPayload()).Return(nil),
		client.EXPECT().CreateProduct(gomock.Any(), api.VegetablePayload()).Return(nil),
		client.EXPECT().ListProductNames(gomock.Any()).Return([]string{api.FruitName}, nil),
	)

	err := api.RunSmoke(t.Context(), client, logr.Discard())
	require.ErrorIs(t, err, api.ErrProductsMissing)
	require.ErrorContains(t, err, api.VegetableName)
}

func TestRunSmokeProductsRetained(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewMockProductAPI(ctrl)

	gomock.InOrder(
		client.EXPECT().HealthCheck(gomock.Any()).Return(nil),
		client.EXPECT().ListProducts(gomock.Any()).Return([]openapi.Product{}, nil),
		client.EXPECT().CreateProduct(gomock.Any(), api.FruitPayload()).Return(nil),
		client.EXPECT().CreateProduct(gomock.Any(), api.VegetablePayload()).Return(nil),
		client.EXPECT().ListProductNames(gomock.Any()).Return(api.ExpectedProductNames(), nil),
		client.EXPECT().ResetData(gomock.Any()).Return(nil),
		client.EXPECT().ListProductNames(gomock.Any()).Return([]string{api.VegetableName}, nil),
	)

	err := api.RunSmoke(t.Context(), client, logr.Discard())
	require.ErrorIs(t, err, api.ErrProductsRetained)
	require.ErrorContains(t, err, "step 7 (verify products reset)")
}
