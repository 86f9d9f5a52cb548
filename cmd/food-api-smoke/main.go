/*
Copyright 2025 the Unikorn Authors.
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

package main

import (
	"context"
	goflag "flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"github.com/unikorn-cloud/food/test/api"
	"github.com/unikorn-cloud/food/test/stub"

	"k8s.io/apimachinery/pkg/util/wait"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const application = "food-api-smoke"

type options struct {
	config      *api.TestConfig
	useStub     bool
	waitTimeout time.Duration
	verbose     bool
	zapOptions  zap.Options
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.config.BaseURL, "base-url", o.config.BaseURL, "Food API base URL, defaults to API_BASE_URL.")
	f.StringVar(&o.config.SessionID, "session-id", o.config.SessionID, "JSESSIONID cookie value, defaults to API_SESSION_ID.")
	f.DurationVar(&o.config.RequestTimeout, "request-timeout", o.config.RequestTimeout, "Per request timeout.")
	f.BoolVar(&o.config.ValidateResponses, "validate-responses", o.config.ValidateResponses, "Validate responses against the OpenAPI contract.")
	f.BoolVar(&o.config.LogRequests, "log-requests", o.config.LogRequests, "Log every request.")
	f.BoolVar(&o.config.LogResponses, "log-responses", o.config.LogResponses, "Log every response body.")
	f.BoolVar(&o.useStub, "stub", false, "Run against an in-process stub service instead of base-url.")
	f.DurationVar(&o.waitTimeout, "wait-timeout", 0, "How long to wait for the service to become healthy before running, zero disables waiting.")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging.")

	flags := goflag.NewFlagSet("", goflag.ExitOnError)
	o.zapOptions.BindFlags(flags)
	f.AddGoFlagSet(flags)
}

func (o *options) setupLogging() {
	if o.verbose {
		o.zapOptions.Level = zapcore.DebugLevel
	}

	log.SetLogger(zap.New(zap.UseFlagOptions(&o.zapOptions)))
}

// waitForHealthy polls the health check until it succeeds or the timeout expires.
func waitForHealthy(ctx context.Context, client api.ProductAPI, timeout time.Duration) error {
	logger := log.FromContext(ctx)

	return wait.PollUntilContextTimeout(ctx, time.Second, timeout, true, func(ctx context.Context) (bool, error) {
		if err := client.HealthCheck(ctx); err != nil {
			logger.V(1).Info("service not healthy yet", "error", err.Error())

			return false, nil
		}

		return true, nil
	})
}

func run(ctx context.Context, o *options) error {
	logger := log.FromContext(ctx)

	if o.useStub {
		if o.config.SessionID == "" {
			o.config.SessionID = api.GenerateTestID()
		}

		server, _, err := stub.NewServer(o.config.SessionID)
		if err != nil {
			return err
		}

		defer server.Close()

		o.config.BaseURL = server.URL

		logger.Info("using stub service", "url", server.URL)
	}

	if o.config.UsesStub() {
		return fmt.Errorf("%w: set --base-url, API_BASE_URL or --stub", api.ErrMissingConfiguration)
	}

	if err := o.config.Validate(); err != nil {
		return err
	}

	client, err := api.NewAPIClientWithConfig(o.config)
	if err != nil {
		return err
	}

	client.SetLogWriter(os.Stderr)

	if o.waitTimeout > 0 {
		logger.Info("waiting for service", "url", o.config.BaseURL, "timeout", o.waitTimeout)

		if err := waitForHealthy(ctx, client, o.waitTimeout); err != nil {
			return fmt.Errorf("waiting for service: %w", err)
		}
	}

	return api.RunSmoke(ctx, client, logger.WithName("smoke"))
}

func main() {
	o := &options{
		config: api.EnvironmentConfig(),
	}

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	o.setupLogging()

	logger := log.Log.WithName("init")
	logger.Info("smoke test starting", "application", application, "url", o.config.BaseURL)

	ctx := log.IntoContext(cr.SetupSignalHandler(), log.Log.WithName(application))

	if err := run(ctx, o); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
