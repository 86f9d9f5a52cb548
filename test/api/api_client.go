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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/food/pkg/openapi"
)

// SessionCookie is the name of the cookie carrying the session ID.
const SessionCookie = "JSESSIONID"

var ErrUnexpectedStatus = errors.New("unexpected status code")

type APIClient struct {
	baseURL   string
	client    *http.Client
	sessionID string
	config    *TestConfig
	endpoints *Endpoints
	validator *openapi.ResponseValidator
	out       io.Writer
}

// Ensure the client satisfies the interface fixtures are written against.
var _ ProductAPI = &APIClient{}

// NewAPIClientWithConfig returns a client for the configured service.
func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// NewAPIClient returns a client for the given service, overriding the
// configured base URL.  This is used to point the harness at a stub.
func NewAPIClient(config *TestConfig, baseURL string) (*APIClient, error) {
	return newAPIClientWithConfig(config, baseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		sessionID: config.SessionID,
		config:    config,
		endpoints: NewEndpoints(),
		out:       ginkgo.GinkgoWriter,
	}

	if config.ValidateResponses {
		validator, err := openapi.NewResponseValidator()
		if err != nil {
			return nil, err
		}

		c.validator = validator
	}

	return c, nil
}

// SetSessionID replaces the session presented on subsequent requests, an empty
// value sends no session cookie at all.
func (c *APIClient) SetSessionID(sessionID string) {
	c.sessionID = sessionID
}

// SetLogWriter redirects diagnostics, by default they go to the Ginkgo writer.
func (c *APIClient) SetLogWriter(w io.Writer) {
	c.out = w
}

func (c *APIClient) logf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.logf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	c.logf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs the request and response when the status doesn't match.
func (c *APIClient) logUnexpectedStatus(req *http.Request, requestBody []byte, expectedStatus, actualStatus int, body, traceParent string) {
	c.logf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s traceparent=%s\n", req.Method, req.URL.Path, expectedStatus, actualStatus, body, traceParent)

	if len(requestBody) > 0 {
		c.logf("[%s %s] request body: %s\n", req.Method, req.URL.Path, string(requestBody))
	}

	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.logf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body []byte, expectedStatus int) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	// Every call declares JSON, whether or not it has a body.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: c.sessionID})
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.logf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.logf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(req, body, expectedStatus, resp.StatusCode, string(respBody), traceParent)
		return resp, respBody, fmt.Errorf("%w: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, expectedStatus, resp.StatusCode, string(respBody), extractTraceID(traceParent))
	}

	if c.validator != nil {
		// The contract is rooted at the service, not at any prefix in the base URL.
		contractReq := req.Clone(ctx)
		contractReq.URL.Path = path

		if err := c.validator.Validate(ctx, contractReq, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "validating response")
			return resp, respBody, fmt.Errorf("%w (trace ID: %s)", err, extractTraceID(traceParent))
		}
	}

	return resp, respBody, nil
}

// HealthCheck checks the service is serving requests.
func (c *APIClient) HealthCheck(ctx context.Context) error {
	//nolint:bodyclose // response body is closed in doRequest
	if _, _, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Root(), nil, http.StatusOK); err != nil {
		return fmt.Errorf("checking health: %w", err)
	}

	return nil
}

// ListProducts lists all products.
func (c *APIClient) ListProducts(ctx context.Context) ([]openapi.Product, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListProducts(), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	var products []openapi.Product
	if err := json.Unmarshal(respBody, &products); err != nil {
		return nil, fmt.Errorf("unmarshaling products response: %w", err)
	}

	// An empty list must still be an array.
	if products == nil {
		return nil, fmt.Errorf("products response is not a JSON array: %s", string(respBody))
	}

	return products, nil
}

// ListProductNames lists the names of all products, in the order the service
// returned them.
func (c *APIClient) ListProductNames(ctx context.Context) ([]string, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	return ProductNames(products), nil
}

// CreateProduct creates a new product.  The response body is not inspected.
func (c *APIClient) CreateProduct(ctx context.Context, product openapi.ProductCreate) error {
	body, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshaling product body: %w", err)
	}

	//nolint:bodyclose // response body is closed in doRequest
	if _, _, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateProduct(), body, http.StatusOK); err != nil {
		return fmt.Errorf("creating product %q: %w", product.Name, err)
	}

	return nil
}

// ResetData returns the service to its default catalogue.
func (c *APIClient) ResetData(ctx context.Context) error {
	//nolint:bodyclose // response body is closed in doRequest
	if _, _, err := c.doRequest(ctx, http.MethodPost, c.endpoints.ResetData(), nil, http.StatusOK); err != nil {
		return fmt.Errorf("resetting data: %w", err)
	}

	return nil
}

// ProductNames extracts product names from a list of products.
func ProductNames(products []openapi.Product) []string {
	names := make([]string, len(products))

	for i := range products {
		names[i] = products[i].Name
	}

	return names
}
