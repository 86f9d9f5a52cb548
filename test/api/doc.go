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

// Package api provides integration test utilities for the Food API.
//
// # Client
//
// APIClient is a thin net/http client with the features the suites need:
//   - the configured session is sent as a JSESSIONID cookie on every call
//   - every call declares JSON content and accept types
//   - W3C trace context is generated per request for log correlation
//   - unexpected status codes are logged with the full response body
//   - responses are optionally checked against the embedded OpenAPI contract
//
// # Configuration
//
// Settings come from the environment, or a test/.env file.  When API_BASE_URL
// is unset the suites start the in-memory stub from the stub package, so the
// harness can be run without a deployed service:
//
//	API_BASE_URL=http://localhost:8080 API_SESSION_ID=... ginkgo ./test/api/suites
//
// # Ordering
//
// The reference specs share server state: products created by one spec are
// asserted by a later one and cleared by a reset.  They live in a single
// Ordered, Serial container and must not be randomized or parallelized.
package api
