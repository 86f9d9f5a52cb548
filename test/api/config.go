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

package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingConfiguration = errors.New("missing required configuration")

type TestConfig struct {
	// BaseURL is the food API. When empty the suites start a stub service.
	BaseURL           string
	SessionID         string
	RequestTimeout    time.Duration
	SkipIntegration   bool
	ValidateResponses bool
	// EnforcesSession enables specs that expect requests without a valid
	// session to be rejected.
	EnforcesSession bool
	LogRequests     bool
	LogResponses    bool
}

// UsesStub reports whether no live service is configured.
func (c *TestConfig) UsesStub() bool {
	return c.BaseURL == ""
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	config := EnvironmentConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnvironmentConfig reads configuration from environment variables and .env
// files without checking it, callers may override fields before calling
// Validate.
func EnvironmentConfig() *TestConfig {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:           os.Getenv("API_BASE_URL"),
		SessionID:         os.Getenv("API_SESSION_ID"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", true),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
	}

	// The stub always checks the session, a live service may not.
	config.EnforcesSession = getBoolWithDefault("ENFORCES_SESSION", config.UsesStub())

	return config
}

// Validate checks that all required configuration values are set.
func (c *TestConfig) Validate() error {
	return validateRequiredFields(c)
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"test/.env",          // From the repository root
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Load never overrides variables that are already set.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	// Nothing is required when running against the stub, it is configured
	// from whatever we have.
	if config.UsesStub() {
		return nil
	}

	var missing []string

	required := map[string]string{
		"API_SESSION_ID": config.SessionID,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file, or the gh secrets", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return nil
}
