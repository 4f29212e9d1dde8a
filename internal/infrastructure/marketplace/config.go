// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package marketplace

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var defaultBaseURL = "http://localhost:8080"

// Config holds the configuration for the marketplace search client
type Config struct {
	// BaseURL is the origin serving /api/search
	BaseURL string

	// AuthToken is sent as a bearer token when set. Session handling lives
	// outside this module; the token is consumed as-is.
	AuthToken string

	// Timeout is the HTTP client timeout for API requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
}

// DefaultConfig returns a Config that talks to a local endpoint and never
// retries on its own
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		Timeout:    15 * time.Second,
		MaxRetries: 0,
		RetryDelay: 500 * time.Millisecond,
	}
}

// NewConfig creates a new marketplace configuration with the provided parameters
func NewConfig(baseURL, authToken, timeout string, maxRetries int, retryDelay string) (Config, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid base URL %q", baseURL)
	}

	if timeout == "" {
		timeout = "15s"
	}
	timeoutDuration, err := time.ParseDuration(timeout)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timeout duration: %w", err)
	}

	if maxRetries < 0 {
		return Config{}, fmt.Errorf("max retries must not be negative: %d", maxRetries)
	}

	if retryDelay == "" {
		retryDelay = "500ms"
	}
	retryDelayDuration, err := time.ParseDuration(retryDelay)
	if err != nil {
		return Config{}, fmt.Errorf("invalid retry delay duration: %w", err)
	}

	return Config{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AuthToken:  authToken,
		Timeout:    timeoutDuration,
		MaxRetries: maxRetries,
		RetryDelay: retryDelayDuration,
	}, nil
}
