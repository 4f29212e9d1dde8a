// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"time"
)

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests.
	// Zero means a failed request is reported to the caller immediately.
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// RetryBackoff enables exponential backoff for retries
	RetryBackoff bool

	// UserAgent is sent with every request when set
	UserAgent string
}

// DefaultConfig returns a Config that never retries; searches are re-run by
// the user, not by the client.
func DefaultConfig() Config {
	return Config{
		Timeout:      15 * time.Second,
		MaxRetries:   0,
		RetryDelay:   500 * time.Millisecond,
		RetryBackoff: true,
		UserAgent:    "carsearch",
	}
}
