// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// RequestIDHeader is the header name for the request ID
const RequestIDHeader = "X-REQUEST-ID"

const (
	// SearchPath is the path of the listing search endpoint
	SearchPath = "/api/search"
	// ReadyzPath is the readiness probe of the development endpoint
	ReadyzPath = "/readyz"
	// ContentTypeJSON is the media type of search responses
	ContentTypeJSON = "application/json"
)
