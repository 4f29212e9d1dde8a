// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
)

// ListingSearcher defines the behavior of the remote listing search endpoint.
// The engine only ever hands it serialized query parameters, so the same
// contract covers the HTTP client and in-memory fakes.
type ListingSearcher interface {
	// SearchListings runs one search for the given query parameters
	SearchListings(ctx context.Context, params url.Values) (*model.SearchPage, error)

	// IsReady checks if the search endpoint is reachable
	IsReady(ctx context.Context) error
}
