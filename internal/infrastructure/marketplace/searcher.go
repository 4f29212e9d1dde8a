// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package marketplace

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
)

// ListingSearcher implements the port.ListingSearcher interface over HTTP
type ListingSearcher struct {
	client *Client
}

// SearchListings runs one search against the remote endpoint
func (s *ListingSearcher) SearchListings(ctx context.Context, params url.Values) (*model.SearchPage, error) {
	slog.DebugContext(ctx, "searching listings via marketplace API",
		"base_url", s.client.config.BaseURL,
		"query", params.Encode(),
	)

	resp, err := s.client.Search(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "error searching listings", "error", err)
		return nil, err
	}

	page := resp.ToDomain()

	slog.DebugContext(ctx, "successfully searched listings",
		"results", len(page.Results),
		"total_results", page.TotalResults,
		"page", page.Page,
		"pages", page.TotalPages,
	)

	return page, nil
}

// IsReady checks if the search endpoint is ready to serve requests
func (s *ListingSearcher) IsReady(ctx context.Context) error {
	return s.client.IsReady(ctx)
}

// NewListingSearcher creates a marketplace-backed listing searcher
func NewListingSearcher(config Config) *ListingSearcher {
	return &ListingSearcher{
		client: NewClient(config),
	}
}
