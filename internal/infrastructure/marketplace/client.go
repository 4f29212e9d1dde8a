// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	searcherrors "github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/httpclient"
)

// Client represents a marketplace search API client
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// Search calls GET /api/search with the given query parameters
func (c *Client) Search(ctx context.Context, params url.Values) (*SearchResponse, error) {
	var body SearchResponse
	if err := c.makeRequest(ctx, c.config.BaseURL+constants.SearchPath, params, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// makeRequest performs the GET using the generic HTTP client and decodes the
// JSON body into model. Every failure maps to a search failure class.
func (c *Client) makeRequest(ctx context.Context, rawURL string, params url.Values, model any) error {
	var headers map[string]string
	if c.config.AuthToken != "" {
		headers = map[string]string{
			"Authorization": fmt.Sprintf("Bearer %s", c.config.AuthToken),
		}
	}

	resp, err := c.httpClient.Get(ctx, rawURL, params, headers)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			return searcherrors.NewStatus(statusErr.StatusCode, "search endpoint returned an error", err)
		}
		return searcherrors.NewTransport("search request failed", err)
	}

	if err := json.Unmarshal(resp.Body, model); err != nil {
		return searcherrors.NewDecode("failed to decode search response", err)
	}

	return nil
}

// IsReady checks if the search endpoint answers an empty first-page query
func (c *Client) IsReady(ctx context.Context) error {
	params := url.Values{}
	params.Set(constants.PageParam, "1")
	params.Set(constants.LimitParam, "1")

	resp, err := c.httpClient.Get(ctx, c.config.BaseURL+constants.SearchPath, params, nil)
	if err != nil {
		return searcherrors.NewServiceUnavailable("search endpoint is not reachable", err)
	}

	if resp.StatusCode != http.StatusOK {
		return searcherrors.NewServiceUnavailable("search endpoint is not ready", fmt.Errorf("status code: %d", resp.StatusCode))
	}

	return nil
}

// NewClient creates a new marketplace search client
func NewClient(config Config) *Client {
	httpConfig := httpclient.Config{
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryDelay:   config.RetryDelay,
		RetryBackoff: true,
		UserAgent:    "carsearch",
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}
}
