// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package marketplace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	searcherrors "github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "results": [
    {
      "_id": "64f1",
      "title": "2019 Toyota Camry XSE",
      "make": "Toyota",
      "model": "Camry",
      "year": 2019,
      "price": 1450000,
      "mileage": 42000,
      "location": "Almaty",
      "bodyType": "Sedan",
      "fuelType": "Petrol",
      "transmission": "Automatic",
      "condition": "used",
      "features": ["Sunroof"],
      "listingType": "sale",
      "images": ["https://img.example/1.jpg"],
      "views": 311,
      "listingTier": "featured",
      "createdAt": "2026-09-01T10:00:00Z",
      "owner": {"id": "u1", "name": "Aigerim", "isVerified": true, "isDealerVerified": false}
    },
    {
      "id": "r9",
      "title": "Kia Sportage daily rental",
      "make": "Kia",
      "model": "Sportage",
      "year": 2022,
      "pricePerDay": 25000,
      "mileage": 12000,
      "location": "Astana",
      "listingType": "rental",
      "images": [],
      "views": 12,
      "createdAt": "not-a-date"
    }
  ],
  "facets": {
    "makes": [{"value": "Toyota", "count": 14}, {"_id": "Kia", "count": 3}, {"count": 9}],
    "bodyTypes": [{"value": "Sedan", "count": 10}],
    "priceRange": {"min": 500000, "max": 9000000, "avg": 2100000.5}
  },
  "searchInfo": {"totalResults": 17, "searchTime": 23},
  "pagination": {"page": 2, "pages": 2}
}`

func newTestConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Timeout:    5 * time.Second,
		MaxRetries: 0,
		RetryDelay: 10 * time.Millisecond,
	}
}

func TestSearchListings(t *testing.T) {
	var gotQuery url.Values
	var gotPath, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", constants.ContentTypeJSON)
		_, err := w.Write([]byte(sampleResponse))
		assert.NoError(t, err)
	}))
	defer ts.Close()

	config := newTestConfig(ts.URL)
	config.AuthToken = "session-token"
	searcher := NewListingSearcher(config)

	params := url.Values{}
	params.Set("make", "Toyota")
	params.Set("page", "2")
	params.Set("limit", "12")

	page, err := searcher.SearchListings(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, constants.SearchPath, gotPath)
	assert.Equal(t, "Toyota", gotQuery.Get("make"))
	assert.Equal(t, "12", gotQuery.Get("limit"))
	assert.Equal(t, "Bearer session-token", gotAuth)

	assert.Equal(t, 17, page.TotalResults)
	assert.Equal(t, 23, page.SearchTimeMs)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)

	require.Len(t, page.Results, 2)
	sale := page.Results[0]
	assert.Equal(t, "64f1", sale.ID)
	assert.Equal(t, model.TierFeatured, sale.Tier)
	assert.Equal(t, 1450000, sale.Price)
	assert.True(t, sale.Owner.Verified)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), sale.CreatedAt)
	assert.False(t, sale.IsRental())

	rental := page.Results[1]
	assert.Equal(t, "r9", rental.ID)
	assert.Equal(t, model.TierStandard, rental.Tier)
	assert.True(t, rental.IsRental())
	assert.True(t, rental.CreatedAt.IsZero())

	assert.Equal(t, []model.FacetBucket{{Value: "Toyota", Count: 14}, {Value: "Kia", Count: 3}}, page.Facets.Makes)
	assert.Equal(t, 10, model.Count(page.Facets.BodyTypes, "Sedan"))
	assert.Empty(t, page.Facets.FuelTypes)
	assert.Equal(t, 9000000, page.Facets.PriceRange.Max)
}

func TestSearchListingsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"results": [], "facets": {}, "searchInfo": {"totalResults": 0, "searchTime": 1}, "pagination": {"page": 1, "pages": 0}}`))
		assert.NoError(t, err)
	}))
	defer ts.Close()

	page, err := NewListingSearcher(newTestConfig(ts.URL)).SearchListings(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.TotalResults)
}

func TestSearchListingsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "server error maps to status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				var status searcherrors.Status
				require.True(t, errors.As(err, &status))
				assert.Equal(t, http.StatusInternalServerError, status.Code)
			},
		},
		{
			name: "not found maps to status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			check: func(t *testing.T, err error) {
				var status searcherrors.Status
				require.True(t, errors.As(err, &status))
				assert.Equal(t, http.StatusNotFound, status.Code)
			},
		},
		{
			name: "redirect status with a body is not a result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusMultipleChoices)
				_, _ = w.Write([]byte(`{"results":[{"id":"stale"}],"searchInfo":{"totalResults":1},"pagination":{"page":1,"pages":1}}`))
			},
			check: func(t *testing.T, err error) {
				var status searcherrors.Status
				require.True(t, errors.As(err, &status))
				assert.Equal(t, http.StatusMultipleChoices, status.Code)
			},
		},
		{
			name: "malformed body maps to decode",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results": [`))
			},
			check: func(t *testing.T, err error) {
				assert.IsType(t, searcherrors.Decode{}, err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			page, err := NewListingSearcher(newTestConfig(ts.URL)).SearchListings(context.Background(), url.Values{})
			require.Error(t, err)
			assert.Nil(t, page)
			assert.True(t, searcherrors.IsSearchFailure(err))
			tc.check(t, err)
		})
	}
}

func TestSearchListingsTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := ts.URL
	ts.Close()

	_, err := NewListingSearcher(newTestConfig(baseURL)).SearchListings(context.Background(), url.Values{})
	require.Error(t, err)
	assert.IsType(t, searcherrors.Transport{}, err)
	assert.True(t, searcherrors.IsSearchFailure(err))
}

func TestIsReady(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get(constants.LimitParam))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	assert.NoError(t, NewListingSearcher(newTestConfig(ts.URL)).IsReady(context.Background()))

	ts.Close()
	err := NewListingSearcher(newTestConfig(ts.URL)).IsReady(context.Background())
	assert.IsType(t, searcherrors.ServiceUnavailable{}, err)
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		timeout     string
		maxRetries  int
		retryDelay  string
		expectError bool
		expected    Config
	}{
		{
			name:     "defaults",
			expected: Config{BaseURL: "http://localhost:8080", Timeout: 15 * time.Second, RetryDelay: 500 * time.Millisecond},
		},
		{
			name:       "custom values trim trailing slash",
			baseURL:    "https://cars.example/",
			timeout:    "3s",
			maxRetries: 2,
			retryDelay: "1s",
			expected:   Config{BaseURL: "https://cars.example", Timeout: 3 * time.Second, MaxRetries: 2, RetryDelay: time.Second},
		},
		{name: "relative base URL", baseURL: "/api", expectError: true},
		{name: "bad timeout", timeout: "soon", expectError: true},
		{name: "negative retries", maxRetries: -1, expectError: true},
		{name: "bad retry delay", retryDelay: "later", expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, err := NewConfig(tc.baseURL, "", tc.timeout, tc.maxRetries, tc.retryDelay)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, config)
		})
	}
}

func TestNewSearchResponseRoundTrip(t *testing.T) {
	page := &model.SearchPage{
		Results: []model.SearchResult{
			{ID: "1", Title: "Camry", Make: "Toyota", Tier: model.TierPremium, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
		Facets: model.SearchFacets{
			Makes:      []model.FacetBucket{{Value: "Toyota", Count: 1}},
			PriceRange: model.PriceRange{Min: 1, Max: 2, Avg: 1.5},
		},
		TotalResults: 1,
		SearchTimeMs: 4,
		Page:         1,
		TotalPages:   1,
	}

	wire := NewSearchResponse(page)
	assert.Equal(t, "2026-01-02T03:04:05Z", wire.Results[0].CreatedAt)
	assert.Equal(t, "premium", wire.Results[0].ListingTier)

	back := wire.ToDomain()
	assert.Equal(t, page.Results[0].CreatedAt, back.Results[0].CreatedAt)
	assert.Equal(t, page.Facets.Makes, back.Facets.Makes)
	assert.Equal(t, page.TotalResults, back.TotalResults)
}
