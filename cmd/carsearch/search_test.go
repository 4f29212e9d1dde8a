// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAPI(t *testing.T) (*httptest.Server, *mock.ListingSearcher) {
	t.Helper()
	searcher := mock.NewSampleListingSearcher()
	srv := httptest.NewServer(newHTTPHandler(context.Background(), serveConfig{}, searcher))
	t.Cleanup(srv.Close)
	return srv, searcher
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestSearchCommand(t *testing.T) {
	srv, searcher := newMockAPI(t)

	out, _, err := runCommand(t, "search", "--api-url", srv.URL,
		"--make", "Toyota", "--minPrice", "500000", "--maxPrice", "2000000")

	require.NoError(t, err)
	assert.Contains(t, out, "3 results (page 1 of 1")
	assert.Contains(t, out, "2019 Toyota Camry")
	assert.Contains(t, out, "1 450 000")
	assert.Contains(t, out, "Makes: Toyota (3)")
	assert.Contains(t, out, "Share: "+defaultPageURL+"?make=Toyota&minPrice=500000&maxPrice=2000000&page=1&limit=12")

	calls := searcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "12", calls[0].Get(constants.LimitParam))
	assert.Empty(t, calls[0].Get("minYear"))
}

func TestSearchCommandHydratesFromURL(t *testing.T) {
	srv, _ := newMockAPI(t)

	out, _, err := runCommand(t, "search", "--api-url", srv.URL, "--facets=false",
		"--url", "https://cars.example/search?q=camry&bodyType=SUV,Sedan")

	require.NoError(t, err)
	assert.Contains(t, out, "2 results")
	assert.NotContains(t, out, "Makes:")
	assert.Contains(t, out, "?q=camry&bodyType=SUV,Sedan&page=1&limit=12")
}

func TestSearchCommandFlagsOverrideURL(t *testing.T) {
	srv, searcher := newMockAPI(t)

	_, _, err := runCommand(t, "search", "--api-url", srv.URL,
		"--url", "?make=BMW&bodyType=SUV&page=3",
		"--make", "Kia", "--toggle", "bodyType=Hatchback", "--includeRentals", "true", "--page", "1")

	require.NoError(t, err)
	calls := searcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Kia", calls[0].Get("make"))
	assert.Equal(t, "SUV,Hatchback", calls[0].Get("bodyType"))
	assert.Equal(t, "true", calls[0].Get("includeRentals"))
	assert.Equal(t, "1", calls[0].Get("page"))
}

func TestSearchCommandJSON(t *testing.T) {
	srv, _ := newMockAPI(t)

	out, _, err := runCommand(t, "search", "--api-url", srv.URL, "-o", "json", "--fuelType", "Electric")

	require.NoError(t, err)
	var got jsonOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.SearchInfo.TotalResults)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Tesla", got.Results[0].Make)
	assert.Contains(t, got.ShareURL, "fuelType=Electric")
}

func TestSearchCommandFailure(t *testing.T) {
	srv, searcher := newMockAPI(t)
	searcher.SetError(errs.NewUnexpected("index offline"))

	out, errOut, err := runCommand(t, "search", "--api-url", srv.URL)

	require.Error(t, err)
	assert.True(t, errs.IsSearchFailure(err))
	assert.Equal(t, "! "+constants.SearchFailedMessage+"\n", errOut, "only the generic message reaches the user")
	assert.NotContains(t, errOut, "status")
	assert.NotContains(t, errOut, "Error:")
	assert.NotContains(t, out, "Share:")
}

func TestSearchCommandInvalidInput(t *testing.T) {
	srv, searcher := newMockAPI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"non numeric bound", []string{"--minPrice", "cheap"}},
		{"toggle on scalar field", []string{"--toggle", "make=BMW"}},
		{"malformed toggle", []string{"--toggle", "bodyType"}},
		{"page below one", []string{"--page", "0"}},
		{"unknown output", []string{"-o", "yaml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"search", "--api-url", srv.URL}, tc.args...)
			_, errOut, err := runCommand(t, args...)

			var validation errs.Validation
			assert.True(t, errors.As(err, &validation), "got %v", err)
			assert.Contains(t, errOut, "Error: ")
		})
	}
	assert.Empty(t, searcher.Calls(), "invalid input never reaches the API")
}
