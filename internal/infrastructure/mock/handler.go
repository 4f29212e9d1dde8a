// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/marketplace"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"

	goahttp "goa.design/goa/v3/http"
)

// ErrorBody is the payload written for failed requests
type ErrorBody struct {
	Error string `json:"error"`
}

// NewSearchHandler serves GET /api/search from searcher using the marketplace
// wire format.
func NewSearchHandler(searcher port.ListingSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, err := searcher.SearchListings(ctx, r.URL.Query())
		if err == nil && page == nil {
			err = errs.NewUnexpected("searcher returned no page")
		}
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		enc := goahttp.ResponseEncoder(ctx, w)
		w.WriteHeader(http.StatusOK)
		if err := enc.Encode(marketplace.NewSearchResponse(page)); err != nil {
			slog.ErrorContext(ctx, "failed to encode search response", "error", err)
		}
	}
}

// NewReadyHandler reports whether searcher can serve requests
func NewReadyHandler(searcher port.ListingSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := searcher.IsReady(r.Context()); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	}
}

// Mount registers the search and readiness routes on mux
func Mount(mux goahttp.Muxer, searcher port.ListingSearcher) {
	mux.Handle(http.MethodGet, constants.SearchPath, NewSearchHandler(searcher))
	mux.Handle(http.MethodGet, constants.ReadyzPath, NewReadyHandler(searcher))
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var (
		validation  errs.Validation
		unavailable errs.ServiceUnavailable
	)
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &unavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	slog.ErrorContext(ctx, "mock search request failed", "error", err, "status", status)

	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if encErr := enc.Encode(ErrorBody{Error: err.Error()}); encErr != nil {
		slog.ErrorContext(ctx, "failed to encode error response", "error", encErr)
	}
}
