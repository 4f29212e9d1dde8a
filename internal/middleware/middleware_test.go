// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/httpclient"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name              string
		existingRequestID string
		expectGenerated   bool
	}{
		{
			name:            "generates a request ID when none is provided",
			expectGenerated: true,
		},
		{
			name:              "keeps the caller's request ID",
			existingRequestID: "existing-id-123",
		},
		{
			name:              "keeps a UUID request ID",
			existingRequestID: "550e8400-e29b-41d4-a716-446655440000",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured string
			handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = httpclient.RequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, constants.SearchPath, nil)
			if tc.existingRequestID != "" {
				req.Header.Set(constants.RequestIDHeader, tc.existingRequestID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.NotEmpty(t, captured)
			if tc.expectGenerated {
				assert.Len(t, captured, 36)
			} else {
				assert.Equal(t, tc.existingRequestID, captured)
			}
			assert.Equal(t, captured, rec.Header().Get(constants.RequestIDHeader))
		})
	}
}

func TestRequestIDMiddlewareUnique(t *testing.T) {
	seen := make(map[string]bool)
	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[httpclient.RequestID(r.Context())] = true
	}))

	for i := 0; i < 5; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Len(t, seen, 5)
}

func TestRequestIDMiddlewareLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(&buf, slog.LevelInfo, false)

	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.InfoContext(r.Context(), "handled")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
}

func TestLatencyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("zero latency passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		LatencyMiddleware(0)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delays the request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		start := time.Now()
		LatencyMiddleware(20*time.Millisecond)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("cancelled request is dropped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		LatencyMiddleware(time.Minute)(next).ServeHTTP(rec, req)
		assert.False(t, rec.Flushed)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func BenchmarkRequestIDMiddleware(b *testing.B) {
	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpclient.RequestID(r.Context())
	}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
}
