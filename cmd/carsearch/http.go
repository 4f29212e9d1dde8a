// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"

	"goa.design/clue/debug"
	goahttp "goa.design/goa/v3/http"
	"golang.org/x/sync/errgroup"
)

// newHTTPHandler builds the muxer, mounts the search routes and debug
// endpoints, and wraps it with the middleware chain.
func newHTTPHandler(ctx context.Context, cfg serveConfig, searcher port.ListingSearcher) http.Handler {
	// Build the HTTP request multiplexer and mount debug and profiler
	// endpoints in debug mode.
	var mux goahttp.Muxer
	{
		mux = goahttp.NewMuxer()
		if cfg.Debug {
			// Mount pprof handlers for memory profiling under /debug/pprof.
			debug.MountPprofHandlers(debug.Adapt(mux))
			// Mount /debug endpoint to enable or disable debug logs at runtime.
			debug.MountDebugLogEnabler(debug.Adapt(mux))
		}
	}

	mock.Mount(mux, searcher)
	for _, path := range []string{constants.SearchPath, constants.ReadyzPath} {
		slog.InfoContext(ctx, "HTTP endpoint mounted", "verb", http.MethodGet, "pattern", path)
	}

	var handler http.Handler = mux
	handler = middleware.LatencyMiddleware(cfg.Latency)(handler)

	// Request IDs are assigned before anything else logs
	handler = middleware.RequestIDMiddleware()(handler)

	if cfg.Debug {
		// Log query and response bodies if debug logs are enabled.
		handler = debug.HTTP()(handler)
	}
	return handler
}

// runHTTPServer serves until ctx is cancelled, then shuts down gracefully.
func runHTTPServer(ctx context.Context, cfg serveConfig, searcher port.ListingSearcher) error {
	lis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	return serve(ctx, lis, newHTTPHandler(ctx, cfg, searcher))
}

func serve(ctx context.Context, lis net.Listener, handler http.Handler) error {
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second * 60}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.InfoContext(ctx, "HTTP server listening", "host", lis.Addr().String())
		if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.InfoContext(ctx, "shutting down HTTP server", "host", lis.Addr().String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown HTTP server", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "graceful shutdown completed")
	return nil
}
