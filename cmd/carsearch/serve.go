// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/mock"

	"github.com/spf13/cobra"
)

const (
	serveCmdName  = "serve"
	serveCmdShort = "Start a development /api/search endpoint"
	serveCmdLong  = `Start an HTTP server answering GET /api/search from an in-memory sample
catalog, using the same wire format as the marketplace API. Point
"carsearch search --api-url" at it to exercise the engine end to end.`

	// gracefulShutdownSeconds bounds how long in-flight requests may take
	// once a shutdown signal arrives
	gracefulShutdownSeconds = 25
)

func newServeCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   serveCmdName,
		Short: serveCmdShort,
		Long:  serveCmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root.configFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			slog.InfoContext(ctx, "Starting listing search endpoint",
				"bind", cfg.Serve.Bind,
				"http-port", cfg.Serve.Port,
				"debug", cfg.Serve.Debug,
				"latency", cfg.Serve.Latency.String(),
				"graceful-shutdown-seconds", gracefulShutdownSeconds,
			)

			return runHTTPServer(ctx, cfg.Serve, mock.NewSampleListingSearcher())
		},
	}

	flags := cmd.Flags()
	flags.StringP("port", "p", defaultPort, "listen port")
	flags.String("bind", defaultBind, "interface to bind on")
	flags.BoolP("debug", "d", false, "mount pprof and debug log endpoints and log HTTP payloads")
	flags.Duration("latency", time.Duration(0), "artificial delay added to every request")

	return cmd
}
