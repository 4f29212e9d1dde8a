// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/linuxfoundation/lfx-v2-listing-search/pkg/log"
)

func init() {
	// slog is the standard library logger, we use it to log errors and
	// diagnostics to stderr so stdout only carries command output
	logging.InitStructureLogConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
