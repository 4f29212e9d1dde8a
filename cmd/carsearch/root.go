// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"

	"github.com/spf13/cobra"
)

const (
	rootCmdName  = "carsearch"
	rootCmdShort = "Search the car marketplace from the terminal"
	rootCmdLong  = `carsearch drives the marketplace search page engine: it hydrates filters
from a shared link or flags, runs the search against /api/search and prints
results, facets and a shareable link. The serve command starts a development
/api/search endpoint backed by a sample catalog.`
)

// newRootCmd assembles the command tree. Output goes to out, notifications
// and errors to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           rootCmdName,
		Short:         rootCmdShort,
		Long:          rootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./carsearch.yaml when present)")
	flags.String("api-url", defaultAPIBaseURL, "base URL of the search API")
	flags.String("api-token", "", "bearer token sent to the search API")
	flags.Duration("api-timeout", defaultAPITimeout, "search request timeout")
	flags.Int("api-max-retries", 0, "retries on transient failures")
	flags.Duration("api-retry-delay", defaultAPIRetryDelay, "delay between retries")

	cmd.AddCommand(newSearchCmd(opts), newServeCmd(opts))
	return cmd
}

// execute runs the command tree with args and reports its error. A failed
// search has already been announced by the notifier with the generic
// message, so its details only reach the debug log.
func execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.IsSearchFailure(err):
		slog.DebugContext(ctx, "search command failed", "error", err)
	default:
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}

// rootOptions is shared by every subcommand
type rootOptions struct {
	configFile string
}
