// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/console"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/history"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/marketplace"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"

	"github.com/spf13/cobra"
)

const (
	searchCmdName  = "search"
	searchCmdShort = "Run one search and print results, facets and a shareable link"
	searchCmdLong  = `Run one search against the configured API.

Filters are hydrated from --url first, then every filter flag given on the
command line replaces the hydrated value. Multi-select flags take a comma
separated list, e.g. --bodyType SUV,Sedan. --toggle key=value flips a single
value of a multi-select filter.`
)

type searchOptions struct {
	*rootOptions
	url     string
	page    int
	toggles []string
	output  string
	facets  bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:     searchCmdName,
		Short:   searchCmdShort,
		Long:    searchCmdLong,
		Args:    cobra.NoArgs,
		Example: "  carsearch search --make Toyota --minPrice 500000 --maxPrice 2000000\n  carsearch search --url 'https://cars.example/search?q=camry&bodyType=SUV,Sedan'",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.url, "url", "", "shared search link or query string to hydrate from")
	flags.IntVar(&opts.page, "page", 0, "result page (default: the page in --url, or 1)")
	flags.StringArrayVar(&opts.toggles, "toggle", nil, "toggle one multi-select value, key=value (repeatable)")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	flags.BoolVar(&opts.facets, "facets", true, "print facet counts")
	flags.String("history", string(service.HistoryReplace), "address bar history mode: replace or push")
	flags.String("page-url", defaultPageURL, "search page URL used for the shareable link")

	for _, key := range service.FieldKeys() {
		flags.String(string(key), "", filterFlagUsage(key))
	}

	return cmd
}

func filterFlagUsage(key model.FieldKey) string {
	switch {
	case service.IsArrayField(key):
		return fmt.Sprintf("%s filter, comma separated", key)
	case key == model.FieldSortBy:
		return fmt.Sprintf("sort field: %v", model.SortFields())
	case key == model.FieldSortOrder:
		return "sort order: asc or desc"
	case key == model.FieldIncludeRentals:
		return "include rental listings: true or false"
	}
	return fmt.Sprintf("%s filter", key)
}

func runSearch(cmd *cobra.Command, opts *searchOptions) error {
	ctx := cmd.Context()

	if opts.output != outputTable && opts.output != outputJSON {
		return errors.NewValidation(fmt.Sprintf("unsupported output format %q", opts.output))
	}

	cfg, err := loadConfig(cmd, opts.configFile)
	if err != nil {
		return err
	}

	address := history.NewAddressBar(opts.url)
	engine := service.NewSearchEngine(
		marketplace.NewListingSearcher(cfg.Marketplace),
		console.NewNotifier(cmd.ErrOrStderr()),
		address,
		service.WithHistoryMode(cfg.HistoryMode),
	)

	page := 1
	if opts.url != "" {
		hydrated, err := engine.Hydrate(ctx, opts.url)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		page = hydrated
	}

	for _, key := range service.FieldKeys() {
		flag := cmd.Flags().Lookup(string(key))
		if flag == nil || !flag.Changed {
			continue
		}
		if err := engine.UpdateFilter(key, flag.Value.String()); err != nil {
			return err
		}
	}

	for _, toggle := range opts.toggles {
		key, value, ok := cutPair(toggle)
		if !ok {
			return errors.NewValidation(fmt.Sprintf("--toggle expects key=value, got %q", toggle))
		}
		if err := engine.ToggleArrayFilter(model.FieldKey(key), value); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("page") {
		if opts.page < 1 {
			return errors.NewValidation("--page must be at least 1")
		}
		page = opts.page
	}

	slog.DebugContext(ctx, "running search",
		"applied_filters", engine.AppliedFiltersCount(),
		"page", page,
	)

	if err := engine.PerformSearch(ctx, page); err != nil {
		return err
	}

	state := engine.Snapshot()
	shareURL := address.URL(cfg.PageURL)
	if opts.output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), state, shareURL)
	}
	return writeTable(cmd.OutOrStdout(), state, shareURL, opts.facets)
}

func cutPair(s string) (string, string, bool) {
	key, value, ok := strings.Cut(s, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	return key, value, ok && key != "" && value != ""
}
