// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/log"
)

// ErrSuperseded is returned by PerformSearch when a newer search was issued
// while this one was in flight; its response was discarded.
var ErrSuperseded = errors.New("search superseded by a newer request")

// HistoryMode selects how a completed search is mirrored into the address bar
type HistoryMode string

const (
	// HistoryReplace rewrites the current entry on every search
	HistoryReplace HistoryMode = "replace"
	// HistoryPush adds an entry per search so Back returns to earlier filter sets
	HistoryPush HistoryMode = "push"
)

// SearchState is the view state of a search page. Snapshots are deep copies.
type SearchState struct {
	Filters      model.SearchFilters
	Results      []model.SearchResult
	Facets       model.SearchFacets
	TotalResults int
	CurrentPage  int
	TotalPages   int
	SearchTimeMs int
	// Loading is true while the latest issued search is outstanding
	Loading bool
	// LastError holds the generic failure message of the latest search, if it failed
	LastError string
}

// SearchEngine owns the filter state of one search page session and drives
// the request/response cycle against a ListingSearcher.
type SearchEngine struct {
	searcher port.ListingSearcher
	notifier port.Notifier
	address  port.AddressBar
	now      func() time.Time
	mode     HistoryMode

	mu         sync.Mutex
	state      SearchState
	generation uint64
}

// EngineOption configures a SearchEngine
type EngineOption func(*SearchEngine)

// WithClock overrides the clock used for the current-year default
func WithClock(now func() time.Time) EngineOption {
	return func(e *SearchEngine) {
		e.now = now
	}
}

// WithHistoryMode selects replace (default) or push history entries
func WithHistoryMode(mode HistoryMode) EngineOption {
	return func(e *SearchEngine) {
		if mode == HistoryPush || mode == HistoryReplace {
			e.mode = mode
		}
	}
}

// Filters returns a copy of the current filters
func (e *SearchEngine) Filters() model.SearchFilters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Filters.Clone()
}

// Snapshot returns a deep copy of the view state
func (e *SearchEngine) Snapshot() SearchState {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	s.Filters = e.state.Filters.Clone()
	s.Facets = e.state.Facets.Clone()
	s.Results = cloneResults(e.state.Results)
	return s
}

func cloneResults(results []model.SearchResult) []model.SearchResult {
	if results == nil {
		return nil
	}
	c := make([]model.SearchResult, len(results))
	for i, r := range results {
		c[i] = r.Clone()
	}
	return c
}

// UpdateFilter replaces a single field. Nothing is sent until PerformSearch.
func (e *SearchEngine) UpdateFilter(key model.FieldKey, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := UpdateFilter(e.state.Filters, key, value, e.now())
	if err != nil {
		return err
	}
	e.state.Filters = next
	return nil
}

// ToggleArrayFilter adds or removes value from a multi-select field
func (e *SearchEngine) ToggleArrayFilter(key model.FieldKey, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := ToggleArrayFilter(e.state.Filters, key, value)
	if err != nil {
		return err
	}
	e.state.Filters = next
	return nil
}

// SetFilters replaces every field at once
func (e *SearchEngine) SetFilters(filters model.SearchFilters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Filters = filters.Clone()
}

// ClearFilters resets every field to its default
func (e *SearchEngine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Filters = ClearFilters(e.now())
}

// AppliedFiltersCount returns the number of filters differing from default
func (e *SearchEngine) AppliedFiltersCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return AppliedFiltersCount(e.state.Filters, e.now())
}

// ShareQuery returns the query string a search for page would send, suitable
// for a bookmarkable link.
func (e *SearchEngine) ShareQuery(page int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return FormatQuery(EncodeQuery(e.state.Filters, page, constants.DefaultPageSize, e.now()))
}

// Hydrate loads filters from an incoming URL or query string. It is meant to
// run once on mount; the address bar is never read back afterwards. Invalid
// parameters are skipped and reported, the rest are applied.
func (e *SearchEngine) Hydrate(ctx context.Context, rawQuery string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	filters, page, err := ParseRawQuery(rawQuery, e.now())
	if err != nil {
		slog.WarnContext(ctx, "ignoring invalid search parameters", "error", err)
	}
	e.state.Filters = filters
	e.state.CurrentPage = page

	slog.DebugContext(ctx, "hydrated search filters",
		"applied_filters", AppliedFiltersCount(filters, e.now()),
		"page", page,
	)
	return page, err
}

// PerformSearch serializes the current filters, queries the searcher for
// page and, on success, replaces results, facets and pagination in one step.
// On failure the previous results stay in place and a single generic
// notification is emitted. A response that arrives after a newer search was
// issued is dropped and ErrSuperseded is returned.
func (e *SearchEngine) PerformSearch(ctx context.Context, page int) error {
	return e.performSearch(ctx, page, e.mode)
}

// Back returns to the previous address-bar entry, re-hydrates its filters and
// searches again. It reports false when there is no earlier entry.
func (e *SearchEngine) Back(ctx context.Context) (bool, error) {
	if e.address == nil {
		return false, nil
	}
	previous, ok := e.address.Back()
	if !ok {
		return false, nil
	}

	page, err := e.Hydrate(ctx, previous)
	if err != nil {
		slog.DebugContext(ctx, "previous entry had invalid parameters", "error", err)
	}
	return true, e.performSearch(ctx, page, HistoryReplace)
}

func (e *SearchEngine) performSearch(ctx context.Context, page int, mode HistoryMode) error {
	if page < 1 {
		page = 1
	}

	e.mu.Lock()
	e.generation++
	generation := e.generation
	params := EncodeQuery(e.state.Filters, page, constants.DefaultPageSize, e.now())
	e.state.Loading = true
	e.mu.Unlock()

	ctx = log.AppendCtx(ctx, slog.Uint64("search_generation", generation))
	slog.DebugContext(ctx, "performing search", "params", FormatQuery(params))

	result, err := e.searcher.SearchListings(ctx, params)

	e.mu.Lock()
	if latest := e.generation; generation != latest {
		e.mu.Unlock()
		slog.DebugContext(ctx, "discarding superseded search response", "latest_generation", latest)
		return ErrSuperseded
	}

	e.state.Loading = false
	if err != nil {
		e.state.LastError = constants.SearchFailedMessage
		e.mu.Unlock()

		slog.ErrorContext(ctx, "search failed", "error", err)
		if e.notifier != nil {
			e.notifier.Notify(ctx, constants.SearchFailedMessage)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if result == nil {
		result = &model.SearchPage{}
	}
	currentPage := result.Page
	if currentPage < 1 {
		currentPage = page
	}
	e.state.Results = cloneResults(result.Results)
	e.state.Facets = result.Facets.Clone()
	e.state.TotalResults = result.TotalResults
	e.state.CurrentPage = currentPage
	e.state.TotalPages = result.TotalPages
	e.state.SearchTimeMs = result.SearchTimeMs
	e.state.LastError = ""

	if e.address != nil {
		rawQuery := FormatQuery(params)
		switch {
		case mode == HistoryPush && e.address.Current() != rawQuery:
			e.address.Push(rawQuery)
		default:
			e.address.Replace(rawQuery)
		}
	}
	e.mu.Unlock()

	slog.DebugContext(ctx, "search completed",
		"total_results", result.TotalResults,
		"page", currentPage,
		"pages", result.TotalPages,
		"search_time_ms", result.SearchTimeMs,
	)
	return nil
}

// NewSearchEngine creates a SearchEngine with default filters. notifier and
// address may be nil.
func NewSearchEngine(searcher port.ListingSearcher, notifier port.Notifier, address port.AddressBar, opts ...EngineOption) *SearchEngine {
	e := &SearchEngine{
		searcher: searcher,
		notifier: notifier,
		address:  address,
		now:      time.Now,
		mode:     HistoryReplace,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = SearchState{
		Filters:     model.DefaultFilters(e.now()),
		CurrentPage: 1,
	}
	return e
}
