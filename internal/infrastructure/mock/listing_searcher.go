// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"cmp"
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"
)

// MaxPageSize caps the limit parameter
const MaxPageSize = 100

// SearchHook replaces the in-memory evaluation of a search call
type SearchHook func(ctx context.Context, params url.Values) (*model.SearchPage, error)

// ListingSearcher is an in-memory implementation of port.ListingSearcher for
// tests and the development endpoint.
type ListingSearcher struct {
	mu       sync.Mutex
	listings []model.SearchResult
	err      error
	hook     SearchHook
	latency  time.Duration
	calls    []url.Values
}

// SearchListings evaluates params against the catalog
func (m *ListingSearcher) SearchListings(ctx context.Context, params url.Values) (*model.SearchPage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cloneValues(params))
	err, hook, latency := m.err, m.hook, m.latency
	listings := slices.Clone(m.listings)
	m.mu.Unlock()

	slog.DebugContext(ctx, "mock searching listings", "params", params.Encode())

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, errors.NewTransport("search request aborted", ctx.Err())
		}
	}
	if err != nil {
		return nil, err
	}
	if hook != nil {
		return hook(ctx, params)
	}

	start := time.Now()
	q, err := parseQuery(params)
	if err != nil {
		return nil, err
	}

	matched := make([]model.SearchResult, 0, len(listings))
	for _, l := range listings {
		if q.matches(l) {
			matched = append(matched, l)
		}
	}
	sortListings(matched, q.sortBy, q.sortOrder)

	total := len(matched)
	pages := (total + q.limit - 1) / q.limit
	// compare page numbers before multiplying so a huge page cannot overflow
	from := total
	if q.page <= pages {
		from = (q.page - 1) * q.limit
	}
	to := min(from+q.limit, total)

	return &model.SearchPage{
		Results:      slices.Clone(matched[from:to]),
		Facets:       buildFacets(matched),
		TotalResults: total,
		SearchTimeMs: int(time.Since(start).Milliseconds()),
		Page:         q.page,
		TotalPages:   pages,
	}, nil
}

// IsReady reports the configured error, if any
func (m *ListingSearcher) IsReady(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return errors.NewServiceUnavailable("mock searcher not ready", m.err)
	}
	return nil
}

// Add appends listings to the catalog
func (m *ListingSearcher) Add(listings ...model.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings = append(m.listings, listings...)
}

// Clear empties the catalog
func (m *ListingSearcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings = nil
}

// SetError makes every subsequent call fail with err; nil restores normal behavior
func (m *ListingSearcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetHook routes every subsequent call to hook; nil restores the catalog
func (m *ListingSearcher) SetHook(hook SearchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = hook
}

// SetLatency delays every call by d, honoring context cancellation
func (m *ListingSearcher) SetLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
}

// Calls returns the parameters of every call received so far
func (m *ListingSearcher) Calls() []url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]url.Values, len(m.calls))
	for i, c := range m.calls {
		calls[i] = cloneValues(c)
	}
	return calls
}

// listingQuery is the decoded form of a search request
type listingQuery struct {
	text, make, model, location string

	minPrice, maxPrice     int
	minYear, maxYear       int
	minMileage, maxMileage int

	bodyType, fuelType, transmission, condition, features, listingType []string

	includeRentals bool
	sortBy         model.SortField
	sortOrder      model.SortOrder
	page, limit    int
}

func parseQuery(params url.Values) (listingQuery, error) {
	q := listingQuery{
		text:         strings.TrimSpace(params.Get(string(model.FieldQuery))),
		make:         params.Get(string(model.FieldMake)),
		model:        params.Get(string(model.FieldModel)),
		location:     params.Get(string(model.FieldLocation)),
		bodyType:     listParam(params, model.FieldBodyType),
		fuelType:     listParam(params, model.FieldFuelType),
		transmission: listParam(params, model.FieldTransmission),
		condition:    listParam(params, model.FieldCondition),
		features:     listParam(params, model.FieldFeatures),
		listingType:  listParam(params, model.FieldListingType),
		sortBy:       model.SortField(params.Get(string(model.FieldSortBy))),
		sortOrder:    model.SortOrder(params.Get(string(model.FieldSortOrder))),
		page:         1,
		limit:        constants.DefaultPageSize,
	}

	ints := []struct {
		key string
		dst *int
	}{
		{string(model.FieldMinPrice), &q.minPrice},
		{string(model.FieldMaxPrice), &q.maxPrice},
		{string(model.FieldMinYear), &q.minYear},
		{string(model.FieldMaxYear), &q.maxYear},
		{string(model.FieldMinMileage), &q.minMileage},
		{string(model.FieldMaxMileage), &q.maxMileage},
		{constants.PageParam, &q.page},
		{constants.LimitParam, &q.limit},
	}
	for _, p := range ints {
		raw := params.Get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return listingQuery{}, errors.NewValidation("invalid value for " + p.key + ": " + raw)
		}
		*p.dst = n
	}

	if raw := params.Get(string(model.FieldIncludeRentals)); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return listingQuery{}, errors.NewValidation("invalid value for includeRentals: " + raw)
		}
		q.includeRentals = include
	}

	if q.sortBy == "" {
		q.sortBy = model.SortRelevance
	}
	if !q.sortBy.Valid() {
		return listingQuery{}, errors.NewValidation("unsupported sortBy: " + string(q.sortBy))
	}
	if q.sortOrder == "" {
		q.sortOrder = model.SortDesc
	}
	if !q.sortOrder.Valid() {
		return listingQuery{}, errors.NewValidation("unsupported sortOrder: " + string(q.sortOrder))
	}

	q.page = max(q.page, 1)
	if q.limit < 1 {
		q.limit = constants.DefaultPageSize
	}
	q.limit = min(q.limit, MaxPageSize)
	return q, nil
}

// matches applies every filter. Categorical fields match any selected value,
// features must all be present. Rentals are hidden unless requested.
func (q listingQuery) matches(l model.SearchResult) bool {
	if q.text != "" {
		haystack := strings.Join([]string{l.Title, l.Make, l.Model, l.Location}, " ")
		if !containsFold(haystack, q.text) {
			return false
		}
	}
	if !containsFold(l.Make, q.make) || !containsFold(l.Model, q.model) || !containsFold(l.Location, q.location) {
		return false
	}

	price := l.Price
	if l.IsRental() {
		price = l.PricePerDay
	}
	if !inRange(price, q.minPrice, q.maxPrice) ||
		!inRange(l.Year, q.minYear, q.maxYear) ||
		!inRange(l.Mileage, q.minMileage, q.maxMileage) {
		return false
	}

	if !anyOf(q.bodyType, l.BodyType) || !anyOf(q.fuelType, l.FuelType) ||
		!anyOf(q.transmission, l.Transmission) || !anyOf(q.condition, l.Condition) ||
		!anyOf(q.listingType, l.ListingType) {
		return false
	}
	for _, f := range q.features {
		if !slices.ContainsFunc(l.Features, func(have string) bool { return strings.EqualFold(have, f) }) {
			return false
		}
	}

	if l.IsRental() && !q.includeRentals && len(q.listingType) == 0 {
		return false
	}
	return true
}

func sortListings(listings []model.SearchResult, by model.SortField, order model.SortOrder) {
	if by == model.SortRelevance {
		slices.SortStableFunc(listings, func(a, b model.SearchResult) int {
			if c := cmp.Compare(tierRank(b.Tier), tierRank(a.Tier)); c != 0 {
				return c
			}
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		return
	}

	key := func(l model.SearchResult) int64 {
		switch by {
		case model.SortPrice:
			if l.IsRental() {
				return int64(l.PricePerDay)
			}
			return int64(l.Price)
		case model.SortYear:
			return int64(l.Year)
		case model.SortMileage:
			return int64(l.Mileage)
		case model.SortCreatedAt:
			return l.CreatedAt.UnixNano()
		case model.SortViews:
			return int64(l.Views)
		}
		return 0
	}
	slices.SortStableFunc(listings, func(a, b model.SearchResult) int {
		if order == model.SortAsc {
			return cmp.Compare(key(a), key(b))
		}
		return cmp.Compare(key(b), key(a))
	})
}

func tierRank(t model.ListingTier) int {
	switch t {
	case model.TierPremium:
		return 2
	case model.TierFeatured:
		return 1
	}
	return 0
}

// buildFacets counts each dimension over the full filtered set, not only the
// returned page. Buckets are ordered by count, then value.
func buildFacets(listings []model.SearchResult) model.SearchFacets {
	var facets model.SearchFacets
	facets.Makes = countBy(listings, func(l model.SearchResult) []string { return []string{l.Make} })
	facets.BodyTypes = countBy(listings, func(l model.SearchResult) []string { return []string{l.BodyType} })
	facets.FuelTypes = countBy(listings, func(l model.SearchResult) []string { return []string{l.FuelType} })
	facets.Transmissions = countBy(listings, func(l model.SearchResult) []string { return []string{l.Transmission} })
	facets.Conditions = countBy(listings, func(l model.SearchResult) []string { return []string{l.Condition} })
	facets.Features = countBy(listings, func(l model.SearchResult) []string { return l.Features })
	facets.ListingTypes = countBy(listings, func(l model.SearchResult) []string { return []string{l.ListingType} })
	facets.Locations = countBy(listings, func(l model.SearchResult) []string { return []string{l.Location} })

	sum, n := 0, 0
	for _, l := range listings {
		if l.IsRental() || l.Price <= 0 {
			continue
		}
		if n == 0 || l.Price < facets.PriceRange.Min {
			facets.PriceRange.Min = l.Price
		}
		facets.PriceRange.Max = max(facets.PriceRange.Max, l.Price)
		sum += l.Price
		n++
	}
	if n > 0 {
		facets.PriceRange.Avg = float64(sum) / float64(n)
	}
	return facets
}

func countBy(listings []model.SearchResult, values func(model.SearchResult) []string) []model.FacetBucket {
	counts := make(map[string]int)
	for _, l := range listings {
		for _, v := range values(l) {
			if v != "" {
				counts[v]++
			}
		}
	}
	buckets := make([]model.FacetBucket, 0, len(counts))
	for v, c := range counts {
		buckets = append(buckets, model.FacetBucket{Value: v, Count: c})
	}
	slices.SortFunc(buckets, func(a, b model.FacetBucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return buckets
}

func listParam(params url.Values, key model.FieldKey) []string {
	var out []string
	for _, raw := range params[string(key)] {
		for _, v := range strings.Split(raw, constants.ArraySeparator) {
			if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyOf(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	return slices.ContainsFunc(selected, func(s string) bool { return strings.EqualFold(s, value) })
}

// inRange treats a zero bound as open
func inRange(v, lo, hi int) bool {
	if lo > 0 && v < lo {
		return false
	}
	if hi > 0 && v > hi {
		return false
	}
	return true
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = slices.Clone(vals)
	}
	return out
}

// NewListingSearcher creates a mock searcher seeded with listings
func NewListingSearcher(listings ...model.SearchResult) *ListingSearcher {
	return &ListingSearcher{listings: slices.Clone(listings)}
}

// NewSampleListingSearcher creates a mock searcher over SampleListings
func NewSampleListingSearcher() *ListingSearcher {
	return NewListingSearcher(SampleListings()...)
}

var _ port.ListingSearcher = (*ListingSearcher)(nil)
