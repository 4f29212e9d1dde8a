// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"slices"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
)

// SortField is the listing attribute results are ordered by
type SortField string

// Supported sort fields
const (
	SortRelevance SortField = "relevance"
	SortPrice     SortField = "price"
	SortYear      SortField = "year"
	SortMileage   SortField = "mileage"
	SortCreatedAt SortField = "createdAt"
	SortViews     SortField = "views"
)

// SortFields lists every valid SortField
func SortFields() []SortField {
	return []SortField{SortRelevance, SortPrice, SortYear, SortMileage, SortCreatedAt, SortViews}
}

// Valid reports whether s is a known sort field
func (s SortField) Valid() bool {
	return slices.Contains(SortFields(), s)
}

// SortOrder is the direction results are ordered in
type SortOrder string

// Supported sort orders
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether o is asc or desc
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// SearchFilters is the canonical filter state of a search page session
type SearchFilters struct {
	// Free-text term
	Query string
	// Match hints
	Make     string
	Model    string
	Location string

	// Inclusive bounds
	MinPrice   int
	MaxPrice   int
	MinYear    int
	MaxYear    int
	MinMileage int
	MaxMileage int

	// Multi-select inclusion filters with set semantics
	BodyType     []string
	FuelType     []string
	Transmission []string
	Condition    []string
	Features     []string
	ListingType  []string

	SortBy         SortField
	SortOrder      SortOrder
	IncludeRentals bool
}

// DefaultFilters returns the documented default for every field. The upper
// year bound is the current year according to now.
func DefaultFilters(now time.Time) SearchFilters {
	return SearchFilters{
		MinPrice:   0,
		MaxPrice:   constants.DefaultMaxPrice,
		MinYear:    constants.DefaultMinYear,
		MaxYear:    now.Year(),
		MinMileage: 0,
		MaxMileage: constants.DefaultMaxMileage,
		SortBy:     SortRelevance,
		SortOrder:  SortDesc,
	}
}

// Clone returns a deep copy so callers never share slice storage
func (f SearchFilters) Clone() SearchFilters {
	c := f
	c.BodyType = slices.Clone(f.BodyType)
	c.FuelType = slices.Clone(f.FuelType)
	c.Transmission = slices.Clone(f.Transmission)
	c.Condition = slices.Clone(f.Condition)
	c.Features = slices.Clone(f.Features)
	c.ListingType = slices.Clone(f.ListingType)
	return c
}

// FieldKey names a filter field by its query parameter
type FieldKey string

// Filter fields, in serialization order
const (
	FieldQuery          FieldKey = "q"
	FieldMake           FieldKey = "make"
	FieldModel          FieldKey = "model"
	FieldLocation       FieldKey = "location"
	FieldMinPrice       FieldKey = "minPrice"
	FieldMaxPrice       FieldKey = "maxPrice"
	FieldMinYear        FieldKey = "minYear"
	FieldMaxYear        FieldKey = "maxYear"
	FieldMinMileage     FieldKey = "minMileage"
	FieldMaxMileage     FieldKey = "maxMileage"
	FieldBodyType       FieldKey = "bodyType"
	FieldFuelType       FieldKey = "fuelType"
	FieldTransmission   FieldKey = "transmission"
	FieldCondition      FieldKey = "condition"
	FieldFeatures       FieldKey = "features"
	FieldListingType    FieldKey = "listingType"
	FieldSortBy         FieldKey = "sortBy"
	FieldSortOrder      FieldKey = "sortOrder"
	FieldIncludeRentals FieldKey = "includeRentals"
)
