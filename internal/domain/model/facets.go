// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "slices"

// FacetBucket is the number of results sharing one value of a dimension
type FacetBucket struct {
	Value string
	Count int
}

// PriceRange bounds the price slider
type PriceRange struct {
	Min int
	Max int
	Avg float64
}

// SearchFacets is regenerated on every search and never merged across calls
type SearchFacets struct {
	Makes         []FacetBucket
	BodyTypes     []FacetBucket
	FuelTypes     []FacetBucket
	Transmissions []FacetBucket
	Conditions    []FacetBucket
	Features      []FacetBucket
	ListingTypes  []FacetBucket
	Locations     []FacetBucket
	PriceRange    PriceRange
}

// Clone returns a copy of f that shares no bucket slices with it
func (f SearchFacets) Clone() SearchFacets {
	c := f
	c.Makes = slices.Clone(f.Makes)
	c.BodyTypes = slices.Clone(f.BodyTypes)
	c.FuelTypes = slices.Clone(f.FuelTypes)
	c.Transmissions = slices.Clone(f.Transmissions)
	c.Conditions = slices.Clone(f.Conditions)
	c.Features = slices.Clone(f.Features)
	c.ListingTypes = slices.Clone(f.ListingTypes)
	c.Locations = slices.Clone(f.Locations)
	return c
}

// Count returns the bucket count for value in buckets, or zero
func Count(buckets []FacetBucket, value string) int {
	for _, b := range buckets {
		if b.Value == value {
			return b.Count
		}
	}
	return 0
}
