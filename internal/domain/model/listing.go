// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"slices"
	"time"
)

// ListingTier is the promotion level of a listing
type ListingTier string

// Listing tiers, lowest to highest
const (
	TierStandard ListingTier = "standard"
	TierFeatured ListingTier = "featured"
	TierPremium  ListingTier = "premium"
)

// Listing types
const (
	ListingTypeSale   = "sale"
	ListingTypeRental = "rental"
)

// Owner summarizes the account that published a listing
type Owner struct {
	ID             string
	Name           string
	Image          string
	Verified       bool
	DealerVerified bool
}

// SearchResult is one listing returned by a search. It is immutable once
// built and discarded on the next search.
type SearchResult struct {
	ID           string
	Title        string
	Make         string
	Model        string
	Year         int
	Price        int
	PricePerDay  int
	Mileage      int
	Location     string
	BodyType     string
	FuelType     string
	Transmission string
	Condition    string
	Features     []string
	ListingType  string
	Images       []string
	Views        int
	Tier         ListingTier
	CreatedAt    time.Time
	Owner        Owner
}

// Clone returns a copy of r that shares no slices with it
func (r SearchResult) Clone() SearchResult {
	c := r
	c.Features = slices.Clone(r.Features)
	c.Images = slices.Clone(r.Images)
	return c
}

// IsRental reports whether the listing is priced per day
func (r SearchResult) IsRental() bool {
	return r.ListingType == ListingTypeRental || (r.Price == 0 && r.PricePerDay > 0)
}
