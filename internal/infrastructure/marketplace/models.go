// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package marketplace

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
)

// SearchResponse is the JSON body of GET /api/search
type SearchResponse struct {
	Results    []Listing  `json:"results"`
	Facets     Facets     `json:"facets"`
	SearchInfo SearchInfo `json:"searchInfo"`
	Pagination Pagination `json:"pagination"`
}

// SearchInfo carries result totals and server-side timing
type SearchInfo struct {
	TotalResults int `json:"totalResults"`
	// SearchTime is in milliseconds
	SearchTime int `json:"searchTime"`
}

// Pagination describes the returned page
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// Listing is one search hit as serialized by the endpoint
type Listing struct {
	ID string `json:"id,omitempty"`
	// MongoID is accepted for endpoints that expose the document id
	MongoID      string   `json:"_id,omitempty"`
	Title        string   `json:"title"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int      `json:"price,omitempty"`
	PricePerDay  int      `json:"pricePerDay,omitempty"`
	Mileage      int      `json:"mileage"`
	Location     string   `json:"location"`
	BodyType     string   `json:"bodyType,omitempty"`
	FuelType     string   `json:"fuelType,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	Features     []string `json:"features,omitempty"`
	ListingType  string   `json:"listingType,omitempty"`
	Images       []string `json:"images"`
	Views        int      `json:"views"`
	ListingTier  string   `json:"listingTier,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	Owner        *Owner   `json:"owner,omitempty"`
}

// Owner is the listing owner summary
type Owner struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Image            string `json:"image,omitempty"`
	IsVerified       bool   `json:"isVerified"`
	IsDealerVerified bool   `json:"isDealerVerified"`
}

// Bucket is one (value, count) pair
type Bucket struct {
	Value string `json:"value"`
	// MongoID is accepted for aggregation pipelines that group by _id
	MongoID string `json:"_id,omitempty"`
	Count   int    `json:"count"`
}

// PriceRange bounds the price slider
type PriceRange struct {
	Min int     `json:"min"`
	Max int     `json:"max"`
	Avg float64 `json:"avg"`
}

// Facets is the facet block of a search response
type Facets struct {
	Makes         []Bucket   `json:"makes"`
	BodyTypes     []Bucket   `json:"bodyTypes"`
	FuelTypes     []Bucket   `json:"fuelTypes"`
	Transmissions []Bucket   `json:"transmissions"`
	Conditions    []Bucket   `json:"conditions"`
	Features      []Bucket   `json:"features"`
	ListingTypes  []Bucket   `json:"listingTypes"`
	Locations     []Bucket   `json:"locations"`
	PriceRange    PriceRange `json:"priceRange"`
}

// ToDomain converts the wire response into a normalized SearchPage
func (r SearchResponse) ToDomain() *model.SearchPage {
	results := make([]model.SearchResult, 0, len(r.Results))
	for _, l := range r.Results {
		results = append(results, l.toDomain())
	}

	return &model.SearchPage{
		Results:      results,
		Facets:       r.Facets.toDomain(),
		TotalResults: r.SearchInfo.TotalResults,
		SearchTimeMs: r.SearchInfo.SearchTime,
		Page:         r.Pagination.Page,
		TotalPages:   r.Pagination.Pages,
	}
}

func (l Listing) toDomain() model.SearchResult {
	id := l.ID
	if id == "" {
		id = l.MongoID
	}

	tier := model.ListingTier(l.ListingTier)
	if tier == "" {
		tier = model.TierStandard
	}

	result := model.SearchResult{
		ID:           id,
		Title:        l.Title,
		Make:         l.Make,
		Model:        l.Model,
		Year:         l.Year,
		Price:        l.Price,
		PricePerDay:  l.PricePerDay,
		Mileage:      l.Mileage,
		Location:     l.Location,
		BodyType:     l.BodyType,
		FuelType:     l.FuelType,
		Transmission: l.Transmission,
		Condition:    l.Condition,
		Features:     l.Features,
		ListingType:  l.ListingType,
		Images:       l.Images,
		Views:        l.Views,
		Tier:         tier,
	}

	// unparseable timestamps are left zero rather than failing the whole page
	if l.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, l.CreatedAt); err == nil {
			result.CreatedAt = t
		}
	}

	if l.Owner != nil {
		result.Owner = model.Owner{
			ID:             l.Owner.ID,
			Name:           l.Owner.Name,
			Image:          l.Owner.Image,
			Verified:       l.Owner.IsVerified,
			DealerVerified: l.Owner.IsDealerVerified,
		}
	}
	return result
}

func (f Facets) toDomain() model.SearchFacets {
	return model.SearchFacets{
		Makes:         bucketsToDomain(f.Makes),
		BodyTypes:     bucketsToDomain(f.BodyTypes),
		FuelTypes:     bucketsToDomain(f.FuelTypes),
		Transmissions: bucketsToDomain(f.Transmissions),
		Conditions:    bucketsToDomain(f.Conditions),
		Features:      bucketsToDomain(f.Features),
		ListingTypes:  bucketsToDomain(f.ListingTypes),
		Locations:     bucketsToDomain(f.Locations),
		PriceRange: model.PriceRange{
			Min: f.PriceRange.Min,
			Max: f.PriceRange.Max,
			Avg: f.PriceRange.Avg,
		},
	}
}

func bucketsToDomain(buckets []Bucket) []model.FacetBucket {
	out := make([]model.FacetBucket, 0, len(buckets))
	for _, b := range buckets {
		value := b.Value
		if value == "" {
			value = b.MongoID
		}
		if value == "" {
			continue
		}
		out = append(out, model.FacetBucket{Value: value, Count: b.Count})
	}
	return out
}

// NewSearchResponse converts a domain page into its wire form
func NewSearchResponse(page *model.SearchPage) SearchResponse {
	listings := make([]Listing, 0, len(page.Results))
	for _, r := range page.Results {
		l := Listing{
			ID:           r.ID,
			Title:        r.Title,
			Make:         r.Make,
			Model:        r.Model,
			Year:         r.Year,
			Price:        r.Price,
			PricePerDay:  r.PricePerDay,
			Mileage:      r.Mileage,
			Location:     r.Location,
			BodyType:     r.BodyType,
			FuelType:     r.FuelType,
			Transmission: r.Transmission,
			Condition:    r.Condition,
			Features:     r.Features,
			ListingType:  r.ListingType,
			Images:       r.Images,
			Views:        r.Views,
			ListingTier:  string(r.Tier),
			Owner: &Owner{
				ID:               r.Owner.ID,
				Name:             r.Owner.Name,
				Image:            r.Owner.Image,
				IsVerified:       r.Owner.Verified,
				IsDealerVerified: r.Owner.DealerVerified,
			},
		}
		if !r.CreatedAt.IsZero() {
			l.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
		}
		listings = append(listings, l)
	}

	f := page.Facets
	return SearchResponse{
		Results: listings,
		Facets: Facets{
			Makes:         bucketsFromDomain(f.Makes),
			BodyTypes:     bucketsFromDomain(f.BodyTypes),
			FuelTypes:     bucketsFromDomain(f.FuelTypes),
			Transmissions: bucketsFromDomain(f.Transmissions),
			Conditions:    bucketsFromDomain(f.Conditions),
			Features:      bucketsFromDomain(f.Features),
			ListingTypes:  bucketsFromDomain(f.ListingTypes),
			Locations:     bucketsFromDomain(f.Locations),
			PriceRange: PriceRange{
				Min: f.PriceRange.Min,
				Max: f.PriceRange.Max,
				Avg: f.PriceRange.Avg,
			},
		},
		SearchInfo: SearchInfo{
			TotalResults: page.TotalResults,
			SearchTime:   page.SearchTimeMs,
		},
		Pagination: Pagination{
			Page:  page.Page,
			Pages: page.TotalPages,
		},
	}
}

func bucketsFromDomain(buckets []model.FacetBucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Bucket{Value: b.Value, Count: b.Count})
	}
	return out
}
