// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"fmt"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
)

// catalogEpoch anchors the createdAt of sample listings
var catalogEpoch = time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)

type sampleCar struct {
	make, model, location, body string

	fuel, gearbox, condition, listingType string

	year, price, perDay, mileage, views int

	tier model.ListingTier

	features []string
}

var sampleCars = []sampleCar{
	{"Toyota", "Camry", "Almaty", "Sedan", "Petrol", "Automatic", "used", "sale", 2019, 1450000, 0, 42000, 311, model.TierFeatured, []string{"Sunroof", "Bluetooth"}},
	{"Toyota", "Camry", "Astana", "Sedan", "Hybrid", "Automatic", "new", "sale", 2025, 2650000, 0, 0, 98, model.TierPremium, []string{"Bluetooth", "Leather Seats", "Navigation"}},
	{"Toyota", "RAV4", "Almaty", "SUV", "Hybrid", "Automatic", "used", "sale", 2021, 1980000, 0, 35500, 402, model.TierStandard, []string{"AWD", "Bluetooth"}},
	{"Toyota", "Land Cruiser", "Shymkent", "SUV", "Diesel", "Automatic", "used", "sale", 2017, 3900000, 0, 128000, 876, model.TierPremium, []string{"AWD", "Leather Seats", "Navigation"}},
	{"Toyota", "Corolla", "Karaganda", "Sedan", "Petrol", "Manual", "used", "sale", 2012, 520000, 0, 210000, 57, model.TierStandard, nil},
	{"Hyundai", "Tucson", "Almaty", "SUV", "Petrol", "Automatic", "used", "sale", 2020, 1600000, 0, 51000, 233, model.TierStandard, []string{"Bluetooth", "Parking Sensors"}},
	{"Hyundai", "Elantra", "Astana", "Sedan", "Petrol", "Automatic", "used", "sale", 2018, 890000, 0, 88000, 145, model.TierStandard, []string{"Bluetooth"}},
	{"Kia", "Sportage", "Astana", "SUV", "Petrol", "Automatic", "used", "rental", 2022, 0, 25000, 12000, 12, model.TierFeatured, []string{"Bluetooth", "AWD"}},
	{"Kia", "Rio", "Almaty", "Hatchback", "Petrol", "Manual", "used", "rental", 2021, 0, 12000, 64000, 31, model.TierStandard, nil},
	{"BMW", "X5", "Almaty", "SUV", "Diesel", "Automatic", "used", "sale", 2018, 3200000, 0, 97000, 655, model.TierFeatured, []string{"AWD", "Leather Seats", "Sunroof", "Navigation"}},
	{"BMW", "320i", "Astana", "Sedan", "Petrol", "Automatic", "used", "sale", 2016, 1150000, 0, 134000, 189, model.TierStandard, []string{"Leather Seats"}},
	{"Mercedes-Benz", "E 200", "Almaty", "Sedan", "Petrol", "Automatic", "used", "sale", 2020, 2900000, 0, 45000, 540, model.TierPremium, []string{"Leather Seats", "Navigation", "Parking Sensors"}},
	{"Volkswagen", "Golf", "Karaganda", "Hatchback", "Petrol", "Manual", "used", "sale", 2009, 260000, 0, 260000, 22, model.TierStandard, nil},
	{"Lada", "Niva", "Shymkent", "SUV", "Petrol", "Manual", "used", "sale", 1998, 95000, 0, 330000, 71, model.TierStandard, []string{"AWD"}},
	{"Tesla", "Model 3", "Almaty", "Sedan", "Electric", "Automatic", "used", "sale", 2022, 2400000, 0, 30000, 910, model.TierFeatured, []string{"Navigation", "Bluetooth"}},
	{"Chevrolet", "Cobalt", "Astana", "Sedan", "Petrol", "Automatic", "new", "rental", 2024, 0, 15000, 8000, 44, model.TierStandard, []string{"Bluetooth"}},
}

var sampleOwners = []model.Owner{
	{ID: "u-100", Name: "Aigerim Motors", Image: "https://img.example/owners/100.png", Verified: true, DealerVerified: true},
	{ID: "u-101", Name: "Dias", Verified: true},
	{ID: "u-102", Name: "Rent&Go", Image: "https://img.example/owners/102.png", Verified: true, DealerVerified: true},
	{ID: "u-103", Name: "Marat"},
}

// SampleListings returns the development catalog served by the mock endpoint
func SampleListings() []model.SearchResult {
	listings := make([]model.SearchResult, 0, len(sampleCars))
	for i, c := range sampleCars {
		id := fmt.Sprintf("lst-%03d", i+1)
		listings = append(listings, model.SearchResult{
			ID:           id,
			Title:        fmt.Sprintf("%d %s %s", c.year, c.make, c.model),
			Make:         c.make,
			Model:        c.model,
			Year:         c.year,
			Price:        c.price,
			PricePerDay:  c.perDay,
			Mileage:      c.mileage,
			Location:     c.location,
			BodyType:     c.body,
			FuelType:     c.fuel,
			Transmission: c.gearbox,
			Condition:    c.condition,
			Features:     c.features,
			ListingType:  c.listingType,
			Images:       []string{fmt.Sprintf("https://img.example/listings/%s/1.jpg", id)},
			Views:        c.views,
			Tier:         c.tier,
			CreatedAt:    catalogEpoch.Add(time.Duration(i) * 36 * time.Hour),
			Owner:        sampleOwners[i%len(sampleOwners)],
		})
	}
	return listings
}
