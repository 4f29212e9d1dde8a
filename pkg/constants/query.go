// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultPageSize is the fixed number of listings requested per page
	DefaultPageSize = 12

	// ArraySeparator joins multi-select values in a query parameter
	ArraySeparator = ","

	// PageParam and LimitParam are always present on a search request
	PageParam  = "page"
	LimitParam = "limit"

	// SearchFailedMessage is the only failure text surfaced to users
	SearchFailedMessage = "Search failed. Please try again."
)

const (
	// DefaultMaxPrice bounds the price slider when no facet range is known
	DefaultMaxPrice = 10_000_000
	// DefaultMinYear is the oldest model year offered by the filters
	DefaultMinYear = 1990
	// DefaultMaxMileage bounds the mileage slider
	DefaultMaxMileage = 500_000
)
