// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// SearchPage is one normalized response of the search endpoint
type SearchPage struct {
	Results      []SearchResult
	Facets       SearchFacets
	TotalResults int
	SearchTimeMs int
	Page         int
	TotalPages   int
}
