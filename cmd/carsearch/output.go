// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/marketplace"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/service"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// jsonOutput is the machine readable form of a search: the wire response
// plus the shareable link.
type jsonOutput struct {
	marketplace.SearchResponse
	ShareURL string `json:"shareUrl"`
}

func writeJSON(w io.Writer, state service.SearchState, shareURL string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonOutput{
		SearchResponse: marketplace.NewSearchResponse(&model.SearchPage{
			Results:      state.Results,
			Facets:       state.Facets,
			TotalResults: state.TotalResults,
			SearchTimeMs: state.SearchTimeMs,
			Page:         state.CurrentPage,
			TotalPages:   state.TotalPages,
		}),
		ShareURL: shareURL,
	})
}

func writeTable(w io.Writer, state service.SearchState, shareURL string, withFacets bool) error {
	fmt.Fprintf(w, "%d results (page %d of %d, %d ms)\n",
		state.TotalResults, state.CurrentPage, max(state.TotalPages, 1), state.SearchTimeMs)

	if len(state.Results) == 0 {
		fmt.Fprintln(w, "No listings match these filters.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "\nTITLE\tPRICE\tMILEAGE\tLOCATION\tTIER")
		for _, r := range state.Results {
			fmt.Fprintf(tw, "%s\t%s\t%s km\t%s\t%s\n",
				r.Title, formatPrice(r), groupDigits(r.Mileage), r.Location, r.Tier)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if withFacets {
		writeFacets(w, state.Facets)
	}

	fmt.Fprintf(w, "\nShare: %s\n", shareURL)
	return nil
}

func writeFacets(w io.Writer, f model.SearchFacets) {
	dims := []struct {
		name    string
		buckets []model.FacetBucket
	}{
		{"Makes", f.Makes},
		{"Body types", f.BodyTypes},
		{"Fuel types", f.FuelTypes},
		{"Transmissions", f.Transmissions},
		{"Conditions", f.Conditions},
		{"Features", f.Features},
		{"Listing types", f.ListingTypes},
		{"Locations", f.Locations},
	}

	fmt.Fprintln(w)
	for _, d := range dims {
		if len(d.buckets) == 0 {
			continue
		}
		parts := make([]string, 0, len(d.buckets))
		for _, b := range d.buckets {
			parts = append(parts, fmt.Sprintf("%s (%d)", b.Value, b.Count))
		}
		fmt.Fprintf(w, "%s: %s\n", d.name, strings.Join(parts, ", "))
	}
	if f.PriceRange.Max > 0 {
		fmt.Fprintf(w, "Price range: %s - %s (avg %s)\n",
			groupDigits(f.PriceRange.Min), groupDigits(f.PriceRange.Max), groupDigits(int(f.PriceRange.Avg)))
	}
}

func formatPrice(r model.SearchResult) string {
	if r.IsRental() {
		return groupDigits(r.PricePerDay) + "/day"
	}
	return groupDigits(r.Price)
}

// groupDigits renders n with space separated thousands, e.g. 1 450 000
func groupDigits(n int) string {
	s := fmt.Sprint(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
