// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"
)

// UpdateFilter replaces a single field with value, parsed with the field's
// encoding rule. An empty value resets the field to its default. The input
// is never mutated.
func UpdateFilter(filters model.SearchFilters, key model.FieldKey, value string, now time.Time) (model.SearchFilters, error) {
	field, ok := lookupField(key)
	if !ok {
		return filters, errors.NewValidation(fmt.Sprintf("unknown filter %q", key))
	}

	next := filters.Clone()
	field.reset(&next, model.DefaultFilters(now))
	if strings.TrimSpace(value) == "" {
		return next, nil
	}

	if err := field.decode(&next, value); err != nil {
		return filters, err
	}
	return next, nil
}

// ToggleArrayFilter adds value to a multi-select field when absent and
// removes it when present. Applying it twice restores the original set.
func ToggleArrayFilter(filters model.SearchFilters, key model.FieldKey, value string) (model.SearchFilters, error) {
	field, ok := lookupField(key)
	if !ok || field.list == nil {
		return filters, errors.NewValidation(fmt.Sprintf("%q is not a multi-select filter", key))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return filters, errors.NewValidation("toggle value must not be empty")
	}

	next := filters.Clone()
	values := field.list(&next)
	if i := slices.Index(*values, value); i >= 0 {
		*values = slices.Delete(*values, i, i+1)
		return next, nil
	}
	*values = append(*values, value)
	return next, nil
}

// ClearFilters resets every field to its documented default, regardless of
// the facets last observed.
func ClearFilters(now time.Time) model.SearchFilters {
	return model.DefaultFilters(now)
}

// AppliedFiltersCount counts the filter fields that differ from their
// default. Multi-select fields count once when non-empty; sort fields are
// ordering, not filtering, and never count.
func AppliedFiltersCount(filters model.SearchFilters, now time.Time) int {
	defaults := model.DefaultFilters(now)

	count := 0
	for _, field := range filterFields {
		if field.counted && field.differs(filters, defaults) {
			count++
		}
	}
	return count
}
