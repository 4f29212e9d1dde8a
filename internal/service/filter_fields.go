// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"
)

// filterField is one row of the serialization table. encode returns the
// wire form of the field, or "" when the field is at its zero value.
type filterField struct {
	key model.FieldKey
	// counted marks fields that feed the applied-filters badge
	counted bool
	list    func(f *model.SearchFilters) *[]string

	encode  func(f model.SearchFilters) string
	decode  func(f *model.SearchFilters, raw string) error
	differs func(f, defaults model.SearchFilters) bool
	reset   func(f *model.SearchFilters, defaults model.SearchFilters)
}

func textField(key model.FieldKey, ptr func(f *model.SearchFilters) *string) filterField {
	return filterField{
		key:     key,
		counted: true,
		encode: func(f model.SearchFilters) string {
			return strings.TrimSpace(*ptr(&f))
		},
		decode: func(f *model.SearchFilters, raw string) error {
			*ptr(f) = strings.TrimSpace(raw)
			return nil
		},
		differs: func(f, d model.SearchFilters) bool {
			return *ptr(&f) != *ptr(&d)
		},
		reset: func(f *model.SearchFilters, d model.SearchFilters) {
			*ptr(f) = *ptr(&d)
		},
	}
}

func intField(key model.FieldKey, ptr func(f *model.SearchFilters) *int) filterField {
	return filterField{
		key:     key,
		counted: true,
		encode: func(f model.SearchFilters) string {
			v := *ptr(&f)
			if v == 0 {
				return ""
			}
			return strconv.Itoa(v)
		},
		decode: func(f *model.SearchFilters, raw string) error {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return errors.NewValidation(fmt.Sprintf("%s must be an integer", key), err)
			}
			if v < 0 {
				return errors.NewValidation(fmt.Sprintf("%s must not be negative", key))
			}
			*ptr(f) = v
			return nil
		},
		differs: func(f, d model.SearchFilters) bool {
			return *ptr(&f) != *ptr(&d)
		},
		reset: func(f *model.SearchFilters, d model.SearchFilters) {
			*ptr(f) = *ptr(&d)
		},
	}
}

func listField(key model.FieldKey, ptr func(f *model.SearchFilters) *[]string) filterField {
	return filterField{
		key:     key,
		counted: true,
		list:    ptr,
		encode: func(f model.SearchFilters) string {
			return strings.Join(*ptr(&f), constants.ArraySeparator)
		},
		decode: func(f *model.SearchFilters, raw string) error {
			*ptr(f) = appendUnique(*ptr(f), splitList(raw)...)
			return nil
		},
		differs: func(f, _ model.SearchFilters) bool {
			return len(*ptr(&f)) > 0
		},
		reset: func(f *model.SearchFilters, _ model.SearchFilters) {
			*ptr(f) = nil
		},
	}
}

var filterFields = []filterField{
	textField(model.FieldQuery, func(f *model.SearchFilters) *string { return &f.Query }),
	textField(model.FieldMake, func(f *model.SearchFilters) *string { return &f.Make }),
	textField(model.FieldModel, func(f *model.SearchFilters) *string { return &f.Model }),
	textField(model.FieldLocation, func(f *model.SearchFilters) *string { return &f.Location }),
	intField(model.FieldMinPrice, func(f *model.SearchFilters) *int { return &f.MinPrice }),
	intField(model.FieldMaxPrice, func(f *model.SearchFilters) *int { return &f.MaxPrice }),
	intField(model.FieldMinYear, func(f *model.SearchFilters) *int { return &f.MinYear }),
	intField(model.FieldMaxYear, func(f *model.SearchFilters) *int { return &f.MaxYear }),
	intField(model.FieldMinMileage, func(f *model.SearchFilters) *int { return &f.MinMileage }),
	intField(model.FieldMaxMileage, func(f *model.SearchFilters) *int { return &f.MaxMileage }),
	listField(model.FieldBodyType, func(f *model.SearchFilters) *[]string { return &f.BodyType }),
	listField(model.FieldFuelType, func(f *model.SearchFilters) *[]string { return &f.FuelType }),
	listField(model.FieldTransmission, func(f *model.SearchFilters) *[]string { return &f.Transmission }),
	listField(model.FieldCondition, func(f *model.SearchFilters) *[]string { return &f.Condition }),
	listField(model.FieldFeatures, func(f *model.SearchFilters) *[]string { return &f.Features }),
	listField(model.FieldListingType, func(f *model.SearchFilters) *[]string { return &f.ListingType }),
	{
		key: model.FieldSortBy,
		encode: func(f model.SearchFilters) string {
			return string(f.SortBy)
		},
		decode: func(f *model.SearchFilters, raw string) error {
			s := model.SortField(strings.TrimSpace(raw))
			if !s.Valid() {
				return errors.NewValidation(fmt.Sprintf("unsupported sort field %q", raw))
			}
			f.SortBy = s
			return nil
		},
		differs: func(f, d model.SearchFilters) bool {
			return f.SortBy != d.SortBy
		},
		reset: func(f *model.SearchFilters, d model.SearchFilters) {
			f.SortBy = d.SortBy
		},
	},
	{
		key: model.FieldSortOrder,
		encode: func(f model.SearchFilters) string {
			return string(f.SortOrder)
		},
		decode: func(f *model.SearchFilters, raw string) error {
			o := model.SortOrder(strings.ToLower(strings.TrimSpace(raw)))
			if !o.Valid() {
				return errors.NewValidation(fmt.Sprintf("unsupported sort order %q", raw))
			}
			f.SortOrder = o
			return nil
		},
		differs: func(f, d model.SearchFilters) bool {
			return f.SortOrder != d.SortOrder
		},
		reset: func(f *model.SearchFilters, d model.SearchFilters) {
			f.SortOrder = d.SortOrder
		},
	},
	{
		key:     model.FieldIncludeRentals,
		counted: true,
		encode: func(f model.SearchFilters) string {
			if !f.IncludeRentals {
				return ""
			}
			return "true"
		},
		decode: func(f *model.SearchFilters, raw string) error {
			v, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return errors.NewValidation("includeRentals must be a boolean", err)
			}
			f.IncludeRentals = v
			return nil
		},
		differs: func(f, d model.SearchFilters) bool {
			return f.IncludeRentals != d.IncludeRentals
		},
		reset: func(f *model.SearchFilters, d model.SearchFilters) {
			f.IncludeRentals = d.IncludeRentals
		},
	},
}

// lookupField returns the table row for key
func lookupField(key model.FieldKey) (filterField, bool) {
	for _, field := range filterFields {
		if field.key == key {
			return field, true
		}
	}
	return filterField{}, false
}

// FieldKeys lists every filter field in serialization order
func FieldKeys() []model.FieldKey {
	keys := make([]model.FieldKey, len(filterFields))
	for i, field := range filterFields {
		keys[i] = field.key
	}
	return keys
}

// IsArrayField reports whether key is a multi-select field
func IsArrayField(key model.FieldKey) bool {
	field, ok := lookupField(key)
	return ok && field.list != nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, constants.ArraySeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
