// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	stderrors "errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"
)

// EncodeQuery serializes filters into search query parameters. A field is
// omitted when it is at its zero value or at its default, so an explicit
// "minimum price 0" cannot be told apart from no minimum. page and limit are
// always present.
func EncodeQuery(filters model.SearchFilters, page, limit int, now time.Time) url.Values {
	defaults := model.DefaultFilters(now)
	filters = normalizeRanges(filters)

	values := url.Values{}
	for _, field := range filterFields {
		encoded := field.encode(filters)
		if encoded == "" || !field.differs(filters, defaults) {
			continue
		}
		values.Set(string(field.key), encoded)
	}

	if page < 1 {
		page = 1
	}
	values.Set(constants.PageParam, strconv.Itoa(page))
	values.Set(constants.LimitParam, strconv.Itoa(limit))
	return values
}

// FormatQuery renders values in field-table order followed by page and limit,
// so the same filters always produce the same shareable string. Unknown keys
// are appended in sorted order. List separators are left unescaped.
func FormatQuery(values url.Values) string {
	order := make([]string, 0, len(values))
	for _, key := range FieldKeys() {
		order = append(order, string(key))
	}
	order = append(order, constants.PageParam, constants.LimitParam)

	var rest []string
	for key := range values {
		if !slices.Contains(order, key) {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	order = append(order, rest...)

	var b strings.Builder
	for _, key := range order {
		for _, v := range values[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(strings.ReplaceAll(url.QueryEscape(v), "%2C", constants.ArraySeparator))
		}
	}
	return b.String()
}

// DecodeQuery hydrates filters from query parameters, starting from the
// defaults. Fields that fail to parse keep their default and are reported
// together in the returned Validation error; the filters are usable either way.
// The returned page is 1 unless a valid page parameter is present.
func DecodeQuery(values url.Values, now time.Time) (model.SearchFilters, int, error) {
	filters := model.DefaultFilters(now)

	var errs []error
	for _, field := range filterFields {
		raws, ok := values[string(field.key)]
		if !ok {
			continue
		}
		for _, raw := range raws {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			if err := field.decode(&filters, raw); err != nil {
				errs = append(errs, err)
			}
		}
	}

	page := 1
	if raw := values.Get(constants.PageParam); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			errs = append(errs, errors.NewValidation("page must be a positive integer", err))
		} else {
			page = p
		}
	}

	if len(errs) > 0 {
		return filters, page, errors.NewValidation("invalid search parameters", stderrors.Join(errs...))
	}
	return filters, page, nil
}

// ParseRawQuery decodes a raw query string, a "?"-prefixed query or a full
// URL, as found in an address bar or a shared link.
func ParseRawQuery(raw string, now time.Time) (model.SearchFilters, int, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.Index(raw, "#"); i >= 0 {
		raw = raw[:i]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		filters, page, decodeErr := DecodeQuery(values, now)
		return filters, page, errors.NewValidation("malformed query string", err, decodeErr)
	}
	return DecodeQuery(values, now)
}

// normalizeRanges swaps bound pairs entered the wrong way round. The
// filters held by the caller are left as typed.
func normalizeRanges(f model.SearchFilters) model.SearchFilters {
	swap := func(lo, hi *int) {
		if *lo > 0 && *hi > 0 && *lo > *hi {
			*lo, *hi = *hi, *lo
		}
	}
	swap(&f.MinPrice, &f.MaxPrice)
	swap(&f.MinYear, &f.MaxYear)
	swap(&f.MinMileage, &f.MaxMileage)
	return f
}
