// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

// AddressBar mirrors the serialized filters without a full navigation
type AddressBar interface {
	// Current returns the raw query string currently displayed
	Current() string
	// Replace swaps the current entry without growing the back-stack
	Replace(rawQuery string)
	// Push adds a new entry to the back-stack
	Push(rawQuery string)
	// Back pops the current entry and returns the previous one, if any
	Back() (string, bool)
}
