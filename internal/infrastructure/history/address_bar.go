// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package history

import (
	"strings"
	"sync"
)

// AddressBar is an in-memory back-stack of query strings. The last entry is
// the one currently displayed.
type AddressBar struct {
	mu      sync.Mutex
	entries []string
}

// Current returns the displayed query string
func (a *AddressBar) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[len(a.entries)-1]
}

// Replace swaps the displayed entry
func (a *AddressBar) Replace(rawQuery string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[len(a.entries)-1] = normalize(rawQuery)
}

// Push adds a new displayed entry
func (a *AddressBar) Push(rawQuery string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, normalize(rawQuery))
}

// Back drops the displayed entry and returns the one before it
func (a *AddressBar) Back() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) < 2 {
		return "", false
	}
	a.entries = a.entries[:len(a.entries)-1]
	return a.entries[len(a.entries)-1], true
}

// Len returns the number of entries on the stack
func (a *AddressBar) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// URL joins base with the displayed query string
func (a *AddressBar) URL(base string) string {
	current := a.Current()
	if current == "" {
		return base
	}
	return base + "?" + current
}

func normalize(rawQuery string) string {
	return strings.TrimPrefix(strings.TrimSpace(rawQuery), "?")
}

// NewAddressBar creates an address bar showing the initial query string
func NewAddressBar(initial string) *AddressBar {
	return &AddressBar{
		entries: []string{normalize(initial)},
	}
}
