// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/domain/port"
)

// Notifier records every notification it receives
type Notifier struct {
	mu       sync.Mutex
	messages []string
}

// Notify records message
func (n *Notifier) Notify(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// Messages returns the recorded notifications in order
func (n *Notifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.messages)
}

// NewNotifier creates an empty recording notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

var _ port.Notifier = (*Notifier)(nil)
