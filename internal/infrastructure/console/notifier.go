// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier prints transient user-facing messages to a terminal
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// Notify writes message on its own line
func (n *Notifier) Notify(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := fmt.Fprintf(n.out, "! %s\n", message); err != nil {
		slog.WarnContext(ctx, "failed to write notification", "error", err)
	}
}

// NewNotifier creates a Notifier writing to out
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}
