// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// Notifier surfaces transient user-facing messages such as "search failed"
type Notifier interface {
	Notify(ctx context.Context, message string)
}
