// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

// base holds the message and cause shared by every error type. Embedding it
// promotes Unwrap, so errors.Is and errors.As see through to the cause.
type base struct {
	message string
	err     error
}

// error renders "message: cause", or just the message without a cause
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// Unwrap returns the joined causes, or nil
func (b base) Unwrap() error {
	return b.err
}

func newBase(message string, causes ...error) base {
	return base{message: message, err: errors.Join(causes...)}
}
