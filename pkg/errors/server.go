// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

// Transport represents a failure to reach the search endpoint at all.
type Transport struct {
	base
}

// Error returns the error message for Transport.
func (t Transport) Error() string {
	return t.error()
}

// NewTransport creates a new Transport error with the provided message.
func NewTransport(message string, err ...error) Transport {
	return Transport{
		base: newBase(message, err...),
	}
}

// Status represents a non-2xx answer from the search endpoint.
type Status struct {
	base
	Code int
}

// Error returns the error message for Status.
func (s Status) Error() string {
	return fmt.Sprintf("%s (status %d)", s.error(), s.Code)
}

// NewStatus creates a new Status error for the given HTTP status code.
func NewStatus(code int, message string, err ...error) Status {
	return Status{
		base: newBase(message, err...),
		Code: code,
	}
}

// Decode represents a response body that could not be deserialized.
type Decode struct {
	base
}

// Error returns the error message for Decode.
func (d Decode) Error() string {
	return d.error()
}

// NewDecode creates a new Decode error with the provided message.
func NewDecode(message string, err ...error) Decode {
	return Decode{
		base: newBase(message, err...),
	}
}

// Unexpected represents an unexpected error in the application.
type Unexpected struct {
	base
}

// Error returns the error message for Unexpected.
func (u Unexpected) Error() string {
	return u.error()
}

// NewUnexpected creates a new Unexpected error with the provided message.
func NewUnexpected(message string, err ...error) Unexpected {
	return Unexpected{
		base: newBase(message, err...),
	}
}

// IsSearchFailure reports whether err belongs to the class of failures that
// the search page collapses into a single "search failed" notification:
// transport failures, non-2xx statuses and malformed bodies.
func IsSearchFailure(err error) bool {
	var (
		transport Transport
		status    Status
		decode    Decode
	)
	return errors.As(err, &transport) || errors.As(err, &status) || errors.As(err, &decode)
}

// ServiceUnavailable represents a search endpoint that is not ready.
type ServiceUnavailable struct {
	base
}

// Error returns the error message for ServiceUnavailable.
func (su ServiceUnavailable) Error() string {
	return su.error()
}

// NewServiceUnavailable creates a new ServiceUnavailable error with the provided message.
func NewServiceUnavailable(message string, err ...error) ServiceUnavailable {
	return ServiceUnavailable{
		base: newBase(message, err...),
	}
}
