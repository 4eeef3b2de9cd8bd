// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"fmt"

	"github.com/gogama/aegis/fault"
	"github.com/gogama/aegis/resolve"
)

// A ConfigError reports an invalid security policy at client
// construction. It is fatal: no client exists to retry with.
type ConfigError struct {
	// Err is the underlying validation error.
	Err error
}

func (e *ConfigError) Error() string {
	return "aegis: invalid configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A TargetError reports a request target rejected before dispatch:
// malformed, absolute when absolute URLs are disallowed, or outside
// the host allow-list. No network attempt was made and the circuit
// breaker is not touched.
type TargetError = resolve.TargetError

// A CircuitOpenError reports a request rejected without a network
// attempt because the circuit breaker is open. No additional failure
// is recorded. Callers should back off rather than retry immediately;
// the breaker admits a trial request once its reset window elapses.
type CircuitOpenError struct {
	// Host is the request target host the breaker is protecting.
	Host string
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("aegis: circuit open for host %q", e.Host)
}

// A StatusError reports a response with status code 400 or above. The
// request reached the server; the failure is specific to this request.
// It counts as a circuit breaker failure.
type StatusError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int
	// Body is the buffered response body, which often carries the
	// server's explanation of the failure.
	Body []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("aegis: HTTP status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("aegis: HTTP status %d", e.StatusCode)
}

// A TooLargeError reports a response body exceeding the policy's
// MaxResponseBytes cap. It counts as a circuit breaker failure.
type TooLargeError struct {
	// Limit is the configured cap in bytes.
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("aegis: response body exceeds %d byte limit", e.Limit)
}

// A FaultError reports a transport-level failure: the request never
// produced a structured HTTP response. The underlying cause is
// preserved and the category tells retry strategy apart (a timeout and
// a refused connection call for different reactions). It counts as a
// circuit breaker failure.
type FaultError struct {
	// Category classifies the fault.
	Category fault.Category
	// URL is the sanitized request target.
	URL string
	// Err is the underlying transport error.
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("aegis: %s fault for %s: %s", e.Category, e.URL, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the fault was a timeout, following the
// net.Error convention.
func (e *FaultError) Timeout() bool {
	return e.Category == fault.Timeout
}
