// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package breaker

import (
	"sync"
	"time"
)

// A Breaker tracks consecutive request failures against a remote
// service and gates new requests while the service appears down.
//
// The breaker is CLOSED until the number of consecutive recorded
// failures reaches the configured threshold, at which point it OPENS
// and Admit rejects every request until the reset window elapses. The
// first Admit after the window implicitly resets the breaker and lets
// the request through; that request's outcome alone decides whether
// the breaker reopens (half-open by trial). There is no probe limit:
// concurrent Admit calls arriving just after the window may all pass.
//
// Recording a success is the caller's choice: the breaker does not
// clear its failure count unless Reset is called, so successes
// interleaved with failures below the threshold do not slow the climb
// toward it.
//
// Both fields are guarded by one mutex, so Admit's check-and-reset is
// a single linearizable step and an open breaker always has a non-zero
// opened-at time. Breaker is safe for concurrent use by multiple
// goroutines.
type Breaker struct {
	threshold int
	reset     time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time

	now func() time.Time // test hook
}

// New returns a closed breaker that opens after threshold consecutive
// failures and admits a trial request once reset has elapsed.
// A threshold below one is treated as one.
func New(threshold int, reset time.Duration) *Breaker {
	if threshold < 1 {
		threshold = 1
	}
	return &Breaker{
		threshold: threshold,
		reset:     reset,
		now:       time.Now,
	}
}

// Admit reports whether a new request may proceed.
//
// If the breaker is open and the reset window has not yet elapsed,
// Admit returns false. If the window has elapsed, Admit resets the
// breaker and returns true.
func (b *Breaker) Admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.openedAt.IsZero() {
		return true
	}
	if b.now().Sub(b.openedAt) <= b.reset {
		return false
	}
	b.failures = 0
	b.openedAt = time.Time{}
	return true
}

// RecordFailure counts one more consecutive failure, opening the
// breaker if the count reaches the threshold. The first breach sets
// the opened-at time; later failures while open do not move it.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.threshold && b.openedAt.IsZero() {
		b.openedAt = b.now()
	}
}

// Reset closes the breaker and clears the failure count. Resetting a
// closed breaker is a no-op.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openedAt = time.Time{}
}

// Open reports whether the breaker is currently open. The result is
// advisory only: by the time the caller acts on it another goroutine
// may have changed the state. Use Admit to gate a request.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.openedAt.IsZero() && b.now().Sub(b.openedAt) <= b.reset
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
