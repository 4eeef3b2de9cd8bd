// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

// An Event identifies the plug-in point when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality, for example request signing or audit logging.
type Event int

const (
	// BeforeSend identifies the event that occurs after the request
	// has been resolved, assembled, and admitted by the circuit
	// breaker, immediately before it is handed to the transport.
	//
	// When Client fires BeforeSend, the exchange's Descriptor is set
	// and may still be adjusted (for example to sign headers);
	// Envelope and Err are nil.
	BeforeSend Event = iota
	// AfterRejected identifies the event that occurs when the circuit
	// breaker refuses to admit the request. The transport is never
	// invoked.
	//
	// When Client fires AfterRejected, the exchange's Err holds the
	// *CircuitOpenError that will be returned to the caller.
	AfterRejected
	// AfterResponse identifies the event that occurs when a request
	// completes successfully: a status below 400 with a body within
	// the size cap.
	//
	// When Client fires AfterResponse, the exchange's Envelope is set
	// and Err is nil. The cookie jar has already been updated.
	AfterResponse
	// AfterFailure identifies the event that occurs when a dispatched
	// request fails: a transport fault, a status of 400 or above, or
	// an oversized body.
	//
	// When Client fires AfterFailure, the exchange's Err holds the
	// classified error and the failure has already been recorded
	// against the circuit breaker.
	AfterFailure
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeSend",
	"AfterRejected",
	"AfterResponse",
	"AfterFailure",
}

// Events returns a slice containing all events which can occur in a
// request lifecycle, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeSend,
		AfterRejected,
		AfterResponse,
		AfterFailure,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
