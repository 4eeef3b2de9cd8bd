// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"net/http"
	"time"

	"github.com/gogama/aegis/request"
)

// An Envelope is the caller-visible result of a completed request: the
// status code, the response headers, and the fully-buffered body.
//
// An Envelope is constructed once per completed request and never
// modified afterward; the caller owns it after return. For HEAD and
// OPTIONS requests the body is typically empty and the envelope is
// effectively headers-only.
type Envelope struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the complete buffered response body. It may be empty,
	// but is never read lazily: by the time the envelope is returned
	// the connection has been drained.
	Body []byte
}

// Text returns the body decoded as a string.
func (e *Envelope) Text() string {
	return string(e.Body)
}

// An Exchange carries the state of one request lifecycle past the
// plug-in points. Handlers receive the same Exchange at every event of
// a given request and may read any field; they must treat the fields
// as read-only.
type Exchange struct {
	// Descriptor is the assembled request. It is non-nil at every
	// event.
	Descriptor *request.Descriptor

	// Envelope is the response, non-nil only from AfterResponse
	// onward on the success path.
	Envelope *Envelope

	// Err is the classified error, non-nil only on the failure path.
	Err error

	// Start is when the lifecycle entered dispatch; End is when it
	// completed. End is zero until the request finishes.
	Start time.Time
	End   time.Time
}
