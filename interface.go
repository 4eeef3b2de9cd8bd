// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"context"

	"github.com/gogama/aegis/request"
)

// Sender is the interface that wraps the basic Send method.
//
// Send issues one HTTP request through the engine's full lifecycle and
// blocks until it completes. Client implements the Sender interface,
// and any other Sender implementation must behave substantially the
// same as Client.Send.
type Sender interface {
	Send(ctx context.Context, method, path string, body interface{}, cfg ...Configure) (*Envelope, error)
}

// AsyncSender is the interface that wraps the basic SendAsync method.
//
// SendAsync starts one HTTP request running in its own goroutine and
// returns a Future for it. Client implements the AsyncSender
// interface.
type AsyncSender interface {
	SendAsync(ctx context.Context, method, path string, body interface{}, cfg ...Configure) *Future
}

// Getter is the interface that wraps the basic Get method.
//
// Get issues a GET to the given path, following the same lifecycle as
// Send. Client implements the Getter interface.
type Getter interface {
	Get(ctx context.Context, path string, cfg ...Configure) (*Envelope, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post issues a POST to the given path, following the same lifecycle
// as Send. The body parameter may be nil or any of the types accepted
// by request.BodyBytes. Client implements the Poster interface.
type Poster interface {
	Post(ctx context.Context, path string, body interface{}, cfg ...Configure) (*Envelope, error)
}

// MultipartSender is the interface that wraps the basic SendMultipart
// method. Client implements the MultipartSender interface.
type MultipartSender interface {
	SendMultipart(ctx context.Context, method, path string, parts []request.Part, cfg ...Configure) (*Envelope, error)
}

// IdleCloser is the interface that wraps the basic
// CloseIdleConnections method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes connections which were previously used but are now sitting
// idle in a "keep-alive" state. It does not interrupt any connections
// currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Closer is the interface that wraps the basic Close method. Callers
// own the lifetime of an Executor and must Close it when done.
type Closer interface {
	Close()
}

// Executor is the interface that groups the engine's request surfaces
// and lifetime contract. Client implements Executor.
type Executor interface {
	Sender
	AsyncSender
	MultipartSender
	Getter
	Poster
	Closer
}
