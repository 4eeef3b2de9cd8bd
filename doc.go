// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package aegis provides a client-side HTTP execution engine for
// applications that call one or more HTTP(S) backends repeatedly and
// need to stay responsive while those backends are partially down.
//
// On top of the request features provided by the underlying HTTPDoer
// (typically a pooled net/http client built by the transport
// subpackage), a Client adds:
//
// • a consecutive-failure circuit breaker consulted before every
// dispatch, so a failing backend stops receiving traffic for a
// cooldown window instead of dragging every caller down with it;
//
// • a host allow-list applied when resolving request targets, so a
// request can never be redirected to an unintended host;
//
// • a uniform request contract across GET, POST, PUT, PATCH, DELETE,
// HEAD, and OPTIONS: default headers, a per-call configuration
// callback, a per-client cookie jar, buffered bodies (including
// multipart/form-data), and a response size cap;
//
// • a classified error taxonomy - *TargetError, *CircuitOpenError,
// *StatusError, *TooLargeError, *FaultError - so callers can tell
// "the service is circuit-broken" from "this request failed" from
// "this request was rejected before being sent" and choose a retry
// strategy accordingly;
//
// • a synchronous and an asynchronous call surface per verb over the
// same lifecycle: the Async variants return a Future and each request
// runs as one independent goroutine, with connection pooling left to
// the transport.
//
// Construct a Client from a security.Policy:
//
//	p := security.Default()
//	p.BaseURL = "https://api.example.com"
//	p.FailureThreshold = 3
//	client, err := aegis.New(p)
//	if err != nil {
//		// *aegis.ConfigError
//	}
//	defer client.Close()
//
//	env, err := client.Get(ctx, "/users/42", func(b *request.Builder) {
//		b.Header("Accept", "application/json").Timeout(2 * time.Second)
//	})
//
// Clients hold pooled connections and should be reused rather than
// created per request. Close must be called when a client is no longer
// needed. All of Client's methods are safe for concurrent use by
// multiple goroutines.
//
// This package deliberately is not a retry framework: the only
// implicit recovery is the circuit breaker's timeout-based transition
// back to closed. Callers wanting retries can layer them on top using
// the classified errors.
package aegis
