// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"

	"github.com/gogama/aegis/security"
)

// New constructs the underlying HTTP engine implied by the security
// policy: a pooled net/http client with the policy's TLS requirements,
// the connect timeout applied at the dial and TLS handshake stages,
// and HTTP/2 negotiation enabled over TLS.
//
// The returned client has no overall timeout; the engine bounds each
// request with a context deadline instead.
//
// Per-policy construction is deliberately one-shot. The client owns
// the result, reuses it for every request, and releases its pooled
// connections via CloseIdleConnections when closed.
func New(p *security.Policy) *http.Client {
	t := &http.Transport{
		TLSClientConfig: p.TLSConfig(),

		DialContext: (&net.Dialer{
			Timeout:   p.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   p.ConnectTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	// Prefer HTTP/2 when the server offers it. An error here means the
	// transport was already configured for HTTP/2, which cannot happen
	// with a freshly built transport.
	_ = http2.ConfigureTransport(t)

	return &http.Client{Transport: t}
}

// Logging wraps doer so that every request's outcome is logged to
// logger with a sanitized URL. Pass the result of New, or any other
// RoundTripper-free HTTP client, as doer.
func Logging(doer *http.Client, logger zerolog.Logger) *http.Client {
	base := doer.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	clone := *doer
	clone.Transport = &loggingTransport{base: base, logger: logger}
	return &clone
}

// loggingTransport logs each request attempt's method, sanitized URL,
// status or error, and duration.
type loggingTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)

	logURL := SanitizeURL(req.URL)
	if err != nil {
		t.logger.Warn().
			Str("method", req.Method).
			Str("url", logURL).
			Dur("duration", dur).
			Err(err).
			Msg("http request failed")
		return nil, err
	}

	evt := t.logger.Debug()
	if resp.StatusCode >= 400 {
		evt = t.logger.Warn()
	}
	evt.
		Str("method", req.Method).
		Str("url", logURL).
		Int("status", resp.StatusCode).
		Dur("duration", dur).
		Msg("http request")
	return resp, nil
}
