// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"net/http"
)

// SetDefaultHeader registers a header applied to every request before
// per-call configuration runs, replacing any default values previously
// registered for the same name. Per-call configuration may still
// override it on individual requests.
//
// Default header changes are expected to be rare relative to request
// volume; they are safe against concurrently in-flight requests, each
// of which sees a consistent snapshot.
func (c *Client) SetDefaultHeader(name, value string) {
	c.state.mu.Lock()
	c.state.defaults.Set(name, value)
	c.state.mu.Unlock()
}

// WithDefaultHeader registers a default header like SetDefaultHeader
// and returns the client, for chaining during setup.
func (c *Client) WithDefaultHeader(name, value string) *Client {
	c.SetDefaultHeader(name, value)
	return c
}

// ClearDefaultHeaders removes every registered default header.
func (c *Client) ClearDefaultHeaders() {
	c.state.mu.Lock()
	c.state.defaults = make(http.Header)
	c.state.mu.Unlock()
}

// DefaultHeaders returns a copy of the currently registered default
// headers.
func (c *Client) DefaultHeaders() http.Header {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	out := make(http.Header, len(c.state.defaults))
	for name, values := range c.state.defaults {
		out[name] = append([]string(nil), values...)
	}
	return out
}
