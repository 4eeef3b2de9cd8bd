// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"time"
)

// A Builder is the per-call configuration capability handed to the
// caller's Configure callback before a request is dispatched. It
// mutates the underlying Descriptor and records which choices the
// caller made explicitly, so the client can avoid clobbering them with
// defaults afterward.
//
// A Builder is only valid for the duration of the callback it is
// passed to.
type Builder struct {
	d         *Descriptor
	setCookie bool
}

// NewBuilder returns a builder over d.
func NewBuilder(d *Descriptor) *Builder {
	return &Builder{d: d}
}

// Header sets a request header, replacing any values previously set
// for the same name.
func (b *Builder) Header(name, value string) *Builder {
	b.d.Header.Set(name, value)
	if http.CanonicalHeaderKey(name) == "Cookie" {
		b.setCookie = true
	}
	return b
}

// AddHeader appends a request header value, preserving any values
// previously set for the same name.
func (b *Builder) AddHeader(name, value string) *Builder {
	b.d.Header.Add(name, value)
	if http.CanonicalHeaderKey(name) == "Cookie" {
		b.setCookie = true
	}
	return b
}

// Cookie attaches one cookie to the request. Cookies attached here
// replace any Cookie header the client would otherwise synthesize
// from its jar.
func (b *Builder) Cookie(name, value string) *Builder {
	b.d.AddCookie(&http.Cookie{Name: name, Value: value})
	b.setCookie = true
	return b
}

// Cookies attaches every entry of m as a cookie on the request.
func (b *Builder) Cookies(m map[string]string) *Builder {
	for name, value := range m {
		b.Cookie(name, value)
	}
	return b
}

// Timeout overrides the client's default request timeout for this
// request only. Non-positive values are ignored.
func (b *Builder) Timeout(d time.Duration) *Builder {
	if d > 0 {
		b.d.Timeout = d
	}
	return b
}

// BasicAuth sets the Authorization header for HTTP Basic
// Authentication.
func (b *Builder) BasicAuth(username, password string) *Builder {
	b.d.SetBasicAuth(username, password)
	return b
}

// CookieSet reports whether the callback set a Cookie header
// explicitly, via Header, AddHeader, Cookie, or Cookies.
func (b *Builder) CookieSet() bool {
	return b.setCookie || b.d.Header.Get("Cookie") != ""
}
