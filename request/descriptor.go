// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"time"
)

var template, _ = http.NewRequest("GET", "", nil)

// Methods the engine will dispatch. Anything else is rejected at
// descriptor construction.
var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// bodyMethods are the methods that carry a request body by default.
// For these an absent body is normalized to an empty one so the
// request always has a body publisher.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// A Descriptor is a transport-ready description of one outbound HTTP
// request: method, resolved target URL, merged headers, buffered body,
// and any per-request timeout override.
//
// A Descriptor is built fresh for every request and never shared
// between requests, so it needs no synchronization. The body is fully
// buffered, which keeps the request repeatable and transaction-shaped
// rather than stream-shaped.
type Descriptor struct {
	// Method is the HTTP method. It is always one of GET, POST, PUT,
	// PATCH, DELETE, HEAD, or OPTIONS.
	Method string

	// URL is the fully-qualified request target.
	URL *urlpkg.URL

	// Header contains the request headers to send. Multiple values
	// per name are permitted and names are case-insensitive, per
	// net/http.Header semantics.
	Header http.Header

	// Body is the pre-buffered request body. A nil body means no body
	// is sent; an empty non-nil body sends Content-Length: 0.
	Body []byte

	// Timeout overrides the client's default request timeout when
	// positive. Zero means use the default.
	Timeout time.Duration

	// Host optionally overrides the Host header. If empty, URL.Host
	// is sent.
	Host string

	// ctx cancels the dispatch of this descriptor. Modify only by
	// copying the whole Descriptor via WithContext.
	ctx context.Context
}

// New returns a Descriptor for the given method, resolved URL, and
// optional body. The method must be one of the seven supported verbs.
// For POST, PUT, and PATCH a nil body is normalized to an empty one.
func New(method string, u *urlpkg.URL, body []byte) (*Descriptor, error) {
	if method == "" {
		method = http.MethodGet
	}
	if !validMethods[method] {
		return nil, fmt.Errorf("request: unsupported method %q", method)
	}
	if body == nil && bodyMethods[method] {
		body = []byte{}
	}
	return &Descriptor{
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   body,
		Host:   u.Host,
	}, nil
}

// Context returns the descriptor's context, defaulting to the
// background context.
func (d *Descriptor) Context() context.Context {
	if d.ctx != nil {
		return d.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of d with its context changed to
// ctx, which must be non-nil.
func (d *Descriptor) WithContext(ctx context.Context) *Descriptor {
	if ctx == nil {
		panic("request: nil context")
	}
	d2 := new(Descriptor)
	*d2 = *d
	d2.ctx = ctx
	return d2
}

// AddCookie appends a cookie to the descriptor's Cookie header. Per
// RFC 6265 section 5.4 all cookies share a single Cookie header line,
// separated by semicolons.
func (d *Descriptor) AddCookie(c *http.Cookie) {
	s := (&http.Cookie{Name: c.Name, Value: c.Value}).String()
	if h := d.Header.Get("Cookie"); h != "" {
		d.Header.Set("Cookie", h+"; "+s)
	} else {
		d.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the Authorization header to use HTTP Basic
// Authentication with the provided username and password. The
// credentials are not encrypted in transit unless the URL scheme is
// https.
func (d *Descriptor) SetBasicAuth(username, password string) {
	auth := username + ":" + password
	d.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
}

// ToRequest converts the descriptor into an *http.Request bound to
// ctx, which must not be nil.
func (d *Descriptor) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = d.Method
	r.URL = d.URL
	r.Header = d.Header
	if d.Body != nil {
		body := d.Body
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
	}
	r.Host = d.Host
	return r
}
