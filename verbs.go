// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"context"
	"net/http"
	urlpkg "net/url"

	"github.com/gogama/aegis/request"
)

// Get issues a GET to the given path, blocking until it completes.
// The path may be relative to the client's base URL or, if the policy
// allows, an absolute URL within the host allow-list.
func (c *Client) Get(ctx context.Context, path string, cfg ...Configure) (*Envelope, error) {
	return c.execute(ctx, http.MethodGet, path, nil, "", cfg)
}

// Head issues a HEAD to the given path, blocking until it completes.
// The returned envelope is headers-only.
func (c *Client) Head(ctx context.Context, path string, cfg ...Configure) (*Envelope, error) {
	return c.execute(ctx, http.MethodHead, path, nil, "", cfg)
}

// Options issues an OPTIONS to the given path, blocking until it
// completes.
func (c *Client) Options(ctx context.Context, path string, cfg ...Configure) (*Envelope, error) {
	return c.execute(ctx, http.MethodOptions, path, nil, "", cfg)
}

// Delete issues a DELETE to the given path, blocking until it
// completes. DELETE requests carry no body.
func (c *Client) Delete(ctx context.Context, path string, cfg ...Configure) (*Envelope, error) {
	return c.execute(ctx, http.MethodDelete, path, nil, "", cfg)
}

// Post issues a POST to the given path, blocking until it completes.
//
// The body parameter may be nil for an empty body, or any of the types
// accepted by request.BodyBytes: string, []byte, io.Reader, or
// io.ReadCloser. Set a Content-Type via a Configure callback or a
// default header.
func (c *Client) Post(ctx context.Context, path string, body interface{}, cfg ...Configure) (*Envelope, error) {
	return c.Send(ctx, http.MethodPost, path, body, cfg...)
}

// Put issues a PUT to the given path, blocking until it completes.
// The body parameter follows the same rules as Post.
func (c *Client) Put(ctx context.Context, path string, body interface{}, cfg ...Configure) (*Envelope, error) {
	return c.Send(ctx, http.MethodPut, path, body, cfg...)
}

// Patch issues a PATCH to the given path, blocking until it completes.
// The body parameter follows the same rules as Post.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, cfg ...Configure) (*Envelope, error) {
	return c.Send(ctx, http.MethodPatch, path, body, cfg...)
}

// PostForm issues a POST to the given path with data's keys and values
// URL-encoded as the request body and the Content-Type header set to
// application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, path string, data urlpkg.Values, cfg ...Configure) (*Envelope, error) {
	cfg = append([]Configure{func(b *request.Builder) {
		b.Header("Content-Type", "application/x-www-form-urlencoded")
	}}, cfg...)
	return c.Post(ctx, path, data.Encode(), cfg...)
}

// PostMultipart issues a POST to the given path with the parts
// serialized as a multipart/form-data body under a fresh boundary.
func (c *Client) PostMultipart(ctx context.Context, path string, parts []request.Part, cfg ...Configure) (*Envelope, error) {
	return c.SendMultipart(ctx, http.MethodPost, path, parts, cfg...)
}
