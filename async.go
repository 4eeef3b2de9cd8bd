// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"context"
	"net/http"

	"github.com/gogama/aegis/request"
)

// A Future is the handle to a request running asynchronously. The
// request runs in its own goroutine; any number of futures from the
// same client may be in flight at once, and they complete in no
// particular order.
//
// A Future completes exactly once. After completion the result is
// stable and Wait may be called any number of times.
type Future struct {
	done chan struct{}
	env  *Envelope
	err  error
}

// Done returns a channel that is closed when the request completes,
// for use in select statements.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the request completes and returns its envelope or
// classified error, exactly as the synchronous verb methods do. The
// request's own timeout bounds how long Wait can block.
func (f *Future) Wait() (*Envelope, error) {
	<-f.done
	return f.env, f.err
}

// spawn runs fn as one independent unit of concurrency. The engine
// keeps no worker pool; connection-level multiplexing and pooling
// belong to the transport.
func spawn(fn func() (*Envelope, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.env, f.err = fn()
	}()
	return f
}

// SendAsync starts a request with the given method and target path and
// returns immediately. The returned Future completes when the request
// does. Parameters follow the same rules as Send.
func (c *Client) SendAsync(ctx context.Context, method, path string, body interface{}, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Send(ctx, method, path, body, cfg...)
	})
}

// SendMultipartAsync is the asynchronous form of SendMultipart.
func (c *Client) SendMultipartAsync(ctx context.Context, method, path string, parts []request.Part, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.SendMultipart(ctx, method, path, parts, cfg...)
	})
}

// GetAsync is the asynchronous form of Get.
func (c *Client) GetAsync(ctx context.Context, path string, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Get(ctx, path, cfg...)
	})
}

// HeadAsync is the asynchronous form of Head.
func (c *Client) HeadAsync(ctx context.Context, path string, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Head(ctx, path, cfg...)
	})
}

// OptionsAsync is the asynchronous form of Options.
func (c *Client) OptionsAsync(ctx context.Context, path string, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Options(ctx, path, cfg...)
	})
}

// DeleteAsync is the asynchronous form of Delete.
func (c *Client) DeleteAsync(ctx context.Context, path string, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Delete(ctx, path, cfg...)
	})
}

// PostAsync is the asynchronous form of Post.
func (c *Client) PostAsync(ctx context.Context, path string, body interface{}, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Post(ctx, path, body, cfg...)
	})
}

// PutAsync is the asynchronous form of Put.
func (c *Client) PutAsync(ctx context.Context, path string, body interface{}, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Put(ctx, path, body, cfg...)
	})
}

// PatchAsync is the asynchronous form of Patch.
func (c *Client) PatchAsync(ctx context.Context, path string, body interface{}, cfg ...Configure) *Future {
	return spawn(func() (*Envelope, error) {
		return c.Patch(ctx, path, body, cfg...)
	})
}

// PostMultipartAsync is the asynchronous form of PostMultipart.
func (c *Client) PostMultipartAsync(ctx context.Context, path string, parts []request.Part, cfg ...Configure) *Future {
	return c.SendMultipartAsync(ctx, http.MethodPost, path, parts, cfg...)
}
