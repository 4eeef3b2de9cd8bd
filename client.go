// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"context"
	"errors"
	"io"
	"net/http"
	urlpkg "net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gogama/aegis/breaker"
	"github.com/gogama/aegis/fault"
	"github.com/gogama/aegis/jar"
	"github.com/gogama/aegis/metrics"
	"github.com/gogama/aegis/request"
	"github.com/gogama/aegis/resolve"
	"github.com/gogama/aegis/security"
	"github.com/gogama/aegis/transport"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
//
// The HTTPDoer is the external collaborator that performs the actual
// network I/O. Client configures and invokes it but does not implement
// connection pooling, TLS, or HTTP framing itself.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects) configured on the HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// A Configure callback customizes a single request before dispatch.
// It receives the request builder and may add or override headers,
// attach cookies, or set a per-request timeout.
type Configure func(*request.Builder)

var emptyHandlers = HandlerGroup{}

// clientState holds the client's only mutable configuration: default
// headers and the cookie accept policy, both changeable after
// construction and read by every in-flight request.
type clientState struct {
	mu           sync.RWMutex
	defaults     http.Header
	cookiePolicy jar.AcceptPolicy
}

// A Client is an HTTP execution engine that issues outbound requests
// against a configured base URL, guarded by a circuit breaker, a host
// allow-list, and a response size cap, with a per-client cookie jar
// and default headers.
//
// Construct a Client with New; the zero value is not usable. A Client
// holds pooled connections through its HTTPDoer, so instances should
// be reused rather than created per request, and Close must be called
// when the client is no longer needed to release idle connections.
// All methods are safe for concurrent use by multiple goroutines.
//
// Every request runs the same lifecycle: the target path is resolved
// against the base URL (applying the host allow-list), default headers
// and per-call configuration are merged into a request descriptor, the
// circuit breaker is consulted, and only then is the request handed to
// the HTTPDoer. The outcome is classified - success below status 400
// and within the body size cap, failure otherwise - and failures are
// recorded against the breaker. The synchronous verb methods block
// until the request completes; the Async variants return a Future for
// the same lifecycle running in its own goroutine, and impose no
// ordering between concurrent requests.
type Client struct {
	policy   security.Policy
	resolver *resolve.Resolver
	breaker  *breaker.Breaker
	cookies  *jar.Jar
	doer     HTTPDoer
	handlers *HandlerGroup
	logger   zerolog.Logger
	logSet   bool
	metrics  metrics.Collector
	limiter  *rate.Limiter

	state clientState
}

// An Option customizes a Client at construction.
type Option func(*Client)

// WithDoer installs a custom HTTPDoer, replacing the transport the
// client would otherwise build from its security policy. Useful for
// tests and for sharing one transport between clients.
func WithDoer(d HTTPDoer) Option {
	return func(c *Client) { c.doer = d }
}

// WithLogger installs a logger. Request outcomes are logged through
// the transport's logging layer and circuit breaker rejections are
// logged by the client itself. Without this option nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger; c.logSet = true }
}

// WithMetrics installs a metrics collector. Without this option
// metrics are discarded.
func WithMetrics(m metrics.Collector) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithHandlers installs a group of event handlers invoked at the
// lifecycle plug-in points.
func WithHandlers(g *HandlerGroup) Option {
	return func(c *Client) {
		if g != nil {
			c.handlers = g
		}
	}
}

// WithRateLimit caps the client's dispatch rate to limit requests per
// second with the given burst. Requests wait for a token before the
// circuit breaker is consulted; a request canceled while waiting is
// not counted as a breaker failure.
func WithRateLimit(limit float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(limit), burst) }
}

// WithDefaultHeader registers a default header applied to every
// request, before per-call configuration runs.
func WithDefaultHeader(name, value string) Option {
	return func(c *Client) { c.state.defaults.Set(name, value) }
}

// New constructs a Client from the given security policy. The policy
// is validated and then frozen: the client keeps its own copy and
// never mutates it. An invalid policy yields a *ConfigError.
func New(p security.Policy, opts ...Option) (*Client, error) {
	if err := p.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	c := &Client{
		policy:   p,
		resolver: resolve.New(p.Base(), p.Hosts(), p.AllowAbsoluteURLs),
		breaker:  breaker.New(p.FailureThreshold, p.ResetTimeout),
		cookies:  jar.New(),
		handlers: &emptyHandlers,
		logger:   zerolog.Nop(),
		metrics:  metrics.Nop{},
	}
	c.state.defaults = make(http.Header)
	c.state.cookiePolicy = p.CookiePolicy
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		hc := transport.New(&c.policy)
		if c.logSet {
			hc = transport.Logging(hc, c.logger)
		}
		c.doer = hc
	}
	return c, nil
}

// Close releases resources held by the client, closing any idle
// pooled connections in the underlying HTTPDoer. Callers must invoke
// Close when they are done with the client; there is no implicit
// process-exit cleanup. A closed client must not be used again.
func (c *Client) Close() {
	if ic, ok := c.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// Breaker exposes the client's circuit breaker, chiefly so callers
// can Reset it after an out-of-band signal that the remote service
// has recovered.
func (c *Client) Breaker() *breaker.Breaker {
	return c.breaker
}

// Send issues a request with the given method and target path,
// blocking until it completes or fails. It is the synchronous form of
// SendAsync and behaves identically to SendAsync followed by Wait.
//
// The method must be one of GET, POST, PUT, PATCH, DELETE, HEAD, or
// OPTIONS. The body parameter may be nil, or any of the types accepted
// by request.BodyBytes: string, []byte, io.Reader, io.ReadCloser.
//
// The error returned is always one of the classified kinds:
// *TargetError (rejected before dispatch), *CircuitOpenError (breaker
// open, no network attempt), *StatusError (status >= 400),
// *TooLargeError (body over the cap), or *FaultError (transport-level
// failure). Callers can branch on the kind with errors.As to pick a
// retry strategy.
func (c *Client) Send(ctx context.Context, method, path string, body interface{}, cfg ...Configure) (*Envelope, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, method, path, b, "", cfg)
}

// SendMultipart issues a request whose body is the given multipart
// parts serialized as multipart/form-data under a freshly generated
// boundary. The Content-Type header is set to declare the boundary,
// overriding any Content-Type from default headers or per-call
// configuration.
func (c *Client) SendMultipart(ctx context.Context, method, path string, parts []request.Part, cfg ...Configure) (*Envelope, error) {
	body, contentType, err := request.EncodeMultipart(parts)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, method, path, body, contentType, cfg)
}

// execute runs one complete request lifecycle. The lifecycle admits
// the request through the circuit breaker, dispatches it, classifies
// the outcome, and records failures against the breaker exactly once.
func (c *Client) execute(ctx context.Context, method, path string, body []byte, multipartType string, cfgs []Configure) (*Envelope, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := c.resolver.Resolve(path)
	if err != nil {
		// Rejected before any network attempt: not a breaker failure.
		return nil, err
	}
	d, err := request.New(method, u, body)
	if err != nil {
		return nil, err
	}
	d = d.WithContext(ctx)

	cookiePolicy := c.assemble(d, multipartType, cfgs)

	x := &Exchange{Descriptor: d}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FaultError{Category: fault.Categorize(err), URL: transport.SanitizeURL(u), Err: err}
		}
	}

	if !c.breaker.Admit() {
		oerr := &CircuitOpenError{Host: u.Host}
		x.Err = oerr
		c.metrics.IncCircuitRejections(u.Host)
		c.logger.Warn().Str("host", u.Host).Msg("request rejected: circuit open")
		c.handlers.run(AfterRejected, x)
		return nil, oerr
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = c.policy.RequestTimeout
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.handlers.run(BeforeSend, x)
	c.metrics.IncRequests(d.Method, u.Host)
	x.Start = time.Now()

	resp, err := c.doer.Do(d.ToRequest(sendCtx))
	if err != nil {
		ferr := &FaultError{Category: fault.Categorize(err), URL: transport.SanitizeURL(u), Err: err}
		return nil, c.fail(x, u, ferr)
	}

	env, rerr := c.receive(u, resp)
	if rerr != nil {
		return nil, c.fail(x, u, rerr)
	}

	c.cookies.Update(cookiePolicy, u.Host, cookiesOf(resp))
	x.Envelope = env
	x.End = time.Now()
	c.metrics.ObserveLatency(d.Method, u.Host, x.End.Sub(x.Start))
	c.handlers.run(AfterResponse, x)
	return env, nil
}

// assemble merges default headers and per-call configuration into the
// descriptor, synthesizes a Cookie header from the jar when the caller
// set none, and applies the multipart Content-Type last so it wins.
// It returns the cookie accept policy in force for this request.
func (c *Client) assemble(d *request.Descriptor, multipartType string, cfgs []Configure) jar.AcceptPolicy {
	c.state.mu.RLock()
	for name, values := range c.state.defaults {
		for _, v := range values {
			d.Header.Add(name, v)
		}
	}
	cookiePolicy := c.state.cookiePolicy
	c.state.mu.RUnlock()

	b := request.NewBuilder(d)
	for _, cfg := range cfgs {
		if cfg != nil {
			cfg(b)
		}
	}

	if !b.CookieSet() {
		if h := c.cookies.Header(); h != "" {
			d.Header.Set("Cookie", h)
		}
	}

	if multipartType != "" {
		d.Header.Set("Content-Type", multipartType)
	}
	return cookiePolicy
}

// receive buffers the response body under the size cap and classifies
// the response. The response body is always drained and closed.
func (c *Client) receive(u *urlpkg.URL, resp *http.Response) (*Envelope, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	max := c.policy.MaxResponseBytes
	if resp.ContentLength > max {
		return nil, &TooLargeError{Limit: max}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, max+1))
	if err != nil {
		return nil, &FaultError{Category: fault.Categorize(err), URL: transport.SanitizeURL(u), Err: err}
	}
	if int64(len(body)) > max {
		return nil, &TooLargeError{Limit: max}
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return &Envelope{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// fail finalizes a failed lifecycle: records the failure against the
// circuit breaker (exactly once per request), reports metrics, and
// fires AfterFailure.
func (c *Client) fail(x *Exchange, u *urlpkg.URL, err error) error {
	x.Err = err
	x.End = time.Now()
	c.breaker.RecordFailure()

	status := 0
	var se *StatusError
	if errors.As(err, &se) {
		status = se.StatusCode
	}
	c.metrics.IncFailures(x.Descriptor.Method, u.Host, status)
	c.metrics.ObserveLatency(x.Descriptor.Method, u.Host, x.End.Sub(x.Start))
	c.handlers.run(AfterFailure, x)
	return err
}

// cookiesOf parses the response's Set-Cookie headers.
func cookiesOf(resp *http.Response) []*http.Cookie {
	if len(resp.Header["Set-Cookie"]) == 0 {
		return nil
	}
	return resp.Cookies()
}
