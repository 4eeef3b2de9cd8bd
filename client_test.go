// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"context"
	"net/http"
	urlpkg "net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/aegis/jar"
	"github.com/gogama/aegis/request"
	"github.com/gogama/aegis/security"
)

// fakeCollector records metric calls for assertion.
type fakeCollector struct {
	mu         sync.Mutex
	requests   int
	failures   int
	statuses   []int
	rejections int
	latencies  int
}

func (f *fakeCollector) IncRequests(string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
}

func (f *fakeCollector) IncFailures(_, _ string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures++
	f.statuses = append(f.statuses, status)
}

func (f *fakeCollector) IncCircuitRejections(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections++
}

func (f *fakeCollector) ObserveLatency(_, _ string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latencies++
}

func (f *fakeCollector) snapshot() fakeCollector {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeCollector{
		requests:   f.requests,
		failures:   f.failures,
		statuses:   append([]int(nil), f.statuses...),
		rejections: f.rejections,
		latencies:  f.latencies,
	}
}

func TestNewInvalidPolicy(t *testing.T) {
	p := security.Default() // no BaseURL
	c, err := New(p)
	assert.Nil(t, c)
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, cerr.Unwrap().Error(), "security:")
}

func TestVerbs(t *testing.T) {
	c := newTestClient(t, nil)
	ctx := context.Background()

	testCases := []struct {
		method string
		send   func() (*Envelope, error)
		body   string
	}{
		{"GET", func() (*Envelope, error) { return c.Get(ctx, "/echo") }, ""},
		{"DELETE", func() (*Envelope, error) { return c.Delete(ctx, "/echo") }, ""},
		{"OPTIONS", func() (*Envelope, error) { return c.Options(ctx, "/echo") }, ""},
		{"POST", func() (*Envelope, error) { return c.Post(ctx, "/echo", "post body") }, "post body"},
		{"PUT", func() (*Envelope, error) { return c.Put(ctx, "/echo", []byte("put body")) }, "put body"},
		{"PATCH", func() (*Envelope, error) { return c.Patch(ctx, "/echo", strings.NewReader("patch body")) }, "patch body"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.method, func(t *testing.T) {
			env, err := testCase.send()
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, env.StatusCode)
			reply := decodeEcho(t, env)
			assert.Equal(t, testCase.method, reply.Method)
			assert.Equal(t, "/echo", reply.Path)
			assert.Equal(t, testCase.body, reply.Body)
		})
	}

	t.Run("HEAD", func(t *testing.T) {
		env, err := c.Head(ctx, "/echo")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Empty(t, env.Body)
		assert.Equal(t, "application/json", env.Header.Get("Content-Type"))
	})

	t.Run("Send", func(t *testing.T) {
		env, err := c.Send(ctx, http.MethodPost, "/echo", "via send")
		require.NoError(t, err)
		assert.Equal(t, "via send", decodeEcho(t, env).Body)
	})

	t.Run("Send rejects unsupported method", func(t *testing.T) {
		env, err := c.Send(ctx, "TRACE", "/echo", nil)
		assert.Nil(t, env)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported method")
	})

	t.Run("Send rejects bad body type", func(t *testing.T) {
		env, err := c.Send(ctx, http.MethodPost, "/echo", 42)
		assert.Nil(t, env)
		require.Error(t, err)
	})
}

func TestPostForm(t *testing.T) {
	c := newTestClient(t, nil)
	env, err := c.PostForm(context.Background(), "/echo", urlpkg.Values{
		"name": {"aegis"},
		"tags": {"a", "b"},
	})
	require.NoError(t, err)

	reply := decodeEcho(t, env)
	assert.Equal(t, "POST", reply.Method)
	assert.Equal(t, []string{"application/x-www-form-urlencoded"}, reply.Header["Content-Type"])
	parsed, err := urlpkg.ParseQuery(reply.Body)
	require.NoError(t, err)
	assert.Equal(t, urlpkg.Values{"name": {"aegis"}, "tags": {"a", "b"}}, parsed)
}

func TestPostMultipart(t *testing.T) {
	c := newTestClient(t, nil)

	t.Run("parts arrive", func(t *testing.T) {
		env, err := c.PostMultipart(context.Background(), "/echo", []request.Part{
			{Name: "comment", Data: []byte("hello")},
			{Name: "upload", Filename: "a.bin", ContentType: "application/octet-stream", Data: []byte{1, 2, 3}},
		})
		require.NoError(t, err)

		reply := decodeEcho(t, env)
		require.Len(t, reply.Header["Content-Type"], 1)
		assert.True(t, strings.HasPrefix(reply.Header["Content-Type"][0], "multipart/form-data; boundary="))
		assert.Contains(t, reply.Body, `name="comment"`)
		assert.Contains(t, reply.Body, "hello")
		assert.Contains(t, reply.Body, `filename="a.bin"`)
	})

	t.Run("multipart content type wins", func(t *testing.T) {
		env, err := c.PostMultipart(context.Background(), "/echo", []request.Part{
			{Name: "a", Data: []byte("x")},
		}, func(b *request.Builder) {
			b.Header("Content-Type", "text/plain")
		})
		require.NoError(t, err)

		reply := decodeEcho(t, env)
		require.Len(t, reply.Header["Content-Type"], 1)
		assert.True(t, strings.HasPrefix(reply.Header["Content-Type"][0], "multipart/form-data"))
	})

	t.Run("empty parts rejected", func(t *testing.T) {
		env, err := c.PostMultipart(context.Background(), "/echo", nil)
		assert.Nil(t, env)
		require.Error(t, err)
	})
}

func TestDefaultHeaders(t *testing.T) {
	t.Run("applied to every request", func(t *testing.T) {
		c := newTestClient(t, nil, WithDefaultHeader("X-Api-Version", "7"))
		c.SetDefaultHeader("User-Agent", "aegis-test")

		env, err := c.Get(context.Background(), "/echo")
		require.NoError(t, err)
		reply := decodeEcho(t, env)
		assert.Equal(t, []string{"7"}, reply.Header["X-Api-Version"])
		assert.Equal(t, []string{"aegis-test"}, reply.Header["User-Agent"])
	})

	t.Run("per-call configuration wins", func(t *testing.T) {
		c := newTestClient(t, nil, WithDefaultHeader("X-Api-Version", "7"))
		env, err := c.Get(context.Background(), "/echo", func(b *request.Builder) {
			b.Header("X-Api-Version", "8")
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"8"}, decodeEcho(t, env).Header["X-Api-Version"])
	})

	t.Run("clear and snapshot", func(t *testing.T) {
		c := newTestClient(t, nil, WithDefaultHeader("X-A", "1"))
		c.WithDefaultHeader("X-B", "2")

		h := c.DefaultHeaders()
		assert.Equal(t, "1", h.Get("X-A"))
		assert.Equal(t, "2", h.Get("X-B"))
		h.Set("X-A", "tampered") // copy only
		assert.Equal(t, "1", c.DefaultHeaders().Get("X-A"))

		c.ClearDefaultHeaders()
		assert.Empty(t, c.DefaultHeaders())
	})
}

func TestCookieJar(t *testing.T) {
	ctx := context.Background()

	t.Run("jar cookies synthesized", func(t *testing.T) {
		c := newTestClient(t, nil)
		c.AddCookie("session", "valid")
		c.AddCookie("theme", "dark")

		env, err := c.Get(ctx, "/echo")
		require.NoError(t, err)
		reply := decodeEcho(t, env)
		assert.Equal(t, "valid", reply.Cookies["session"])
		assert.Equal(t, "dark", reply.Cookies["theme"])
	})

	t.Run("explicit cookie replaces jar", func(t *testing.T) {
		c := newTestClient(t, nil)
		c.AddCookie("session", "from-jar")

		env, err := c.Get(ctx, "/echo", func(b *request.Builder) {
			b.Cookie("other", "explicit")
		})
		require.NoError(t, err)
		reply := decodeEcho(t, env)
		assert.Equal(t, "explicit", reply.Cookies["other"])
		_, present := reply.Cookies["session"]
		assert.False(t, present)
	})

	t.Run("server cookie round trip", func(t *testing.T) {
		c := newTestClient(t, nil)

		_, err := c.Get(ctx, "/setcookie?name=session&value=valid")
		require.NoError(t, err)
		e, ok := c.Cookie("session")
		require.True(t, ok)
		assert.Equal(t, "valid", e.Value)

		env, err := c.Get(ctx, "/secure")
		require.NoError(t, err)
		assert.Equal(t, "welcome back", env.Text())

		c.RemoveCookie("session")
		_, err = c.Get(ctx, "/secure")
		require.Error(t, err)
		var serr *StatusError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusUnauthorized, serr.StatusCode)
	})

	t.Run("failed response does not update jar", func(t *testing.T) {
		c := newTestClient(t, nil)
		_, err := c.Get(ctx, "/status/500")
		require.Error(t, err)
		assert.Empty(t, c.Cookies())
	})

	t.Run("clear", func(t *testing.T) {
		c := newTestClient(t, nil)
		c.AddCookie("a", "1")
		c.ClearCookies()
		assert.Empty(t, c.Cookies())
	})
}

func TestCookiePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("AcceptNone discards server cookies", func(t *testing.T) {
		c := newTestClient(t, func(p *security.Policy) {
			p.CookiePolicy = jar.AcceptNone
		})
		assert.Equal(t, jar.AcceptNone, c.CookiePolicy())

		_, err := c.Get(ctx, "/setcookie?name=a&value=1")
		require.NoError(t, err)
		assert.Empty(t, c.Cookies())
	})

	t.Run("AcceptOriginalServer rejects foreign domain", func(t *testing.T) {
		c := newTestClient(t, nil)
		_, err := c.Get(ctx, "/setcookie?name=a&value=1&domain=evil.example.com")
		require.NoError(t, err)
		assert.Empty(t, c.Cookies())
	})

	t.Run("policy changeable at runtime", func(t *testing.T) {
		c := newTestClient(t, nil)
		c.SetCookiePolicy(jar.AcceptNone)

		_, err := c.Get(ctx, "/setcookie?name=a&value=1")
		require.NoError(t, err)
		assert.Empty(t, c.Cookies())

		c.SetCookiePolicy(jar.AcceptAll)
		_, err = c.Get(ctx, "/setcookie?name=a&value=1")
		require.NoError(t, err)
		assert.Len(t, c.Cookies(), 1)
	})
}

func TestClientStatusError(t *testing.T) {
	c := newTestClient(t, nil)

	env, err := c.Get(context.Background(), "/status/503")
	assert.Nil(t, env)
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusServiceUnavailable, serr.StatusCode)
	assert.Equal(t, "status 503", string(serr.Body))
	assert.Equal(t, 1, c.Breaker().Failures())
}

func TestTooLargeResponse(t *testing.T) {
	c := newTestClient(t, func(p *security.Policy) {
		p.MaxResponseBytes = 16
	})

	env, err := c.Get(context.Background(), "/big?n=64")
	assert.Nil(t, env)
	var terr *TooLargeError
	require.ErrorAs(t, err, &terr)
	assert.EqualValues(t, 16, terr.Limit)
	assert.Equal(t, 1, c.Breaker().Failures())

	t.Run("body at the cap succeeds", func(t *testing.T) {
		env, err := c.Get(context.Background(), "/big?n=16")
		require.NoError(t, err)
		assert.Len(t, env.Body, 16)
	})
}

func TestRequestTimeout(t *testing.T) {
	t.Run("policy timeout", func(t *testing.T) {
		c := newTestClient(t, func(p *security.Policy) {
			p.RequestTimeout = 50 * time.Millisecond
		})

		env, err := c.Get(context.Background(), "/slow?d=2s")
		assert.Nil(t, env)
		var ferr *FaultError
		require.ErrorAs(t, err, &ferr)
		assert.True(t, ferr.Timeout())
		assert.Equal(t, 1, c.Breaker().Failures())
	})

	t.Run("per-request override", func(t *testing.T) {
		c := newTestClient(t, nil)
		_, err := c.Get(context.Background(), "/slow?d=2s", func(b *request.Builder) {
			b.Timeout(50 * time.Millisecond)
		})
		var ferr *FaultError
		require.ErrorAs(t, err, &ferr)
		assert.True(t, ferr.Timeout())
	})
}

func TestTargetRejection(t *testing.T) {
	c := newTestClient(t, nil)

	env, err := c.Get(context.Background(), "https://evil.example.com/steal")
	assert.Nil(t, env)
	var terr *TargetError
	require.ErrorAs(t, err, &terr)

	// Rejected before dispatch: no breaker impact.
	assert.Equal(t, 0, c.Breaker().Failures())
}

func TestCircuitBreakerTrips(t *testing.T) {
	fake := &fakeCollector{}
	var rejected []Event
	g := &HandlerGroup{}
	g.PushBack(AfterRejected, HandlerFunc(func(evt Event, x *Exchange) {
		rejected = append(rejected, evt)
	}))
	c := newTestClient(t, func(p *security.Policy) {
		p.FailureThreshold = 3
	}, WithMetrics(fake), WithHandlers(g))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Get(ctx, "/status/500")
		var serr *StatusError
		require.ErrorAs(t, err, &serr)
	}
	assert.True(t, c.Breaker().Open())

	env, err := c.Get(ctx, "/status/200")
	assert.Nil(t, env)
	var oerr *CircuitOpenError
	require.ErrorAs(t, err, &oerr)
	assert.NotEmpty(t, oerr.Host)

	s := fake.snapshot()
	assert.Equal(t, 3, s.requests) // rejection not dispatched
	assert.Equal(t, 3, s.failures)
	assert.Equal(t, []int{500, 500, 500}, s.statuses)
	assert.Equal(t, 1, s.rejections)
	assert.Equal(t, []Event{AfterRejected}, rejected)
}

func TestCircuitBreakerRecovers(t *testing.T) {
	c := newTestClient(t, func(p *security.Policy) {
		p.FailureThreshold = 2
		p.ResetTimeout = 100 * time.Millisecond
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Get(ctx, "/status/500")
		require.Error(t, err)
	}
	_, err := c.Get(ctx, "/echo")
	var oerr *CircuitOpenError
	require.ErrorAs(t, err, &oerr)

	time.Sleep(150 * time.Millisecond)

	env, err := c.Get(ctx, "/echo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.False(t, c.Breaker().Open())
	assert.Equal(t, 0, c.Breaker().Failures())

	t.Run("failed trial reopens", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := c.Get(ctx, "/status/500")
			require.Error(t, err)
		}
		time.Sleep(150 * time.Millisecond)

		_, err := c.Get(ctx, "/status/500")
		var serr *StatusError
		require.ErrorAs(t, err, &serr)
		// One trial failure is below the threshold of 2.
		assert.False(t, c.Breaker().Open())
		assert.Equal(t, 1, c.Breaker().Failures())
	})
}

func TestBreakerManualReset(t *testing.T) {
	c := newTestClient(t, func(p *security.Policy) {
		p.FailureThreshold = 1
		p.ResetTimeout = time.Hour
	})
	ctx := context.Background()

	_, err := c.Get(ctx, "/status/500")
	require.Error(t, err)
	assert.True(t, c.Breaker().Open())

	c.Breaker().Reset()
	env, err := c.Get(ctx, "/echo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, env.StatusCode)
}

func TestHandlers(t *testing.T) {
	var mu sync.Mutex
	var events []Event
	record := HandlerFunc(func(evt Event, x *Exchange) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, evt)
	})
	g := &HandlerGroup{}
	for _, evt := range Events() {
		g.PushBack(evt, record)
	}
	c := newTestClient(t, nil, WithHandlers(g))
	ctx := context.Background()

	t.Run("success path", func(t *testing.T) {
		events = nil
		env, err := c.Get(ctx, "/echo")
		require.NoError(t, err)
		require.NotNil(t, env)
		assert.Equal(t, []Event{BeforeSend, AfterResponse}, events)
	})

	t.Run("failure path", func(t *testing.T) {
		events = nil
		_, err := c.Get(ctx, "/status/500")
		require.Error(t, err)
		assert.Equal(t, []Event{BeforeSend, AfterFailure}, events)
	})
}

func TestMetricsOnSuccess(t *testing.T) {
	fake := &fakeCollector{}
	c := newTestClient(t, nil, WithMetrics(fake))

	_, err := c.Get(context.Background(), "/echo")
	require.NoError(t, err)

	s := fake.snapshot()
	assert.Equal(t, 1, s.requests)
	assert.Equal(t, 0, s.failures)
	assert.Equal(t, 1, s.latencies)
}

func TestRateLimit(t *testing.T) {
	// One token, effectively never refilled: the first request
	// consumes it and a canceled second request fails while waiting.
	c := newTestClient(t, nil, WithRateLimit(0.0001, 1))
	ctx := context.Background()

	_, err := c.Get(ctx, "/echo")
	require.NoError(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	env, err := c.Get(canceled, "/echo")
	assert.Nil(t, env)
	require.Error(t, err)

	// Canceled while rate limited: no breaker failure recorded.
	assert.Equal(t, 0, c.Breaker().Failures())
}

func TestClientClose(t *testing.T) {
	c := newTestClient(t, nil)
	_, err := c.Get(context.Background(), "/echo")
	require.NoError(t, err)
	assert.NotPanics(t, c.Close)
}
