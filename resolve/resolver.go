// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resolve

import (
	"fmt"
	urlpkg "net/url"
	"strings"
)

// A TargetError reports a request target that was rejected before any
// network attempt was made: a malformed path, a disallowed absolute
// URL, or a host missing from the allow-list.
type TargetError struct {
	// Target is the caller-supplied path or URL that was rejected.
	Target string
	// Reason is a short human-readable cause.
	Reason string
	// Cause is the underlying parse error, if any.
	Cause error
}

// Error returns a message identifying the rejected target and reason.
func (e *TargetError) Error() string {
	return fmt.Sprintf("resolve: invalid target %q: %s", e.Target, e.Reason)
}

// Unwrap returns the underlying parse error, if any.
func (e *TargetError) Unwrap() error {
	return e.Cause
}

// A Resolver turns caller-supplied request paths into fully-qualified
// request URLs, enforcing the host allow-list on absolute targets.
//
// A Resolver is immutable after construction and safe for concurrent
// use by multiple goroutines.
type Resolver struct {
	base          *urlpkg.URL
	allowed       map[string]bool
	allowAbsolute bool
}

// New returns a resolver rooted at base. Absolute targets are only
// accepted when allowAbsolute is true and their host appears in hosts
// (compared case-insensitively, including any port). The base host is
// always allowed.
func New(base *urlpkg.URL, hosts []string, allowAbsolute bool) *Resolver {
	allowed := make(map[string]bool, len(hosts)+1)
	allowed[strings.ToLower(base.Host)] = true
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			allowed[h] = true
		}
	}
	return &Resolver{
		base:          base,
		allowed:       allowed,
		allowAbsolute: allowAbsolute,
	}
}

// Resolve returns the fully-qualified URL for the given target path.
//
// An empty path resolves to the bare base URL. A relative path is
// joined to the base with exactly one separating slash; dot segments
// are deliberately not collapsed, so attacker-controlled raw paths
// need separate sanitization before they reach Resolve. An absolute
// URL (or a scheme-relative one carrying its own host) must be
// permitted by the allow-list, otherwise a *TargetError is returned.
func (r *Resolver) Resolve(path string) (*urlpkg.URL, error) {
	if path == "" {
		u := *r.base
		return &u, nil
	}
	u, err := urlpkg.Parse(path)
	if err != nil {
		return nil, &TargetError{Target: path, Reason: "malformed URL", Cause: err}
	}
	if u.Scheme != "" || u.Host != "" {
		return r.absolute(path, u)
	}
	t := *r.base
	t.Path = joinSlash(r.base.Path, u.Path)
	t.RawPath = ""
	t.RawQuery = u.RawQuery
	t.Fragment = ""
	return &t, nil
}

func (r *Resolver) absolute(path string, u *urlpkg.URL) (*urlpkg.URL, error) {
	if !r.allowAbsolute {
		return nil, &TargetError{Target: path, Reason: "absolute URLs are not allowed"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &TargetError{Target: path, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &TargetError{Target: path, Reason: "absolute URL has no host"}
	}
	if !r.allowed[strings.ToLower(u.Host)] {
		return nil, &TargetError{Target: path, Reason: fmt.Sprintf("host %q is not in the allow-list", u.Host)}
	}
	return u, nil
}

// joinSlash joins two path segments with exactly one separating slash.
// It does not touch slashes in the interior of either segment.
func joinSlash(a, b string) string {
	a = strings.TrimSuffix(a, "/")
	b = strings.TrimPrefix(b, "/")
	if b == "" {
		if a == "" {
			return "/"
		}
		return a
	}
	return a + "/" + b
}
