// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package security

import (
	"crypto/tls"
	"fmt"
	urlpkg "net/url"
	"strings"
	"time"

	"github.com/gogama/aegis/jar"
)

const (
	// DefaultConnectTimeout is the connect timeout used by Default.
	DefaultConnectTimeout = 10 * time.Second
	// DefaultRequestTimeout is the request timeout used by Default.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultFailureThreshold is the circuit breaker failure threshold
	// used by Default.
	DefaultFailureThreshold = 5
	// DefaultResetTimeout is the circuit breaker reset window used by
	// Default.
	DefaultResetTimeout = 30 * time.Second
	// DefaultMaxResponseBytes is the response body size cap used by
	// Default.
	DefaultMaxResponseBytes = 10 * 1024 * 1024
)

// A Policy contains the immutable security and resilience configuration
// of a client.
//
// A Policy is bound into a client at construction time and must not be
// modified afterward. The client and its collaborators only ever read
// the policy, so a single Policy value may safely be shared by any
// number of goroutines.
//
// The zero value is not a valid policy: at minimum BaseURL must be set.
// Start from Default and override fields as needed.
type Policy struct {
	// BaseURL is the fully-qualified base URL relative request paths
	// are resolved against. Required. The URL must have an http or
	// https scheme and a non-empty host.
	BaseURL string

	// ConnectTimeout bounds connection establishment, including any
	// TLS handshake. Must be positive.
	ConnectTimeout time.Duration

	// RequestTimeout bounds a whole request, from dispatch to the last
	// body byte. It may be overridden per request via the request
	// builder. Must be positive.
	RequestTimeout time.Duration

	// FailureThreshold is the number of consecutive failures after
	// which the circuit breaker opens. Must be positive.
	FailureThreshold int

	// ResetTimeout is how long the circuit breaker stays open before
	// admitting a trial request. Must be positive.
	ResetTimeout time.Duration

	// CookiePolicy controls which Set-Cookie response headers are
	// stored in the client's cookie jar.
	CookiePolicy jar.AcceptPolicy

	// AllowedHosts lists hosts, besides the BaseURL host, that
	// absolute request URLs may target. Hosts are compared
	// case-insensitively. The BaseURL host is always allowed and need
	// not be listed.
	AllowedHosts []string

	// AllowAbsoluteURLs permits callers to pass fully-qualified URLs
	// as request targets, subject to the host allow-list. When false,
	// every absolute target is rejected.
	AllowAbsoluteURLs bool

	// MaxResponseBytes caps the response body size. A response whose
	// body exceeds the cap fails the request and counts as a circuit
	// breaker failure. Must be positive.
	MaxResponseBytes int64

	// InsecureTLS disables server certificate verification. It exists
	// for test environments and must never be set in production.
	InsecureTLS bool

	// TLSMinVersion and TLSMaxVersion bound the negotiated TLS
	// protocol version. Zero values mean TLS 1.2 minimum with no
	// explicit maximum.
	TLSMinVersion uint16
	TLSMaxVersion uint16
}

// Default returns a Policy with conservative defaults for every field
// except BaseURL, which the caller must fill in.
func Default() Policy {
	return Policy{
		ConnectTimeout:   DefaultConnectTimeout,
		RequestTimeout:   DefaultRequestTimeout,
		FailureThreshold: DefaultFailureThreshold,
		ResetTimeout:     DefaultResetTimeout,
		CookiePolicy:     jar.AcceptOriginalServer,
		MaxResponseBytes: DefaultMaxResponseBytes,
		TLSMinVersion:    tls.VersionTLS12,
	}
}

// Validate checks the policy for construction-time errors. A non-nil
// return value describes the first invalid field found.
func (p *Policy) Validate() error {
	u, err := urlpkg.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("security: invalid base URL %q: %w", p.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("security: base URL %q must use http or https", p.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("security: base URL %q has no host", p.BaseURL)
	}
	if p.ConnectTimeout <= 0 {
		return fmt.Errorf("security: connect timeout must be > 0, got %v", p.ConnectTimeout)
	}
	if p.RequestTimeout <= 0 {
		return fmt.Errorf("security: request timeout must be > 0, got %v", p.RequestTimeout)
	}
	if p.FailureThreshold < 1 {
		return fmt.Errorf("security: failure threshold must be >= 1, got %d", p.FailureThreshold)
	}
	if p.ResetTimeout <= 0 {
		return fmt.Errorf("security: reset timeout must be > 0, got %v", p.ResetTimeout)
	}
	if p.MaxResponseBytes <= 0 {
		return fmt.Errorf("security: max response bytes must be > 0, got %d", p.MaxResponseBytes)
	}
	if p.TLSMaxVersion != 0 && p.TLSMaxVersion < p.TLSMinVersion {
		return fmt.Errorf("security: TLS max version below min version")
	}
	switch p.CookiePolicy {
	case jar.AcceptAll, jar.AcceptOriginalServer, jar.AcceptNone:
	default:
		return fmt.Errorf("security: unknown cookie policy %d", p.CookiePolicy)
	}
	return nil
}

// Base returns the parsed base URL. It must only be called on a policy
// that passed Validate.
func (p *Policy) Base() *urlpkg.URL {
	u, err := urlpkg.Parse(p.BaseURL)
	if err != nil {
		panic("security: Base called on unvalidated policy")
	}
	return u
}

// Hosts returns the complete host allow-list, lowercased and
// de-duplicated, always including the base URL host. It must only be
// called on a policy that passed Validate.
func (p *Policy) Hosts() []string {
	base := strings.ToLower(p.Base().Host)
	hosts := make([]string, 0, 1+len(p.AllowedHosts))
	seen := map[string]bool{base: true}
	hosts = append(hosts, base)
	for _, h := range p.AllowedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		hosts = append(hosts, h)
	}
	return hosts
}

// TLSConfig builds the TLS client configuration implied by the policy.
func (p *Policy) TLSConfig() *tls.Config {
	min := p.TLSMinVersion
	if min == 0 {
		min = tls.VersionTLS12
	}
	return &tls.Config{
		MinVersion:         min,
		MaxVersion:         p.TLSMaxVersion,
		InsecureSkipVerify: p.InsecureTLS,
	}
}
