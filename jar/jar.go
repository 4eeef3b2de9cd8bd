// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jar

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// An AcceptPolicy controls which Set-Cookie response headers a client
// stores in its jar.
type AcceptPolicy int

const (
	// AcceptAll stores every cookie received in a response.
	AcceptAll AcceptPolicy = iota
	// AcceptOriginalServer stores only cookies whose domain matches
	// the host the request was sent to.
	AcceptOriginalServer
	// AcceptNone discards all received cookies.
	AcceptNone
)

var acceptPolicyNames = []string{
	"AcceptAll",
	"AcceptOriginalServer",
	"AcceptNone",
}

// String returns the name of the accept policy.
func (p AcceptPolicy) String() string {
	if p < 0 || int(p) >= len(acceptPolicyNames) {
		return "AcceptPolicy(?)"
	}
	return acceptPolicyNames[p]
}

// An Entry is one cookie held in a Jar.
//
// A zero Expires time means the cookie does not expire for the life of
// the jar.
type Entry struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires time.Time
}

func (e *Entry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && !e.Expires.After(now)
}

type key struct {
	name   string
	domain string
	path   string
}

// A Jar is a per-client store of accepted cookies.
//
// A Jar may be read and written by any number of concurrently in-flight
// requests. All methods are safe for concurrent use.
type Jar struct {
	mu      sync.Mutex
	entries map[key]Entry
}

// New returns an empty jar.
func New() *Jar {
	return &Jar{entries: make(map[key]Entry)}
}

// Add stores a cookie under the given name with an empty domain and
// path and no expiry, replacing any existing cookie with the same name,
// empty domain, and empty path.
func (j *Jar) Add(name, value string) {
	j.AddEntry(Entry{Name: name, Value: value})
}

// AddEntry stores the given entry, replacing any existing entry with
// the same name, domain, and path.
func (j *Jar) AddEntry(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[key{e.Name, e.Domain, e.Path}] = e
}

// Get returns an unexpired cookie with the given name, if the jar holds
// one. If multiple domains or paths hold the name, the entry returned
// is the first in Entries order.
func (j *Jar) Get(name string) (Entry, bool) {
	for _, e := range j.Entries() {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns all unexpired cookies in the jar, ordered by name,
// then domain, then path. The returned slice is a copy owned by the
// caller.
func (j *Jar) Entries() []Entry {
	now := time.Now()
	j.mu.Lock()
	entries := make([]Entry, 0, len(j.entries))
	for k, e := range j.entries {
		if e.expired(now) {
			delete(j.entries, k)
			continue
		}
		entries = append(entries, e)
	}
	j.mu.Unlock()
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Name != entries[b].Name {
			return entries[a].Name < entries[b].Name
		}
		if entries[a].Domain != entries[b].Domain {
			return entries[a].Domain < entries[b].Domain
		}
		return entries[a].Path < entries[b].Path
	})
	return entries
}

// Remove deletes every cookie with the given name, across all domains
// and paths.
func (j *Jar) Remove(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for k := range j.entries {
		if k.name == name {
			delete(j.entries, k)
		}
	}
}

// Clear removes every cookie from the jar.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make(map[key]Entry)
}

// Len returns the number of unexpired cookies in the jar.
func (j *Jar) Len() int {
	return len(j.Entries())
}

// Header renders the jar's current unexpired cookies as a single
// Cookie request header value, per RFC 6265 section 5.4. The empty
// string is returned if the jar holds no live cookies.
func (j *Jar) Header() string {
	entries := j.Entries()
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("; ")
		}
		c := http.Cookie{Name: e.Name, Value: e.Value}
		b.WriteString(c.String())
	}
	return b.String()
}

// Update ingests cookies received in a response from host, subject to
// the accept policy. A cookie already expired on arrival, or carrying
// a negative Max-Age, removes the matching stored cookie.
//
// Host may include a port, which is ignored for domain matching.
func (j *Jar) Update(policy AcceptPolicy, host string, cookies []*http.Cookie) {
	if policy == AcceptNone || len(cookies) == 0 {
		return
	}
	host = canonicalHost(host)
	now := time.Now()
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		domain := strings.ToLower(strings.TrimPrefix(c.Domain, "."))
		if domain == "" {
			domain = host
		}
		if policy == AcceptOriginalServer && !domainMatch(host, domain) {
			continue
		}
		k := key{c.Name, domain, c.Path}
		expires := c.Expires
		switch {
		case c.MaxAge < 0:
			delete(j.entries, k)
			continue
		case c.MaxAge > 0:
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		e := Entry{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  domain,
			Path:    c.Path,
			Expires: expires,
		}
		if e.expired(now) {
			delete(j.entries, k)
			continue
		}
		j.entries[k] = e
	}
}

// domainMatch reports whether host is within domain per RFC 6265
// section 5.1.3: either an exact match, or host is a subdomain of
// domain.
func domainMatch(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func canonicalHost(host string) string {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i > strings.LastIndex(host, "]") {
		host = host[:i]
	}
	return host
}
