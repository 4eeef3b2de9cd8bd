// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"github.com/gogama/aegis/jar"
)

// AddCookie stores a cookie in the client's jar. It will be included
// in the synthesized Cookie header of subsequent requests unless the
// caller sets an explicit Cookie header.
func (c *Client) AddCookie(name, value string) {
	c.cookies.Add(name, value)
}

// RemoveCookie deletes every cookie with the given name from the jar.
func (c *Client) RemoveCookie(name string) {
	c.cookies.Remove(name)
}

// ClearCookies empties the jar.
func (c *Client) ClearCookies() {
	c.cookies.Clear()
}

// Cookie returns an unexpired cookie with the given name from the
// jar, if one is present.
func (c *Client) Cookie(name string) (jar.Entry, bool) {
	return c.cookies.Get(name)
}

// Cookies returns all unexpired cookies currently in the jar.
func (c *Client) Cookies() []jar.Entry {
	return c.cookies.Entries()
}

// SetCookiePolicy changes the accept policy applied to Set-Cookie
// headers on future responses. Cookies already in the jar are kept.
func (c *Client) SetCookiePolicy(p jar.AcceptPolicy) {
	c.state.mu.Lock()
	c.state.cookiePolicy = p
	c.state.mu.Unlock()
}

// CookiePolicy returns the accept policy currently in force.
func (c *Client) CookiePolicy() jar.AcceptPolicy {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	return c.state.cookiePolicy
}
