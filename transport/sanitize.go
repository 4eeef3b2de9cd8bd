// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	urlpkg "net/url"
	"strings"
)

// Query parameter names redacted from logged URLs, matched
// case-insensitively as substrings.
var sensitiveParams = []string{
	"api_key",
	"apikey",
	"token",
	"password",
	"auth",
	"secret",
	"credential",
}

// SanitizeURL renders u with sensitive query parameter values replaced
// by a redaction marker, so API keys and tokens never reach the logs.
func SanitizeURL(u *urlpkg.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	redacted := false
	for param := range q {
		if isSensitiveParam(param) {
			q.Set(param, "[REDACTED]")
			redacted = true
		}
	}
	if !redacted {
		return u.String()
	}
	safe := *u
	safe.RawQuery = q.Encode()
	return safe.String()
}

func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
