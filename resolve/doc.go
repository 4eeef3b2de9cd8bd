// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package resolve turns caller-supplied request paths into
// fully-qualified request URLs. Absolute targets pass through a host
// allow-list so that a request can never be redirected to an
// unintended host (SSRF guard).
package resolve
