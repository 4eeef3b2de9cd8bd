// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jar implements the per-client cookie store read by the
// request assembly stage and written from Set-Cookie response headers,
// filtered by the client's cookie accept policy.
package jar
