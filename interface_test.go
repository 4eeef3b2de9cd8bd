// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package aegis

import (
	"net/http"
)

// Client must satisfy the full grouped interface surface.
var (
	_ Sender          = (*Client)(nil)
	_ AsyncSender     = (*Client)(nil)
	_ Getter          = (*Client)(nil)
	_ Poster          = (*Client)(nil)
	_ MultipartSender = (*Client)(nil)
	_ Closer          = (*Client)(nil)
	_ Executor        = (*Client)(nil)
)

// The standard HTTP client must remain a valid HTTPDoer and IdleCloser.
var (
	_ HTTPDoer   = (*http.Client)(nil)
	_ IdleCloser = (*http.Client)(nil)
)
