// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fault categorizes transport-level errors - timeouts,
// connection failures, DNS failures, TLS failures - so the client can
// classify a failed dispatch without string-matching error messages.
package fault
