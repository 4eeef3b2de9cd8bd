// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package breaker implements the consecutive-failure circuit breaker
// that protects callers from a remote service which has stopped
// answering usefully. The client consults the breaker before every
// dispatch and records every classified failure against it.
package breaker
