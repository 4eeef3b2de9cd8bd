// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package security defines the immutable configuration bound into an
// aegis client at construction time: base URL, timeouts, circuit
// breaker thresholds, cookie acceptance, the host allow-list, and TLS
// requirements.
package security
