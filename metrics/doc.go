// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics defines the collector hook a client reports request
// counts and latencies to, with a no-op default and a prometheus-backed
// implementation.
package metrics
