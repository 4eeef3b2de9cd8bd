// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package request defines the transport-ready request descriptor, the
// per-call configuration builder applied to it before dispatch, and
// multipart/form-data body encoding.
package request
