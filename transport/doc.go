// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport constructs the low-level HTTP engine the client
// dispatches through: TLS requirements, connect timeouts, connection
// pooling, HTTP/2 negotiation, and an optional logging layer with
// sanitized URLs. The engine itself stays an external collaborator;
// the client only consumes its Do method.
package transport
