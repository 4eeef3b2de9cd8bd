// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// A Part is one named segment of a multipart/form-data request body.
// Duplicate names are allowed, mirroring HTTP semantics and letting
// callers emulate array fields. A Part is immutable once built.
type Part struct {
	// Name is the form field name. Required.
	Name string
	// Filename is the optional file name rendered into the part's
	// Content-Disposition header.
	Filename string
	// ContentType is the optional media type of the part's payload.
	ContentType string
	// Data is the raw payload.
	Data []byte
}

// EncodeMultipart serializes parts, in order, into a single
// multipart/form-data body with a freshly generated boundary, and
// returns the body together with the Content-Type header value
// declaring that boundary.
//
// Each part renders as a Content-Disposition section; parts with an
// empty Filename omit the filename parameter, and parts with an empty
// ContentType omit the Content-Type line. Part names are not checked
// for uniqueness. An error is returned if parts is empty or any part
// has an empty name.
func EncodeMultipart(parts []Part) (body []byte, contentType string, err error) {
	if len(parts) == 0 {
		return nil, "", errors.New("request: multipart body requires at least one part")
	}
	for i := range parts {
		if parts[i].Name == "" {
			return nil, "", errors.New("request: multipart part requires a name")
		}
	}

	boundary := newBoundary()
	var b bytes.Buffer
	for i := range parts {
		p := &parts[i]
		b.WriteString("--")
		b.WriteString(boundary)
		b.WriteString("\r\n")
		b.WriteString(`Content-Disposition: form-data; name="` + escapeQuotes(p.Name) + `"`)
		if p.Filename != "" {
			b.WriteString(`; filename="` + escapeQuotes(p.Filename) + `"`)
		}
		b.WriteString("\r\n")
		if p.ContentType != "" {
			b.WriteString("Content-Type: " + p.ContentType + "\r\n")
		}
		b.WriteString("\r\n")
		b.Write(p.Data)
		b.WriteString("\r\n")
	}
	b.WriteString("--")
	b.WriteString(boundary)
	b.WriteString("--\r\n")

	return b.Bytes(), "multipart/form-data; boundary=" + boundary, nil
}

// newBoundary returns a boundary token with enough entropy that a
// collision with part content is not a practical concern.
func newBoundary() string {
	return "aegis-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
