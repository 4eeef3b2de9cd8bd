// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"syscall"
)

// A Category names the kind of transport-level fault an error
// represents, as reported by Categorize.
//
// Every category other than Unknown identifies a specific
// network-level failure mode. All of them occur before a structured
// HTTP response is received and all of them count as circuit breaker
// failures.
type Category int

const (
	// Unknown indicates an error that is a transport fault but does
	// not fit a more specific category, or a nil error.
	Unknown Category = iota
	// Timeout indicates a client-side timeout: the request exceeded
	// its deadline before the transport finished.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() method that reports true, or wraps
	// context.DeadlineExceeded.
	Timeout
	// Canceled indicates the request's context was canceled before
	// the transport finished.
	Canceled
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED). Common while the remote service restarts.
	ConnRefused
	// ConnReset indicates the remote host reset an established
	// connection (ECONNRESET).
	ConnReset
	// DNS indicates the target host could not be resolved.
	DNS
	// TLS indicates TLS negotiation or certificate verification
	// failed.
	TLS
)

var categoryNames = []string{
	"Unknown",
	"Timeout",
	"Canceled",
	"ConnRefused",
	"ConnReset",
	"DNS",
	"TLS",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

type hasTimeout interface {
	Timeout() bool
}

// Categorize returns the fault category of the given error, looking
// through wrapped causes. A nil error categorizes as Unknown.
//
// Categorize never consults Temporary() methods, whose semantics are
// too loose to act on.
func Categorize(err error) Category {
	if err == nil {
		return Unknown
	}

	var timeout hasTimeout
	if errors.As(err, &timeout) && timeout.Timeout() {
		return Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNS
	}

	if isTLS(err) {
		return TLS
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		}
	}

	return Unknown
}

func isTLS(err error) bool {
	var (
		record    tls.RecordHeaderError
		verify    *tls.CertificateVerificationError
		authority x509.UnknownAuthorityError
		hostname  x509.HostnameError
		invalid   x509.CertificateInvalidError
	)
	return errors.As(err, &record) ||
		errors.As(err, &verify) ||
		errors.As(err, &authority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid)
}
