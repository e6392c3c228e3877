// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keychain.
//
// go-keychain is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package joseerr defines the error taxonomy shared by the jwe and jws
// packages: invalid input/structure, unsupported algorithm or parameter, and
// (JWS-only) signature verification failure. Downstream packages should wrap
// with fmt.Errorf("...: %w", err) and inspect with errors.As, never by
// string-matching the message.
package joseerr

import "fmt"

// Kind identifies the taxonomic category of a joseerr error.
type Kind int

const (
	// KindInvalid covers malformed input: missing fields, wrong shape,
	// bad base64url, disjointness violations, crit violations, builder
	// double-calls, and compact-serialization shape errors.
	KindInvalid Kind = iota
	// KindNotSupported covers well-formed input naming an algorithm,
	// curve, or parameter this implementation does not handle.
	KindNotSupported
	// KindVerificationFailed covers a JWS verify call whose signature
	// primitive returned false on an otherwise well-formed input.
	KindVerificationFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotSupported:
		return "not supported"
	case KindVerificationFailed:
		return "signature verification failed"
	default:
		return "unknown"
	}
}

// Error is the concrete error type for all three taxonomic categories. The
// Domain field ("JWE" or "JWS") lets a single construction site (see
// Invalid/NotSupported/VerificationFailed below) produce the disambiguated
// message the source conflates for the crit validator (see SPEC_FULL.md §9).
type Error struct {
	Kind   Kind
	Domain string
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	if e.Domain != "" {
		return fmt.Sprintf("%s %s: %s", e.Domain, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a *Error with the same Kind, so that callers
// can write errors.Is(err, joseerr.Invalid("JWE", "")) style category checks
// against any constructor's value (Domain and Msg are ignored), or more
// simply call IsKind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Invalid constructs a KindInvalid error scoped to the given domain ("JWE"
// or "JWS"); domain may be empty for domain-agnostic helpers (codec, header).
func Invalid(domain, msg string) *Error {
	return &Error{Kind: KindInvalid, Domain: domain, Msg: msg}
}

// InvalidWrap is Invalid with a wrapped cause for %w-chains; the cause is
// never exposed in the uniform post-validation error paths (see
// Collapse), only attached for diagnostic logging.
func InvalidWrap(domain, msg string, cause error) *Error {
	return &Error{Kind: KindInvalid, Domain: domain, Msg: msg, Cause: cause}
}

// NotSupported constructs a KindNotSupported error.
func NotSupported(domain, msg string) *Error {
	return &Error{Kind: KindNotSupported, Domain: domain, Msg: msg}
}

// VerificationFailed constructs the distinct JWS signature-verification-failed
// error. Never masked under KindInvalid.
func VerificationFailed(domain, msg string) *Error {
	return &Error{Kind: KindVerificationFailed, Domain: domain, Msg: msg}
}

// IsKind reports whether err (or any error it wraps) is a *Error of kind k.
func IsKind(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == k {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Collapse builds the single uniform error required by §7's propagation
// policy for encrypt/decrypt/sign post-validation failures. cause is
// retained only on the returned value's Cause field for diagnostic logging
// call sites — callers must never format Cause into a message a library
// consumer observes.
func Collapse(domain, msg string, cause error) *Error {
	return &Error{Kind: KindInvalid, Domain: domain, Msg: msg, Cause: cause}
}
