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

// Package jws implements the flattened and compact JSON Web Signature
// (RFC 7515) container formats, including the RFC 7797 unencoded (b64:
// false) payload option (SPEC_FULL.md §4.9-§4.11). It is the signature
// counterpart of pkg/jwe.
package jws

import (
	"github.com/higayasuo/jose-universal/internal/logging"
	"github.com/higayasuo/jose-universal/internal/metrics"
	"github.com/higayasuo/jose-universal/pkg/header"
)

// Flattened is the JWS JSON Serialization's flattened form (RFC 7515
// §7.2.2): exactly the keys {payload, protected, header, signature}.
//
// Payload is the base64url-encoded payload when b64 is true (the default);
// when the protected header carries "b64": false (RFC 7797), Payload holds
// the raw payload bytes rendered directly as a string, unencoded.
type Flattened struct {
	Payload   string         `json:"payload"`
	Protected string         `json:"protected,omitempty"`
	Header    map[string]any `json:"header,omitempty"`
	Signature string         `json:"signature"`
}

// VerifyResult is the output of a successful Verify call.
type VerifyResult struct {
	Payload           []byte
	ProtectedHeader   header.Map
	UnprotectedHeader header.Map
}

// SignOptions configures crit-extension recognition on sign (§6 option
// surface) plus the optional diagnostic sink and instrumentation collector
// (§10.1/§12 item 3). Logger defaults to a discard sink and Metrics to a
// no-op when left nil, so instrumentation is strictly opt-in.
type SignOptions struct {
	Crit    map[string]header.CritFlag
	Logger  *logging.Logger
	Metrics *metrics.Collector
}

// VerifyOptions configures crit-extension recognition and the allowed
// signature algorithms on verify (§6 option surface) plus the optional
// diagnostic sink and instrumentation collector (§10.1/§12 item 3).
type VerifyOptions struct {
	Crit       map[string]header.CritFlag
	Algorithms []string
	Logger     *logging.Logger
	Metrics    *metrics.Collector
}
