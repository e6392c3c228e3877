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

// Package jwe implements the flattened and compact JSON Web Encryption
// (RFC 7516) container formats over ECDH-ES key agreement (SPEC_FULL.md
// §4.6-§4.8). It is the JWE half of this module; pkg/jws is its signature
// counterpart.
package jwe

import (
	"github.com/higayasuo/jose-universal/internal/logging"
	"github.com/higayasuo/jose-universal/internal/metrics"
	"github.com/higayasuo/jose-universal/pkg/header"
)

// Flattened is the JWE JSON Serialization's flattened form (RFC 7516
// §7.2.2): exactly the keys {protected, iv, ciphertext, tag,
// encrypted_key?, aad?, header?, unprotected?}, all non-object values
// base64url-encoded.
type Flattened struct {
	Protected    string         `json:"protected"`
	IV           string         `json:"iv"`
	Ciphertext   string         `json:"ciphertext"`
	Tag          string         `json:"tag"`
	EncryptedKey string         `json:"encrypted_key,omitempty"`
	AAD          string         `json:"aad,omitempty"`
	Header       map[string]any `json:"header,omitempty"`
	Unprotected  map[string]any `json:"unprotected,omitempty"`
}

// DecryptResult is the output of a successful Decrypt call (§4.7 step 10).
type DecryptResult struct {
	Plaintext                  []byte
	ProtectedHeader             header.Map
	AdditionalAuthenticatedData []byte
	SharedUnprotectedHeader     header.Map
	UnprotectedHeader           header.Map
}

// EncryptOptions configures crit-extension recognition on encrypt (§6
// option surface) plus the optional diagnostic sink and instrumentation
// collector (§10.1/§12 item 3). Logger defaults to a discard sink and
// Metrics to a no-op when left nil, so instrumentation is strictly opt-in.
type EncryptOptions struct {
	Crit    map[string]header.CritFlag
	Logger  *logging.Logger
	Metrics *metrics.Collector
}

// DecryptOptions configures crit-extension recognition and algorithm
// allow-lists on decrypt (§6 option surface) plus the optional diagnostic
// sink and instrumentation collector (§10.1/§12 item 3).
type DecryptOptions struct {
	Crit                        map[string]header.CritFlag
	KeyManagementAlgorithms     []string
	ContentEncryptionAlgorithms []string
	Logger                      *logging.Logger
	Metrics                     *metrics.Collector
}
