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

package jwe

import (
	"github.com/higayasuo/jose-universal/pkg/header"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// KeyManagementParameters carries the optional ECDH-ES PartyUInfo/PartyVInfo
// (apu/apv, RFC 7518 §4.6.1.2-3), each at most 32 bytes (§3 invariant 4).
type KeyManagementParameters struct {
	PartyUInfo []byte
	PartyVInfo []byte
}

// Encrypter builds a single flattened JWE over ECDH-ES key agreement. Each
// header-position setter may be called at most once; a second call fails
// fast rather than silently overwriting (§4.6's builder contract).
// AdditionalAuthenticatedData is the one deliberate exception: it is
// last-write-wins (see SPEC_FULL.md §9 Open Question on AAD semantics).
type Encrypter struct {
	enc          string
	recipient    *jwk.JWK
	protected    header.Map
	protectedSet bool
	shared       header.Map
	sharedSet    bool
	perRecipient header.Map
	perRecipSet  bool
	keyMgmt      KeyManagementParameters
	keyMgmtSet   bool
	aad          []byte
	opts         EncryptOptions
}

// NewEncrypter starts a builder for enc (a content-encryption algorithm
// name) targeting recipientPublicJWK, the recipient's static EC/OKP public
// key. recipientPublicJWK must name a curve usable for ECDH-ES (§6: P-256,
// P-384, P-521, X25519); the check is deferred to Encrypt.
func NewEncrypter(enc string, recipientPublicJWK *jwk.JWK, opts EncryptOptions) *Encrypter {
	return &Encrypter{enc: enc, recipient: recipientPublicJWK, opts: opts}
}

// SetProtectedHeader sets the integrity-protected header contribution. May
// be called at most once.
func (e *Encrypter) SetProtectedHeader(h map[string]any) error {
	if e.protectedSet {
		return joseerr.Invalid("JWE", "protectedHeader was already set on this builder")
	}
	e.protected = header.Map(h)
	e.protectedSet = true
	return nil
}

// SetSharedUnprotectedHeader sets the shared-unprotected header contribution
// (the JWE "unprotected" member). May be called at most once.
func (e *Encrypter) SetSharedUnprotectedHeader(h map[string]any) error {
	if e.sharedSet {
		return joseerr.Invalid("JWE", "sharedUnprotectedHeader was already set on this builder")
	}
	e.shared = header.Map(h)
	e.sharedSet = true
	return nil
}

// SetUnprotectedHeader sets the per-recipient unprotected header
// contribution (the flattened JWE "header" member). May be called at most
// once.
func (e *Encrypter) SetUnprotectedHeader(h map[string]any) error {
	if e.perRecipSet {
		return joseerr.Invalid("JWE", "unprotectedHeader was already set on this builder")
	}
	e.perRecipient = header.Map(h)
	e.perRecipSet = true
	return nil
}

// SetKeyManagementParameters sets apu/apv for ECDH-ES. May be called at
// most once.
func (e *Encrypter) SetKeyManagementParameters(p KeyManagementParameters) error {
	if e.keyMgmtSet {
		return joseerr.Invalid("JWE", "keyManagementParameters was already set on this builder")
	}
	e.keyMgmt = p
	e.keyMgmtSet = true
	return nil
}

// SetAdditionalAuthenticatedData sets the JWE "aad" member. Unlike the
// header setters, repeated calls are allowed: the last call before Encrypt
// wins (see SPEC_FULL.md §9 Open Question 2).
func (e *Encrypter) SetAdditionalAuthenticatedData(aad []byte) {
	e.aad = aad
}
