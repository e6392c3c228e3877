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
	"strings"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// ToCompact projects a Flattened JWE to the five-field compact
// serialization (RFC 7516 §7.1):
//
//	BASE64URL(protected) . BASE64URL(encrypted_key) . BASE64URL(iv) .
//	BASE64URL(ciphertext) . BASE64URL(tag)
//
// The encrypted_key field is always empty for ECDH-ES direct key
// agreement. Compact serialization cannot carry the "aad", "unprotected",
// or per-recipient "header" members (§4.8), so ToCompact fails if any is
// present.
func (f *Flattened) ToCompact() (string, error) {
	if f.AAD != "" {
		return "", joseerr.Invalid("JWE", "compact serialization cannot carry additional authenticated data")
	}
	if len(f.Unprotected) > 0 {
		return "", joseerr.Invalid("JWE", "compact serialization cannot carry a shared unprotected header")
	}
	if len(f.Header) > 0 {
		return "", joseerr.Invalid("JWE", "compact serialization cannot carry a per-recipient unprotected header")
	}
	return strings.Join([]string{f.Protected, "", f.IV, f.Ciphertext, f.Tag}, "."), nil
}

// FromCompact parses the five-field compact serialization back into a
// Flattened JWE.
func FromCompact(s string) (*Flattened, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 5 {
		return nil, joseerr.Invalid("JWE", "compact serialization must have 5 dot-separated parts")
	}
	if parts[1] != "" {
		return nil, joseerr.Invalid("JWE", "encrypted_key must be empty for ECDH-ES direct key agreement")
	}
	if parts[0] == "" {
		return nil, joseerr.Invalid("JWE", "protected is required for compact serialization")
	}
	if parts[2] == "" {
		return nil, joseerr.Invalid("JWE", "iv is required for compact serialization")
	}
	if parts[3] == "" {
		return nil, joseerr.Invalid("JWE", "ciphertext is required for compact serialization")
	}
	if parts[4] == "" {
		return nil, joseerr.Invalid("JWE", "tag is required for compact serialization")
	}
	return &Flattened{
		Protected:  parts[0],
		IV:         parts[2],
		Ciphertext: parts[3],
		Tag:        parts[4],
	}, nil
}
