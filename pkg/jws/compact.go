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

package jws

import (
	"strings"

	"github.com/higayasuo/jose-universal/pkg/header"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// ToCompact projects a Flattened JWS to the three-field compact
// serialization (RFC 7515 §7.1):
//
//	BASE64URL(protected) . payload . BASE64URL(signature)
//
// Compact serialization has no room for an unprotected "header" member
// (§4.11), so ToCompact fails if one is present. It also rejects an empty
// b64:false payload (RFC 7797 §4's detached-payload form): compact
// serialization has no way to represent a detached payload, so that
// combination belongs to the flattened JSON form instead.
func (f *Flattened) ToCompact() (string, error) {
	if len(f.Header) > 0 {
		return "", joseerr.Invalid("JWS", "compact serialization cannot carry an unprotected header")
	}
	if f.Protected == "" {
		return "", joseerr.Invalid("JWS", "protected header is required for compact serialization")
	}
	protected, err := header.DecodeProtected("JWS", f.Protected)
	if err != nil {
		return "", err
	}
	if b64Flag, present := protected["b64"]; present {
		if b, ok := b64Flag.(bool); ok && !b && f.Payload == "" {
			return "", joseerr.Invalid("JWS", "use the flattened module for creating JWS with b64: false")
		}
	}
	return strings.Join([]string{f.Protected, f.Payload, f.Signature}, "."), nil
}

// FromCompact parses the three-field compact serialization back into a
// Flattened JWS.
func FromCompact(s string) (*Flattened, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, joseerr.Invalid("JWS", "compact serialization must have 3 dot-separated parts")
	}
	return &Flattened{
		Protected: parts[0],
		Payload:   parts[1],
		Signature: parts[2],
	}, nil
}
