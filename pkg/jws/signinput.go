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

import "github.com/higayasuo/jose-universal/pkg/b64"

// signingInput builds the JWS Signing Input (RFC 7515 §5.1 step 8, as
// amended by RFC 7797 §3 for b64:false):
//
//	ASCII(encodedProtected) || '.' || (BASE64URL(payload) if b64 else ASCII(payload))
func signingInput(encodedProtected string, payload []byte, b64Enabled bool) []byte {
	var payloadSeg string
	if b64Enabled {
		payloadSeg = b64.Encode(payload)
	} else {
		payloadSeg = string(payload)
	}
	out := make([]byte, 0, len(encodedProtected)+1+len(payloadSeg))
	out = append(out, encodedProtected...)
	out = append(out, '.')
	out = append(out, payloadSeg...)
	return out
}
