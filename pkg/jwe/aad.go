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

import "github.com/higayasuo/jose-universal/pkg/b64"

// aeadAAD builds the octet sequence actually authenticated by the AEAD
// primitive (RFC 7516 §5.1 step 14 / §5.2 step 15): the ASCII bytes of the
// encoded protected header alone, or with the caller-supplied "aad" member
// appended after a '.' when present.
func aeadAAD(encodedProtected string, aad []byte) []byte {
	if len(aad) == 0 {
		return []byte(encodedProtected)
	}
	return []byte(encodedProtected + "." + b64.Encode(aad))
}
