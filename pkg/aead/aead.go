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

// Package aead implements the AEAD provider contract (SPEC_FULL.md §4.12)
// for the six supported content-encryption algorithms: AES-GCM
// (A128/A192/A256GCM) and AES-CBC+HMAC (A128CBC-HS256, A192CBC-HS384,
// A256CBC-HS512, RFC 7518 §5.2).
package aead

import (
	"fmt"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// Params is a pre-filled encryption request.
type Params struct {
	Enc       string
	Plaintext []byte
	CEK       []byte
	AAD       []byte
}

// DecryptParams is a pre-filled decryption request.
type DecryptParams struct {
	Enc        string
	Ciphertext []byte
	IV         []byte
	Tag        []byte
	CEK        []byte
	AAD        []byte
}

// Result is the output of an AEAD encrypt call.
type Result struct {
	Ciphertext []byte
	IV         []byte
	Tag        []byte
}

// Provider is the AEAD capability set. A single Provider value handles all
// six enc algorithms, dispatching internally by name (RFC 7516 §11.5
// error-shape uniformity requires one call site per direction).
type Provider interface {
	Encrypt(p Params) (Result, error)
	Decrypt(p DecryptParams) ([]byte, error)
	IsEnc(name string) bool
	RandomBytes(n int) ([]byte, error)
}

// ivLen records the standard IV size per enc name (§4.12: GCM 96-bit,
// CBC-HS 128-bit). Tag sizes are not tabulated here: GCM's 128-bit tag
// comes from cipher.AEAD, and CBC-HS truncates its HMAC to half the key.
var ivLen = map[string]int{
	"A128GCM": 12, "A192GCM": 12, "A256GCM": 12,
	"A128CBC-HS256": 16, "A192CBC-HS384": 16, "A256CBC-HS512": 16,
}

func isGCM(enc string) bool {
	switch enc {
	case "A128GCM", "A192GCM", "A256GCM":
		return true
	default:
		return false
	}
}

func isCBCHMAC(enc string) bool {
	switch enc {
	case "A128CBC-HS256", "A192CBC-HS384", "A256CBC-HS512":
		return true
	default:
		return false
	}
}

func notSupportedEnc(enc string) error {
	return joseerr.NotSupported("", fmt.Sprintf("unsupported content encryption algorithm: %s", enc))
}
