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

package aead

import "crypto/rand"

// Default is the built-in AEAD provider implementing all six supported
// enc algorithms over crypto/aes and crypto/cipher. It holds no mutable
// state and is safe for concurrent use (§5 "Shared resources").
type Default struct {
	// hardwareAESNI records whether the host has AES instructions, as
	// reported by HasHardwareAES (adapted from
	// pkg/crypto/aead/auto.go's SelectOptimal). It does not change
	// behavior — crypto/aes already dispatches to the assembly fast path
	// internally — and is only reported by HardwareAccelerated.
	hardwareAESNI bool
}

// NewDefault constructs the default provider, probing CPU features once
// at construction (adapted from pkg/crypto/aead/auto.go's HasAESNI).
func NewDefault() *Default {
	return &Default{hardwareAESNI: HasHardwareAES()}
}

// HardwareAccelerated reports whether this provider detected AES
// instruction support (see HasHardwareAES) on the current host.
func (d *Default) HardwareAccelerated() bool { return d.hardwareAESNI }

func (d *Default) Encrypt(p Params) (Result, error) {
	switch {
	case isGCM(p.Enc):
		return gcmEncrypt(p.Enc, p.Plaintext, p.CEK, p.AAD)
	case isCBCHMAC(p.Enc):
		return cbcHmacEncrypt(p.Enc, p.Plaintext, p.CEK, p.AAD)
	default:
		return Result{}, notSupportedEnc(p.Enc)
	}
}

func (d *Default) Decrypt(p DecryptParams) ([]byte, error) {
	switch {
	case isGCM(p.Enc):
		return gcmDecrypt(p.Enc, p.Ciphertext, p.IV, p.Tag, p.CEK, p.AAD)
	case isCBCHMAC(p.Enc):
		return cbcHmacDecrypt(p.Enc, p.Ciphertext, p.IV, p.Tag, p.CEK, p.AAD)
	default:
		return nil, notSupportedEnc(p.Enc)
	}
}

func (d *Default) IsEnc(name string) bool {
	return isGCM(name) || isCBCHMAC(name)
}

func (d *Default) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
