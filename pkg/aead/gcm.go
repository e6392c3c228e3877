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

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

func gcmKeyLen(enc string) int {
	switch enc {
	case "A128GCM":
		return 16
	case "A192GCM":
		return 24
	case "A256GCM":
		return 32
	default:
		return 0
	}
}

func gcmEncrypt(enc string, plaintext, cek, aad []byte) (Result, error) {
	keyLen := gcmKeyLen(enc)
	if len(cek) != keyLen {
		return Result{}, joseerr.Invalid("", "CEK length does not match enc algorithm")
	}
	block, err := aes.NewCipher(cek)
	if err != nil {
		return Result{}, joseerr.InvalidWrap("", "failed to initialize AES-GCM", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen[enc])
	if err != nil {
		return Result{}, joseerr.InvalidWrap("", "failed to initialize AES-GCM", err)
	}
	iv := make([]byte, ivLen[enc])
	if _, err := rand.Read(iv); err != nil {
		return Result{}, joseerr.InvalidWrap("", "failed to generate IV", err)
	}
	sealed := gcm.Seal(nil, iv, plaintext, aad)
	tagStart := len(sealed) - gcm.Overhead()
	return Result{
		Ciphertext: sealed[:tagStart],
		IV:         iv,
		Tag:        sealed[tagStart:],
	}, nil
}

func gcmDecrypt(enc string, ciphertext, iv, tag, cek, aad []byte) ([]byte, error) {
	keyLen := gcmKeyLen(enc)
	if len(cek) != keyLen {
		return nil, joseerr.Invalid("", "CEK length does not match enc algorithm")
	}
	if len(iv) != ivLen[enc] {
		return nil, joseerr.Invalid("", "IV length does not match enc algorithm")
	}
	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "failed to initialize AES-GCM", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen[enc])
	if err != nil {
		return nil, joseerr.InvalidWrap("", "failed to initialize AES-GCM", err)
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)
	return gcm.Open(nil, iv, sealed, aad)
}
