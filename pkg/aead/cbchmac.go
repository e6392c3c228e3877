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
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// cbcHmacSpec describes one AES-CBC + HMAC enc algorithm (RFC 7518 §5.2):
// the CEK is split into a MAC key and an encryption key of equal length,
// and the authentication tag is the first macKeyLen bytes of the HMAC
// output over AAD || IV || ciphertext || AL.
type cbcHmacSpec struct {
	encKeyLen int
	macKeyLen int
	newHash   func() hash.Hash
}

func cbcHmacSpecFor(enc string) (cbcHmacSpec, bool) {
	switch enc {
	case "A128CBC-HS256":
		return cbcHmacSpec{encKeyLen: 16, macKeyLen: 16, newHash: sha256.New}, true
	case "A192CBC-HS384":
		return cbcHmacSpec{encKeyLen: 24, macKeyLen: 24, newHash: sha512.New384}, true
	case "A256CBC-HS512":
		return cbcHmacSpec{encKeyLen: 32, macKeyLen: 32, newHash: sha512.New}, true
	default:
		return cbcHmacSpec{}, false
	}
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(data, padding...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, joseerr.Invalid("", "invalid padding")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, joseerr.Invalid("", "invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, joseerr.Invalid("", "invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}

func cbcHmacAuthTag(spec cbcHmacSpec, macKey, aad, iv, ciphertext []byte) []byte {
	al := make([]byte, 8)
	binary.BigEndian.PutUint64(al, uint64(len(aad))*8)

	mac := hmac.New(spec.newHash, macKey)
	mac.Write(aad)
	mac.Write(iv)
	mac.Write(ciphertext)
	mac.Write(al)
	full := mac.Sum(nil)
	return full[:spec.macKeyLen]
}

func cbcHmacEncrypt(enc string, plaintext, cek, aad []byte) (Result, error) {
	spec, ok := cbcHmacSpecFor(enc)
	if !ok {
		return Result{}, notSupportedEnc(enc)
	}
	if len(cek) != spec.encKeyLen+spec.macKeyLen {
		return Result{}, joseerr.Invalid("", "CEK length does not match enc algorithm")
	}
	macKey := cek[:spec.macKeyLen]
	encKey := cek[spec.macKeyLen:]

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return Result{}, joseerr.InvalidWrap("", "failed to initialize AES-CBC", err)
	}
	iv := make([]byte, ivLen[enc])
	if _, err := rand.Read(iv); err != nil {
		return Result{}, joseerr.InvalidWrap("", "failed to generate IV", err)
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	tag := cbcHmacAuthTag(spec, macKey, aad, iv, ciphertext)
	return Result{Ciphertext: ciphertext, IV: iv, Tag: tag}, nil
}

func cbcHmacDecrypt(enc string, ciphertext, iv, tag, cek, aad []byte) ([]byte, error) {
	spec, ok := cbcHmacSpecFor(enc)
	if !ok {
		return nil, notSupportedEnc(enc)
	}
	if len(cek) != spec.encKeyLen+spec.macKeyLen {
		return nil, joseerr.Invalid("", "CEK length does not match enc algorithm")
	}
	if len(iv) != ivLen[enc] {
		return nil, joseerr.Invalid("", "IV length does not match enc algorithm")
	}
	macKey := cek[:spec.macKeyLen]
	encKey := cek[spec.macKeyLen:]

	expectedTag := cbcHmacAuthTag(spec, macKey, aad, iv, ciphertext)
	if !hmac.Equal(expectedTag, tag) {
		return nil, joseerr.Invalid("", "authentication tag mismatch")
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, joseerr.Invalid("", "malformed ciphertext")
	}
	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "failed to initialize AES-CBC", err)
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	return pkcs7Unpad(padded, aes.BlockSize)
}
