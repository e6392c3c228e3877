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

// Package kdf implements the Concat-KDF counter-mode key derivation
// function (NIST SP 800-56A §5.8.1, referenced by RFC 7518 §4.6.2) and the
// ECDH-ES OtherInfo encoding it consumes. No general-purpose Concat-KDF
// library exists among this module's dependencies; the construction is a
// handful of SHA-256 calls over a length-prefixed buffer, built directly on
// crypto/sha256 the way the corpus hand-rolls the closely related X9.63 KDF
// (see DESIGN.md).
package kdf

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// MaxPartyInfoLen is the maximum byte length of apu/apv (§3 invariant 4).
const MaxPartyInfoLen = 32

// BitLengthForEnc is the CEK bit-length table (§4.3).
var BitLengthForEnc = map[string]int{
	"A128GCM":       128,
	"A192GCM":       192,
	"A256GCM":       256,
	"A128CBC-HS256": 256,
	"A192CBC-HS384": 384,
	"A256CBC-HS512": 512,
}

// allowedKeyBitLens is the closed set of valid ConcatKDF output sizes;
// any other value is a programming error upstream, not a recoverable one.
var allowedKeyBitLens = map[int]bool{128: true, 192: true, 256: true, 384: true, 512: true}

// OtherInfo builds the ECDH-ES OtherInfo context string (§4.3):
//
//	len(algID) || algID || len(apu) || apu || len(apv) || apv || u32be(keyBitLength)
//
// enc must be a recognized content-encryption algorithm name; apu/apv may
// be nil (treated as zero-length) but if present must each be ≤ 32 bytes.
func OtherInfo(enc string, apu, apv []byte) ([]byte, error) {
	keyBitLen, ok := BitLengthForEnc[enc]
	if !ok {
		return nil, joseerr.NotSupported("", fmt.Sprintf("unsupported content encryption algorithm: %s", enc))
	}
	if len(apu) > MaxPartyInfoLen {
		return nil, joseerr.Invalid("", "apu exceeds 32 bytes")
	}
	if len(apv) > MaxPartyInfoLen {
		return nil, joseerr.Invalid("", "apv exceeds 32 bytes")
	}
	algID := []byte(enc)

	buf := make([]byte, 0, 4+len(algID)+4+len(apu)+4+len(apv)+4)
	buf = appendLenPrefixed(buf, algID)
	buf = appendLenPrefixed(buf, apu)
	buf = appendLenPrefixed(buf, apv)
	buf = binary.BigEndian.AppendUint32(buf, uint32(keyBitLen))
	return buf, nil
}

func appendLenPrefixed(buf, v []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(v)))
	return append(buf, v...)
}

// ConcatKDF derives keyBitLen/8 bytes of key material from the ECDH shared
// secret z and the otherInfo context, per NIST SP 800-56A's single-step
// counter-mode KDF using SHA-256 as the auxiliary function:
//
//	for i = 1 .. ceil(keyBitLen / 256): H_i = SHA256(u32be(i) || z || otherInfo)
//	DKM = concat(H_1, H_2, ...)[:keyBitLen/8]
func ConcatKDF(z, otherInfo []byte, keyBitLen int) ([]byte, error) {
	if !allowedKeyBitLens[keyBitLen] {
		return nil, joseerr.Invalid("", fmt.Sprintf("unsupported CEK bit length: %d", keyBitLen))
	}
	hashLenBits := sha256.Size * 8
	reps := (keyBitLen + hashLenBits - 1) / hashLenBits

	out := make([]byte, 0, reps*sha256.Size)
	for i := 1; i <= reps; i++ {
		h := sha256.New()
		var counter [4]byte
		binary.BigEndian.PutUint32(counter[:], uint32(i))
		h.Write(counter[:])
		h.Write(z)
		h.Write(otherInfo)
		out = append(out, h.Sum(nil)...)
	}
	return out[:keyBitLen/8], nil
}

// DeriveCEK is the composition OtherInfo + ConcatKDF used by both the
// encryption and decryption sides of ECDH-ES (§4.4), guaranteeing CEK
// equivalence (§8 invariant 5) since both are pure functions of
// (z, enc, apu, apv).
func DeriveCEK(z []byte, enc string, apu, apv []byte) ([]byte, error) {
	info, err := OtherInfo(enc, apu, apv)
	if err != nil {
		return nil, err
	}
	return ConcatKDF(z, info, BitLengthForEnc[enc])
}
