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

import "testing"

func TestDefaultEncryptDecryptRoundTrip(t *testing.T) {
	p := NewDefault()
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("header context")

	for _, enc := range []string{"A128GCM", "A192GCM", "A256GCM", "A128CBC-HS256", "A192CBC-HS384", "A256CBC-HS512"} {
		enc := enc
		t.Run(enc, func(t *testing.T) {
			cek, err := p.RandomBytes(cekLenFor(t, enc))
			if err != nil {
				t.Fatalf("RandomBytes failed: %v", err)
			}
			result, err := p.Encrypt(Params{Enc: enc, Plaintext: plaintext, CEK: cek, AAD: aad})
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}
			got, err := p.Decrypt(DecryptParams{
				Enc: enc, Ciphertext: result.Ciphertext, IV: result.IV, Tag: result.Tag, CEK: cek, AAD: aad,
			})
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if string(got) != string(plaintext) {
				t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
			}
		})
	}
}

func TestDefaultDecryptRejectsTamperedCiphertext(t *testing.T) {
	p := NewDefault()
	cek, _ := p.RandomBytes(32)
	result, err := p.Encrypt(Params{Enc: "A256GCM", Plaintext: []byte("secret"), CEK: cek})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	result.Ciphertext[0] ^= 0xff

	if _, err := p.Decrypt(DecryptParams{Enc: "A256GCM", Ciphertext: result.Ciphertext, IV: result.IV, Tag: result.Tag, CEK: cek}); err == nil {
		t.Fatal("expected tampered ciphertext to fail authentication")
	}
}

func TestDefaultDecryptRejectsWrongAAD(t *testing.T) {
	p := NewDefault()
	cek, _ := p.RandomBytes(64)
	result, err := p.Encrypt(Params{Enc: "A256CBC-HS512", Plaintext: []byte("secret"), CEK: cek, AAD: []byte("a")})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := p.Decrypt(DecryptParams{
		Enc: "A256CBC-HS512", Ciphertext: result.Ciphertext, IV: result.IV, Tag: result.Tag, CEK: cek, AAD: []byte("b"),
	}); err == nil {
		t.Fatal("expected mismatched AAD to fail authentication")
	}
}

func TestIsEnc(t *testing.T) {
	p := NewDefault()
	if !p.IsEnc("A256GCM") || !p.IsEnc("A128CBC-HS256") {
		t.Fatal("expected supported enc names to be recognized")
	}
	if p.IsEnc("A256CBC") {
		t.Fatal("did not expect an unsupported enc name to be recognized")
	}
}

func cekLenFor(t *testing.T, enc string) int {
	t.Helper()
	switch enc {
	case "A128GCM":
		return 16
	case "A192GCM":
		return 24
	case "A256GCM":
		return 32
	case "A128CBC-HS256":
		return 32
	case "A192CBC-HS384":
		return 48
	case "A256CBC-HS512":
		return 64
	default:
		t.Fatalf("unknown enc %s", enc)
		return 0
	}
}
