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

package jose

import (
	"context"
	"testing"

	"github.com/higayasuo/jose-universal/pkg/curve"
	"github.com/higayasuo/jose-universal/pkg/jwe"
	"github.com/higayasuo/jose-universal/pkg/jwk"
	"github.com/higayasuo/jose-universal/pkg/jws"
)

func generateP256Pair(t *testing.T) (pub, priv *jwk.JWK) {
	t.Helper()
	provider, err := curve.ResolveECDH(string(jwk.CurveP256))
	if err != nil {
		t.Fatalf("ResolveECDH failed: %v", err)
	}
	rawPriv, err := provider.RandomPrivateKey()
	if err != nil {
		t.Fatalf("RandomPrivateKey failed: %v", err)
	}
	priv, err = provider.JWKPrivateKeyFromRaw(rawPriv)
	if err != nil {
		t.Fatalf("JWKPrivateKeyFromRaw failed: %v", err)
	}
	rawPub, err := provider.PublicKeyFromPrivate(rawPriv)
	if err != nil {
		t.Fatalf("PublicKeyFromPrivate failed: %v", err)
	}
	pub, err = provider.JWKPublicKeyFromRaw(rawPub)
	if err != nil {
		t.Fatalf("JWKPublicKeyFromRaw failed: %v", err)
	}
	return pub, priv
}

func TestKeySetEncryptDecryptByKID(t *testing.T) {
	pub, priv := generateP256Pair(t)

	encryptKS := &KeySet{
		GetEncryptionKey: func(kid string) (*jwk.JWK, error) {
			if kid != "recipient-1" {
				t.Fatalf("unexpected kid %q", kid)
			}
			return pub, nil
		},
	}
	flat, err := encryptKS.EncryptTo(context.Background(), "A256GCM", "recipient-1", []byte("message"), jwe.EncryptOptions{})
	if err != nil {
		t.Fatalf("EncryptTo failed: %v", err)
	}

	decryptKS := &KeySet{
		GetEncryptionKey: func(kid string) (*jwk.JWK, error) {
			if kid != "recipient-1" {
				t.Fatalf("unexpected kid %q", kid)
			}
			return priv, nil
		},
	}
	result, err := decryptKS.DecryptAuto(context.Background(), flat, jwe.DecryptOptions{})
	if err != nil {
		t.Fatalf("DecryptAuto failed: %v", err)
	}
	if string(result.Plaintext) != "message" {
		t.Fatalf("unexpected plaintext: %q", result.Plaintext)
	}
}

func TestKeySetSignVerifyByKID(t *testing.T) {
	pub, priv := generateP256Pair(t)
	ks := &KeySet{
		GetSigningKey: func(kid string) (*jwk.JWK, error) {
			if kid == "signer-1" {
				return priv, nil
			}
			return pub, nil
		},
	}

	flat, err := ks.SignAs(context.Background(), "signer-1", []byte("payload"), jws.SignOptions{})
	if err != nil {
		t.Fatalf("SignAs failed: %v", err)
	}

	verifyKS := &KeySet{
		GetSigningKey: func(kid string) (*jwk.JWK, error) {
			return pub, nil
		},
	}
	result, err := verifyKS.VerifyAuto(context.Background(), flat, jws.VerifyOptions{})
	if err != nil {
		t.Fatalf("VerifyAuto failed: %v", err)
	}
	if string(result.Payload) != "payload" {
		t.Fatalf("unexpected payload: %q", result.Payload)
	}
}
