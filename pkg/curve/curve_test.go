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

package curve

import (
	"bytes"
	"testing"

	"github.com/higayasuo/jose-universal/pkg/jwk"
)

func TestECDHSharedSecretAgreement(t *testing.T) {
	for _, crv := range []jwk.Curve{jwk.CurveP256, jwk.CurveP384, jwk.CurveP521, jwk.CurveX25519} {
		crv := crv
		t.Run(string(crv), func(t *testing.T) {
			provider, err := ResolveECDH(string(crv))
			if err != nil {
				t.Fatalf("ResolveECDH failed: %v", err)
			}

			alicePriv, err := provider.RandomPrivateKey()
			if err != nil {
				t.Fatalf("RandomPrivateKey failed: %v", err)
			}
			alicePub, err := provider.PublicKeyFromPrivate(alicePriv)
			if err != nil {
				t.Fatalf("PublicKeyFromPrivate failed: %v", err)
			}
			bobPriv, err := provider.RandomPrivateKey()
			if err != nil {
				t.Fatalf("RandomPrivateKey failed: %v", err)
			}
			bobPub, err := provider.PublicKeyFromPrivate(bobPriv)
			if err != nil {
				t.Fatalf("PublicKeyFromPrivate failed: %v", err)
			}

			z1, err := provider.SharedSecret(alicePriv, bobPub)
			if err != nil {
				t.Fatalf("SharedSecret (alice side) failed: %v", err)
			}
			z2, err := provider.SharedSecret(bobPriv, alicePub)
			if err != nil {
				t.Fatalf("SharedSecret (bob side) failed: %v", err)
			}
			if !bytes.Equal(z1, z2) {
				t.Fatal("expected both sides to agree on the same shared secret")
			}
		})
	}
}

func TestECDHJWKRoundTrip(t *testing.T) {
	provider, err := ResolveECDH(string(jwk.CurveP256))
	if err != nil {
		t.Fatalf("ResolveECDH failed: %v", err)
	}
	priv, err := provider.RandomPrivateKey()
	if err != nil {
		t.Fatalf("RandomPrivateKey failed: %v", err)
	}
	pub, err := provider.PublicKeyFromPrivate(priv)
	if err != nil {
		t.Fatalf("PublicKeyFromPrivate failed: %v", err)
	}

	pubJWK, err := provider.JWKPublicKeyFromRaw(pub)
	if err != nil {
		t.Fatalf("JWKPublicKeyFromRaw failed: %v", err)
	}
	rawPub, err := provider.RawPublicKeyFromJWK(pubJWK)
	if err != nil {
		t.Fatalf("RawPublicKeyFromJWK failed: %v", err)
	}
	if !bytes.Equal(rawPub, pub) {
		t.Fatal("expected JWK round trip to preserve the raw public key bytes")
	}
}

func TestResolveECDHRejectsSignatureOnlyCurve(t *testing.T) {
	if _, err := ResolveECDH(string(jwk.CurveSecp256k1)); err == nil {
		t.Fatal("expected secp256k1 to be rejected for ECDH (signature-only curve)")
	}
}

func TestSignatureSignVerifyRoundTrip(t *testing.T) {
	for _, crv := range []jwk.Curve{jwk.CurveP256, jwk.CurveP384, jwk.CurveP521, jwk.CurveSecp256k1, jwk.CurveEd25519} {
		crv := crv
		t.Run(string(crv), func(t *testing.T) {
			provider, err := ResolveSignature(string(crv))
			if err != nil {
				t.Fatalf("ResolveSignature failed: %v", err)
			}

			priv, pub := generateSignatureKeyPair(t, provider)
			message := []byte("sign me please")

			sig, err := provider.Sign(priv, message)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			ok, err := provider.Verify(pub, message, sig)
			if err != nil {
				t.Fatalf("Verify returned error: %v", err)
			}
			if !ok {
				t.Fatal("expected signature to verify")
			}

			tampered := append([]byte{}, message...)
			tampered[0] ^= 0xff
			ok, err = provider.Verify(pub, tampered, sig)
			if err == nil && ok {
				t.Fatal("expected verification of a tampered message to fail")
			}
		})
	}
}

func generateSignatureKeyPair(t *testing.T, provider SignatureProvider) (priv, pub []byte) {
	t.Helper()
	priv, err := provider.RandomPrivateKey()
	if err != nil {
		t.Fatalf("RandomPrivateKey failed: %v", err)
	}
	privJWK, err := provider.JWKPrivateKeyFromRaw(priv)
	if err != nil {
		t.Fatalf("JWKPrivateKeyFromRaw failed: %v", err)
	}
	pub, err = provider.RawPublicKeyFromJWK(privJWK)
	if err != nil {
		t.Fatalf("RawPublicKeyFromJWK failed: %v", err)
	}
	return priv, pub
}
