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

import (
	"context"
	"testing"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/curve"
	"github.com/higayasuo/jose-universal/pkg/header"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

func generateSigner(t *testing.T, crv jwk.Curve) (pub, priv *jwk.JWK) {
	t.Helper()
	provider, err := curve.ResolveSignature(string(crv))
	if err != nil {
		t.Fatalf("ResolveSignature failed: %v", err)
	}

	rawPriv, err := provider.RandomPrivateKey()
	if err != nil {
		t.Fatalf("RandomPrivateKey failed: %v", err)
	}
	priv, err = provider.JWKPrivateKeyFromRaw(rawPriv)
	if err != nil {
		t.Fatalf("JWKPrivateKeyFromRaw failed: %v", err)
	}
	pub = priv.PublicOnly()
	return pub, priv
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, crv := range []jwk.Curve{jwk.CurveP256, jwk.CurveP384, jwk.CurveP521, jwk.CurveSecp256k1, jwk.CurveEd25519} {
		crv := crv
		t.Run(string(crv), func(t *testing.T) {
			pub, priv := generateSigner(t, crv)
			payload := []byte(`{"sub":"alice","iss":"example"}`)

			flat, err := NewSigner(priv, SignOptions{}).Sign(context.Background(), payload)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			result, err := NewVerifier(pub, VerifyOptions{}).Verify(context.Background(), flat)
			if err != nil {
				t.Fatalf("Verify failed: %v", err)
			}
			if string(result.Payload) != string(payload) {
				t.Fatalf("round trip mismatch: got %q want %q", result.Payload, payload)
			}
		})
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	pub, priv := generateSigner(t, jwk.CurveP256)
	flat, err := NewSigner(priv, SignOptions{}).Sign(context.Background(), []byte("hello"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	flat.Signature = flat.Signature[:len(flat.Signature)-2] + "AA"

	if _, err := NewVerifier(pub, VerifyOptions{}).Verify(context.Background(), flat); err == nil {
		t.Fatal("expected verification of a tampered signature to fail")
	}
}

func TestVerifyFailureIsDistinctFromInvalid(t *testing.T) {
	pub, priv := generateSigner(t, jwk.CurveP256)
	flat, err := NewSigner(priv, SignOptions{}).Sign(context.Background(), []byte("hello"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	flat.Signature = flat.Signature[:len(flat.Signature)-2] + "AA"

	_, err = NewVerifier(pub, VerifyOptions{}).Verify(context.Background(), flat)
	if !joseerr.IsKind(err, joseerr.KindVerificationFailed) {
		t.Fatalf("expected KindVerificationFailed, got %v", err)
	}
}

func TestVerifyIgnoresB64WhenNotInCrit(t *testing.T) {
	pub, priv := generateSigner(t, jwk.CurveP256)
	provider, err := curve.ResolveSignature(string(jwk.CurveP256))
	if err != nil {
		t.Fatalf("ResolveSignature failed: %v", err)
	}
	rawPriv, err := provider.RawPrivateKeyFromJWK(priv)
	if err != nil {
		t.Fatalf("RawPrivateKeyFromJWK failed: %v", err)
	}

	// b64:false is present but not listed in crit, so per §4.10 step 4 it
	// MUST be ignored and b64 treated as unconditionally true, exactly
	// as the signing side would require (§4.9 step 4) if this protected
	// header had gone through Sign instead of being hand-built here.
	protected := header.Map{"alg": provider.AlgorithmName(), "b64": false}
	encodedProtected, err := header.EncodeProtected("JWS", protected)
	if err != nil {
		t.Fatalf("EncodeProtected failed: %v", err)
	}
	payload := []byte("hello")
	input := signingInput(encodedProtected, payload, true)
	sig, err := provider.Sign(rawPriv, input)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	flat := &Flattened{
		Protected: encodedProtected,
		Payload:   b64.Encode(payload),
		Signature: b64.Encode(sig),
	}

	result, err := NewVerifier(pub, VerifyOptions{}).Verify(context.Background(), flat)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if string(result.Payload) != string(payload) {
		t.Fatalf("expected b64:false outside crit to be ignored, got payload %q", result.Payload)
	}
}

func TestUnencodedPayloadRequiresCrit(t *testing.T) {
	_, priv := generateSigner(t, jwk.CurveP256)
	signer := NewSigner(priv, SignOptions{})
	if err := signer.SetProtectedHeader(map[string]any{"b64": false}); err != nil {
		t.Fatalf("SetProtectedHeader failed: %v", err)
	}
	if _, err := signer.Sign(context.Background(), []byte("raw payload")); err == nil {
		t.Fatal("expected b64:false without crit:[\"b64\"] to be rejected")
	}
}

func TestUnencodedPayloadRoundTrip(t *testing.T) {
	pub, priv := generateSigner(t, jwk.CurveP256)
	signer := NewSigner(priv, SignOptions{})
	if err := signer.SetProtectedHeader(map[string]any{
		"b64":  false,
		"crit": []any{"b64"},
	}); err != nil {
		t.Fatalf("SetProtectedHeader failed: %v", err)
	}
	payload := []byte("raw unencoded payload")

	flat, err := signer.Sign(context.Background(), payload)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if flat.Payload != string(payload) {
		t.Fatalf("expected unencoded payload to be carried verbatim, got %q", flat.Payload)
	}

	result, err := NewVerifier(pub, VerifyOptions{}).Verify(context.Background(), flat)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if string(result.Payload) != string(payload) {
		t.Fatalf("round trip mismatch: got %q", result.Payload)
	}
}

func TestToCompactRejectsEmptyUnencodedPayload(t *testing.T) {
	_, priv := generateSigner(t, jwk.CurveP256)
	signer := NewSigner(priv, SignOptions{})
	if err := signer.SetProtectedHeader(map[string]any{
		"b64":  false,
		"crit": []any{"b64"},
	}); err != nil {
		t.Fatalf("SetProtectedHeader failed: %v", err)
	}
	flat, err := signer.Sign(context.Background(), []byte(""))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if flat.Payload != "" {
		t.Fatalf("expected empty unencoded payload field, got %q", flat.Payload)
	}
	if _, err := flat.ToCompact(); err == nil {
		t.Fatal("expected ToCompact to reject an empty b64:false payload")
	}
}

func TestToCompactFromCompactRoundTrip(t *testing.T) {
	pub, priv := generateSigner(t, jwk.CurveP256)
	flat, err := NewSigner(priv, SignOptions{}).Sign(context.Background(), []byte("compact me"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	compact, err := flat.ToCompact()
	if err != nil {
		t.Fatalf("ToCompact failed: %v", err)
	}
	parsed, err := FromCompact(compact)
	if err != nil {
		t.Fatalf("FromCompact failed: %v", err)
	}
	result, err := NewVerifier(pub, VerifyOptions{}).Verify(context.Background(), parsed)
	if err != nil {
		t.Fatalf("Verify of round-tripped compact JWS failed: %v", err)
	}
	if string(result.Payload) != "compact me" {
		t.Fatalf("unexpected payload: %q", result.Payload)
	}
}
