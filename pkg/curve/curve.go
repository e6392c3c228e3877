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

// Package curve defines the EC-Curve and Signature curve provider
// contracts (SPEC_FULL.md §4.12) and the concrete implementations this
// module ships, keyed by registries on jwk.Curve rather than a shared
// parent type (§9 "Provider polymorphism" design note).
package curve

import (
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// ECDHProvider is the capability set for ECDH-ES key agreement over one
// curve: key generation, JWK conversion, and shared-secret derivation. No
// provider method holds mutable state across calls — providers are
// re-entrant (§5 "Shared resources").
type ECDHProvider interface {
	CurveName() jwk.Curve
	RandomPrivateKey() ([]byte, error)
	PublicKeyFromPrivate(priv []byte) ([]byte, error)
	RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error)
	RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error)
	JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error)
	JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error)
	SharedSecret(priv, pub []byte) ([]byte, error)
}

// SignatureProvider is the capability set for JWS sign/verify over one
// curve, plus the canonical alg name used for key/alg agreement (§4.9
// step 6).
type SignatureProvider interface {
	CurveName() jwk.Curve
	AlgorithmName() string
	RandomPrivateKey() ([]byte, error)
	RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error)
	RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error)
	JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error)
	JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error)
	Sign(priv, message []byte) ([]byte, error)
	Verify(pub, message, signature []byte) (bool, error)
}

// ecdhRegistry maps the curves usable for ECDH-ES (§6: {P-256, P-384,
// P-521, X25519}; secp256k1 is signature-only).
var ecdhRegistry = map[jwk.Curve]ECDHProvider{
	jwk.CurveP256:   newNISTECDH(jwk.CurveP256),
	jwk.CurveP384:   newNISTECDH(jwk.CurveP384),
	jwk.CurveP521:   newNISTECDH(jwk.CurveP521),
	jwk.CurveX25519: newX25519ECDH(),
}

// sigRegistry maps the curves usable for JWS signing (§6: {P-256, P-384,
// P-521, secp256k1, Ed25519}).
var sigRegistry = map[jwk.Curve]SignatureProvider{
	jwk.CurveP256:      newNISTSignature(jwk.CurveP256),
	jwk.CurveP384:      newNISTSignature(jwk.CurveP384),
	jwk.CurveP521:      newNISTSignature(jwk.CurveP521),
	jwk.CurveSecp256k1: newSecp256k1Signature(),
	jwk.CurveEd25519:   newEd25519Signature(),
}

// ResolveECDH looks up the EC-Curve provider for crv, failing
// not-supported if the curve is unknown or not usable for key agreement.
func ResolveECDH(crv string) (ECDHProvider, error) {
	p, ok := ecdhRegistry[jwk.Curve(crv)]
	if !ok {
		return nil, notSupportedCurve(crv)
	}
	return p, nil
}

// ResolveSignature looks up the signature curve provider for crv.
func ResolveSignature(crv string) (SignatureProvider, error) {
	p, ok := sigRegistry[jwk.Curve(crv)]
	if !ok {
		return nil, notSupportedCurve(crv)
	}
	return p, nil
}

// ResolveSignatureByAlg looks up the signature curve provider whose
// AlgorithmName matches alg, used by JWS verify when only the alg is known
// up front.
func ResolveSignatureByAlg(alg string) (SignatureProvider, error) {
	for _, p := range sigRegistry {
		if p.AlgorithmName() == alg {
			return p, nil
		}
	}
	return nil, notSupportedAlg(alg)
}
