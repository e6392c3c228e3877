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
	"crypto/ed25519"
	"crypto/rand"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// ed25519Signature implements SignatureProvider for EdDSA/Ed25519,
// grounded on pkg/signing/signer.go's signEd25519 special case (hash==0,
// signs the message directly rather than a digest).
type ed25519Signature struct{}

func newEd25519Signature() *ed25519Signature { return &ed25519Signature{} }

func (p *ed25519Signature) CurveName() jwk.Curve  { return jwk.CurveEd25519 }
func (p *ed25519Signature) AlgorithmName() string { return "EdDSA" }

func (p *ed25519Signature) RandomPrivateKey() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "key generation failed", err)
	}
	return priv.Seed(), nil
}

func (p *ed25519Signature) RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	return jwk.DecodeCoordinate("x", j.X, jwk.CurveEd25519)
}

func (p *ed25519Signature) RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	return jwk.DecodeCoordinate("d", j.D, jwk.CurveEd25519)
}

func (p *ed25519Signature) JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, joseerr.Invalid("JWS", "malformed Ed25519 public key")
	}
	return &jwk.JWK{Kty: string(jwk.KeyTypeOKP), Crv: string(jwk.CurveEd25519), X: b64.Encode(raw)}, nil
}

func (p *ed25519Signature) JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	if len(raw) != ed25519.SeedSize {
		return nil, joseerr.Invalid("JWS", "malformed Ed25519 private seed")
	}
	priv := ed25519.NewKeyFromSeed(raw)
	pub := priv.Public().(ed25519.PublicKey)
	j, err := p.JWKPublicKeyFromRaw(pub)
	if err != nil {
		return nil, err
	}
	j.D = b64.Encode(raw)
	return j, nil
}

func (p *ed25519Signature) Sign(priv, message []byte) ([]byte, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, joseerr.Invalid("JWS", "malformed Ed25519 private seed")
	}
	key := ed25519.NewKeyFromSeed(priv)
	return ed25519.Sign(key, message), nil
}

func (p *ed25519Signature) Verify(pub, message, signature []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, joseerr.Invalid("JWS", "malformed Ed25519 public key")
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, signature), nil
}
