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
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// secp256k1Signature implements SignatureProvider for ES256K (RFC 8812).
// The standard library has no secp256k1 support; this is the ecosystem
// implementation already present (indirectly) in the retrieval pack via
// openebl-openebl's go.mod.
type secp256k1Signature struct{}

func newSecp256k1Signature() *secp256k1Signature { return &secp256k1Signature{} }

func (p *secp256k1Signature) CurveName() jwk.Curve  { return jwk.CurveSecp256k1 }
func (p *secp256k1Signature) AlgorithmName() string { return "ES256K" }

func (p *secp256k1Signature) RandomPrivateKey() ([]byte, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "key generation failed", err)
	}
	return key.Serialize(), nil
}

func (p *secp256k1Signature) RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	x, err := jwk.DecodeCoordinate("x", j.X, jwk.CurveSecp256k1)
	if err != nil {
		return nil, err
	}
	y, err := jwk.DecodeCoordinate("y", j.Y, jwk.CurveSecp256k1)
	if err != nil {
		return nil, err
	}
	point := append([]byte{0x04}, x...)
	point = append(point, y...)
	return point, nil
}

func (p *secp256k1Signature) RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	return jwk.DecodeCoordinate("d", j.D, jwk.CurveSecp256k1)
}

func (p *secp256k1Signature) JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	if len(raw) != 65 || raw[0] != 0x04 {
		return nil, joseerr.Invalid("JWS", "malformed secp256k1 public key")
	}
	return &jwk.JWK{
		Kty: string(jwk.KeyTypeEC),
		Crv: string(jwk.CurveSecp256k1),
		X:   b64.Encode(raw[1:33]),
		Y:   b64.Encode(raw[33:65]),
	}, nil
}

func (p *secp256k1Signature) JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	if len(raw) != 32 {
		return nil, joseerr.Invalid("JWS", "malformed secp256k1 private key")
	}
	priv := secp256k1.PrivKeyFromBytes(raw)
	pub := priv.PubKey().SerializeUncompressed()
	j, err := p.JWKPublicKeyFromRaw(pub)
	if err != nil {
		return nil, err
	}
	j.D = b64.Encode(raw)
	return j, nil
}

func (p *secp256k1Signature) Sign(priv, message []byte) ([]byte, error) {
	if len(priv) != 32 {
		return nil, joseerr.Invalid("JWS", "malformed secp256k1 private key")
	}
	key := secp256k1.PrivKeyFromBytes(priv)
	digest := sha256.Sum256(message)
	sig := ecdsa.Sign(key, digest[:])

	r := sig.R()
	s := sig.S()
	rBytes := r.Bytes()
	sBytes := s.Bytes()
	out := make([]byte, 64)
	copy(out[:32], rBytes[:])
	copy(out[32:], sBytes[:])
	return out, nil
}

func (p *secp256k1Signature) Verify(pub, message, signature []byte) (bool, error) {
	if len(signature) != 64 {
		return false, nil
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false, joseerr.Invalid("JWS", "malformed secp256k1 public key")
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) {
		return false, nil
	}
	if s.SetByteSlice(signature[32:]) {
		return false, nil
	}
	sig := ecdsa.NewSignature(&r, &s)
	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], key), nil
}
