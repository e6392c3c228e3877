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
	"crypto/ecdh"
	"crypto/rand"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// x25519ECDH implements ECDHProvider over X25519, adapted from
// pkg/crypto/x25519/x25519.go's KeyAgreement wrapper around crypto/ecdh.
type x25519ECDH struct {
	curve ecdh.Curve
}

func newX25519ECDH() *x25519ECDH { return &x25519ECDH{curve: ecdh.X25519()} }

func (p *x25519ECDH) CurveName() jwk.Curve { return jwk.CurveX25519 }

func (p *x25519ECDH) RandomPrivateKey() ([]byte, error) {
	key, err := p.curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "failed to generate ephemeral key", err)
	}
	return key.Bytes(), nil
}

func (p *x25519ECDH) PublicKeyFromPrivate(priv []byte) ([]byte, error) {
	key, err := p.curve.NewPrivateKey(priv)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "invalid private key", err)
	}
	return key.PublicKey().Bytes(), nil
}

func (p *x25519ECDH) RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	x, err := jwk.DecodeCoordinate("x", j.X, jwk.CurveX25519)
	if err != nil {
		return nil, err
	}
	if _, err := p.curve.NewPublicKey(x); err != nil {
		return nil, joseerr.InvalidWrap("", "invalid X25519 public key", err)
	}
	return x, nil
}

func (p *x25519ECDH) RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	d, err := jwk.DecodeCoordinate("d", j.D, jwk.CurveX25519)
	if err != nil {
		return nil, err
	}
	if _, err := p.curve.NewPrivateKey(d); err != nil {
		return nil, joseerr.InvalidWrap("", "invalid X25519 private key", err)
	}
	return d, nil
}

func (p *x25519ECDH) JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	if len(raw) != 32 {
		return nil, joseerr.Invalid("", "malformed X25519 public key")
	}
	return &jwk.JWK{Kty: string(jwk.KeyTypeOKP), Crv: string(jwk.CurveX25519), X: b64.Encode(raw)}, nil
}

func (p *x25519ECDH) JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	pub, err := p.PublicKeyFromPrivate(raw)
	if err != nil {
		return nil, err
	}
	j, err := p.JWKPublicKeyFromRaw(pub)
	if err != nil {
		return nil, err
	}
	j.D = b64.Encode(raw)
	return j, nil
}

func (p *x25519ECDH) SharedSecret(priv, pub []byte) ([]byte, error) {
	privKey, err := p.curve.NewPrivateKey(priv)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "invalid private key", err)
	}
	pubKey, err := p.curve.NewPublicKey(pub)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "invalid public key", err)
	}
	z, err := privKey.ECDH(pubKey)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "ECDH agreement failed", err)
	}
	return z, nil
}
