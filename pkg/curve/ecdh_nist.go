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

// nistECDH implements ECDHProvider over the stdlib crypto/ecdh NIST
// curves, adapted from pkg/crypto/ecdh/ecdh.go's ECDSA-to-crypto/ecdh
// conversion pattern but operating directly on raw/JWK coordinates since
// this library's keys are JWKs, not x509 certificates.
type nistECDH struct {
	name  jwk.Curve
	curve ecdh.Curve
}

func newNISTECDH(name jwk.Curve) *nistECDH {
	return &nistECDH{name: name, curve: nistCurve(name)}
}

func nistCurve(name jwk.Curve) ecdh.Curve {
	switch name {
	case jwk.CurveP256:
		return ecdh.P256()
	case jwk.CurveP384:
		return ecdh.P384()
	case jwk.CurveP521:
		return ecdh.P521()
	default:
		return nil
	}
}

func (p *nistECDH) CurveName() jwk.Curve { return p.name }

func (p *nistECDH) RandomPrivateKey() ([]byte, error) {
	key, err := p.curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "failed to generate ephemeral key", err)
	}
	return key.Bytes(), nil
}

func (p *nistECDH) PublicKeyFromPrivate(priv []byte) ([]byte, error) {
	key, err := p.curve.NewPrivateKey(priv)
	if err != nil {
		return nil, joseerr.InvalidWrap("", "invalid private key", err)
	}
	return key.PublicKey().Bytes(), nil
}

// RawPublicKeyFromJWK decodes x/y and reassembles the SEC1 uncompressed
// point (0x04 || X || Y) crypto/ecdh expects.
func (p *nistECDH) RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	x, err := jwk.DecodeCoordinate("x", j.X, p.name)
	if err != nil {
		return nil, err
	}
	y, err := jwk.DecodeCoordinate("y", j.Y, p.name)
	if err != nil {
		return nil, err
	}
	point := append([]byte{0x04}, x...)
	point = append(point, y...)
	if _, err := p.curve.NewPublicKey(point); err != nil {
		return nil, joseerr.InvalidWrap("", "invalid EC point", err)
	}
	return point, nil
}

func (p *nistECDH) RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	d, err := jwk.DecodeCoordinate("d", j.D, p.name)
	if err != nil {
		return nil, err
	}
	if _, err := p.curve.NewPrivateKey(d); err != nil {
		return nil, joseerr.InvalidWrap("", "invalid EC private key", err)
	}
	return d, nil
}

func (p *nistECDH) JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	n, err := p.name.ScalarLen()
	if err != nil {
		return nil, err
	}
	if len(raw) != 1+2*n || raw[0] != 0x04 {
		return nil, joseerr.Invalid("", "malformed EC point")
	}
	return &jwk.JWK{
		Kty: string(jwk.KeyTypeEC),
		Crv: string(p.name),
		X:   b64.Encode(raw[1 : 1+n]),
		Y:   b64.Encode(raw[1+n : 1+2*n]),
	}, nil
}

func (p *nistECDH) JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error) {
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

func (p *nistECDH) SharedSecret(priv, pub []byte) ([]byte, error) {
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
