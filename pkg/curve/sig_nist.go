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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"math/big"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// nistSignature implements SignatureProvider over ECDSA on a NIST curve,
// using the fixed-width R||S JOSE encoding (RFC 7518 §3.4) rather than the
// ASN.1 DER encoding crypto/ecdsa's SignASN1 produces, adapted from the
// dispatch-on-public-key-type style of pkg/signing/signer.go.
type nistSignature struct {
	name   jwk.Curve
	curve  elliptic.Curve
	alg    string
	newMAC func() hash.Hash
}

func newNISTSignature(name jwk.Curve) *nistSignature {
	switch name {
	case jwk.CurveP256:
		return &nistSignature{name: name, curve: elliptic.P256(), alg: "ES256", newMAC: sha256.New}
	case jwk.CurveP384:
		return &nistSignature{name: name, curve: elliptic.P384(), alg: "ES384", newMAC: sha512.New384}
	case jwk.CurveP521:
		return &nistSignature{name: name, curve: elliptic.P521(), alg: "ES512", newMAC: sha512.New}
	default:
		return nil
	}
}

func (p *nistSignature) CurveName() jwk.Curve  { return p.name }
func (p *nistSignature) AlgorithmName() string { return p.alg }

func (p *nistSignature) RandomPrivateKey() ([]byte, error) {
	key, err := ecdsa.GenerateKey(p.curve, rand.Reader)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "key generation failed", err)
	}
	n, err := p.name.ScalarLen()
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	key.D.FillBytes(out)
	return out, nil
}

func (p *nistSignature) RawPublicKeyFromJWK(j *jwk.JWK) ([]byte, error) {
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
	return point, nil
}

func (p *nistSignature) RawPrivateKeyFromJWK(j *jwk.JWK) ([]byte, error) {
	return jwk.DecodeCoordinate("d", j.D, p.name)
}

func (p *nistSignature) JWKPublicKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	n, err := p.name.ScalarLen()
	if err != nil {
		return nil, err
	}
	if len(raw) != 1+2*n || raw[0] != 0x04 {
		return nil, joseerr.Invalid("JWS", "malformed EC point")
	}
	return &jwk.JWK{
		Kty: string(jwk.KeyTypeEC),
		Crv: string(p.name),
		X:   b64.Encode(raw[1 : 1+n]),
		Y:   b64.Encode(raw[1+n : 1+2*n]),
	}, nil
}

func (p *nistSignature) JWKPrivateKeyFromRaw(raw []byte) (*jwk.JWK, error) {
	priv := p.privateKeyFromScalar(raw)
	pub := elliptic.Marshal(p.curve, priv.X, priv.Y)
	j, err := p.JWKPublicKeyFromRaw(pub)
	if err != nil {
		return nil, err
	}
	j.D = b64.Encode(raw)
	return j, nil
}

func (p *nistSignature) privateKeyFromScalar(d []byte) *ecdsa.PrivateKey {
	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = p.curve
	priv.D = new(big.Int).SetBytes(d)
	priv.PublicKey.X, priv.PublicKey.Y = p.curve.ScalarBaseMult(d)
	return priv
}

func (p *nistSignature) Sign(priv, message []byte) ([]byte, error) {
	key := p.privateKeyFromScalar(priv)
	h := p.newMAC()
	h.Write(message)
	digest := h.Sum(nil)

	r, s, err := ecdsa.Sign(rand.Reader, key, digest)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "signing failed", err)
	}
	n, err := p.name.ScalarLen()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2*n)
	r.FillBytes(out[:n])
	s.FillBytes(out[n:])
	return out, nil
}

func (p *nistSignature) Verify(pub, message, signature []byte) (bool, error) {
	n, err := p.name.ScalarLen()
	if err != nil {
		return false, err
	}
	if len(signature) != 2*n {
		return false, nil
	}
	x, y := elliptic.Unmarshal(p.curve, pub)
	if x == nil {
		return false, joseerr.Invalid("JWS", "malformed EC public key")
	}
	key := &ecdsa.PublicKey{Curve: p.curve, X: x, Y: y}
	h := p.newMAC()
	h.Write(message)
	digest := h.Sum(nil)
	r := new(big.Int).SetBytes(signature[:n])
	s := new(big.Int).SetBytes(signature[n:])
	return ecdsa.Verify(key, digest, r, s), nil
}
