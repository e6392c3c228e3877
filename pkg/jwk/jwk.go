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

// Package jwk is the JSON Web Key subset this library needs: EC and OKP
// keys only (RSA and oct are out of scope, see SPEC_FULL.md §1 Non-goals).
package jwk

import (
	"encoding/json"
	"fmt"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// KeyType is the kty parameter (RFC 7517 §4.1).
type KeyType string

const (
	KeyTypeEC  KeyType = "EC"
	KeyTypeOKP KeyType = "OKP"
)

// Curve is the crv parameter (RFC 7518 §6.2.1.1, RFC 8037 §3.1), extended
// with secp256k1 (RFC 8812) for JWS ES256K.
type Curve string

const (
	CurveP256      Curve = "P-256"
	CurveP384      Curve = "P-384"
	CurveP521      Curve = "P-521"
	CurveSecp256k1 Curve = "secp256k1"
	CurveEd25519   Curve = "Ed25519"
	CurveX25519    Curve = "X25519"
)

// ScalarLen returns the expected decoded byte length of x/y/d for the
// curve, per SPEC_FULL.md §3's invariant (32/48/66, or 32 for the OKP
// curves and secp256k1's 32-byte field).
func (c Curve) ScalarLen() (int, error) {
	switch c {
	case CurveP256, CurveSecp256k1, CurveEd25519, CurveX25519:
		return 32, nil
	case CurveP384:
		return 48, nil
	case CurveP521:
		return 66, nil
	default:
		return 0, joseerr.NotSupported("", fmt.Sprintf("unsupported curve: %s", c))
	}
}

// JWK is the EC/OKP subset of RFC 7517, including the epk shape used in
// JWE protected headers.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	D   string `json:"d,omitempty"`
	Kid string `json:"kid,omitempty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
}

// IsPrivate reports whether d is present.
func (j *JWK) IsPrivate() bool { return j.D != "" }

// PublicOnly returns a copy of j with the private scalar d removed.
func (j *JWK) PublicOnly() *JWK {
	pub := *j
	pub.D = ""
	return &pub
}

// Marshal returns the canonical JSON encoding.
func (j *JWK) Marshal() ([]byte, error) { return json.Marshal(j) }

// Unmarshal parses JSON bytes into a JWK.
func Unmarshal(data []byte) (*JWK, error) {
	var j JWK
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, joseerr.InvalidWrap("", "jwk is not valid JSON", err)
	}
	return &j, nil
}

// FromMap converts a generic decoded-JSON map (the shape headers travel in
// through this library) into a typed JWK, validating presence of kty/crv.
func FromMap(m map[string]any) (*JWK, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, joseerr.Invalid("", "jwk is not a plain mapping")
	}
	j, err := Unmarshal(b)
	if err != nil {
		return nil, err
	}
	if j.Kty == "" {
		return nil, joseerr.Invalid("", "jwk is missing kty")
	}
	if j.Crv == "" {
		return nil, joseerr.Invalid("", "jwk is missing crv")
	}
	return j, nil
}

// ToMap renders the JWK back to the generic map shape used in headers.
func (j *JWK) ToMap() (map[string]any, error) {
	b, err := j.Marshal()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeCoordinate decodes and length-checks a base64url coordinate field
// (x, y, or d) against the curve's scalar length (§3 invariant 5).
func DecodeCoordinate(label string, value string, curve Curve) ([]byte, error) {
	if value == "" {
		return nil, joseerr.Invalid("", fmt.Sprintf("jwk is missing %s", label))
	}
	raw, err := b64.Decode(label, value)
	if err != nil {
		return nil, err
	}
	want, err := curve.ScalarLen()
	if err != nil {
		return nil, err
	}
	if len(raw) != want {
		return nil, joseerr.Invalid("", fmt.Sprintf("jwk %s has wrong length for %s: got %d want %d", label, curve, len(raw), want))
	}
	return raw, nil
}
