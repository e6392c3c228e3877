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

package jwe

import (
	"github.com/higayasuo/jose-universal/pkg/curve"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// newEphemeral generates a fresh ephemeral key pair on the recipient's
// curve and returns its raw private scalar alongside the epk public JWK to
// place in the protected header (RFC 7518 §4.6.1.1).
func newEphemeral(provider curve.ECDHProvider) (priv []byte, epk *jwk.JWK, err error) {
	priv, err = provider.RandomPrivateKey()
	if err != nil {
		return nil, nil, joseerr.InvalidWrap("JWE", "failed to generate ephemeral key", err)
	}
	pub, err := provider.PublicKeyFromPrivate(priv)
	if err != nil {
		return nil, nil, joseerr.InvalidWrap("JWE", "failed to derive ephemeral public key", err)
	}
	epkJWK, err := provider.JWKPublicKeyFromRaw(pub)
	if err != nil {
		return nil, nil, err
	}
	return priv, epkJWK, nil
}

// epkMap renders the ephemeral public JWK into the plain-object shape the
// epk header parameter travels in (RFC 7518 §4.6.1.1).
func epkMap(epk *jwk.JWK) (map[string]any, error) {
	return epk.ToMap()
}

// epkFromHeader extracts and validates the epk header parameter, resolving
// its EC-Curve provider and raw public key bytes.
func epkFromHeader(merged map[string]any) (curve.ECDHProvider, []byte, error) {
	raw, ok := merged["epk"]
	if !ok {
		return nil, nil, joseerr.Invalid("JWE", "epk header parameter is missing")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, joseerr.Invalid("JWE", "epk header parameter must be a plain object")
	}
	epk, err := jwk.FromMap(m)
	if err != nil {
		return nil, nil, err
	}
	if epk.IsPrivate() {
		return nil, nil, joseerr.Invalid("JWE", "epk header parameter must not contain a private key")
	}
	provider, err := curve.ResolveECDH(epk.Crv)
	if err != nil {
		return nil, nil, err
	}
	pub, err := provider.RawPublicKeyFromJWK(epk)
	if err != nil {
		return nil, nil, err
	}
	return provider, pub, nil
}
