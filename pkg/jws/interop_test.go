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

	gojose "github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/require"

	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// TestCompactInteropWithGoJose cross-checks that a compact JWS this
// package produces verifies under go-jose, confirming the ES256 JOSE
// signature encoding (fixed-width R||S, not ASN.1 DER) and header
// layout match an independent implementation's expectations rather than
// a private convention.
func TestCompactInteropWithGoJose(t *testing.T) {
	pub, priv := generateSigner(t, jwk.CurveP256)
	payload := []byte(`{"sub":"alice","iss":"example"}`)

	flat, err := NewSigner(priv, SignOptions{}).Sign(context.Background(), payload)
	require.NoError(t, err)

	compact, err := flat.ToCompact()
	require.NoError(t, err)

	pubJSON, err := pub.Marshal()
	require.NoError(t, err)
	var goJoseKey gojose.JSONWebKey
	require.NoError(t, goJoseKey.UnmarshalJSON(pubJSON))

	parsed, err := gojose.ParseSigned(compact, []gojose.SignatureAlgorithm{gojose.ES256})
	require.NoError(t, err)

	verified, err := parsed.Verify(goJoseKey.Key)
	require.NoError(t, err)
	require.Equal(t, payload, verified)
}
