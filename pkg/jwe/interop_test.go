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
	"context"
	"testing"

	gojose "github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/require"

	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// TestCompactInteropWithGoJose cross-checks that a compact JWE this
// package produces is byte-for-byte parseable and decryptable by
// go-jose, an independent, widely used JOSE implementation. It is not a
// correctness test of this package's own crypto (the round-trip tests
// already cover that) but a wire-format compatibility guarantee: nothing
// here is a private dialect of RFC 7516.
func TestCompactInteropWithGoJose(t *testing.T) {
	pub, priv := generateRecipient(t, jwk.CurveP256)
	plaintext := []byte("the eagle flies at midnight")

	flat, err := NewEncrypter("A256GCM", pub, EncryptOptions{}).Encrypt(context.Background(), plaintext)
	require.NoError(t, err)

	compact, err := flat.ToCompact()
	require.NoError(t, err)

	privJSON, err := priv.Marshal()
	require.NoError(t, err)
	var goJoseKey gojose.JSONWebKey
	require.NoError(t, goJoseKey.UnmarshalJSON(privJSON))

	parsed, err := gojose.ParseEncrypted(
		compact,
		[]gojose.KeyAlgorithm{gojose.ECDH_ES},
		[]gojose.ContentEncryption{gojose.A256GCM},
	)
	require.NoError(t, err)

	decrypted, err := parsed.Decrypt(goJoseKey.Key)
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}
