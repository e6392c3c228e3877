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

// Package jose provides a kid-scoped convenience layer over pkg/jwe and
// pkg/jws: a KeySet that resolves the right key automatically from a JOSE
// container's kid header parameter, adapted from
// pkg/encoding/jwe/keychain.go's KeychainEncrypter/KeychainDecrypter
// (SPEC_FULL.md §12, supplemented feature). It is a thin convenience on top
// of the core container types, not a third container format: callers who
// already know which key applies can use pkg/jwe and pkg/jws directly.
package jose

import (
	"context"
	"encoding/json"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwe"
	"github.com/higayasuo/jose-universal/pkg/jwk"
	"github.com/higayasuo/jose-universal/pkg/jws"
)

// KeySet resolves EC/OKP keys by kid. It holds no cryptographic state
// itself; its lookup functions are called fresh on every operation, matching the
// teacher's keychain pattern of a user-supplied lookup function rather
// than an in-memory cache (keys may live in a backing keystore that
// rotates independently of this process).
type KeySet struct {
	// GetEncryptionKey returns the recipient's static public JWK for kid,
	// used by EncryptTo and by DecryptAuto's key lookup on the decrypt
	// side (where the caller's own private key is returned instead).
	GetEncryptionKey func(kid string) (*jwk.JWK, error)
	// GetSigningKey returns the signer's static key JWK for kid: a public
	// key for VerifyAuto, a private key for SignAs.
	GetSigningKey func(kid string) (*jwk.JWK, error)
}

// EncryptTo encrypts plaintext to the recipient identified by kid, adding
// "kid": kid to the protected header so the receiving side can resolve the
// matching private key automatically via DecryptAuto.
func (k *KeySet) EncryptTo(ctx context.Context, enc, kid string, plaintext []byte, opts jwe.EncryptOptions) (*jwe.Flattened, error) {
	if k.GetEncryptionKey == nil {
		return nil, joseerr.Invalid("JWE", "KeySet has no GetEncryptionKey lookup configured")
	}
	recipient, err := k.GetEncryptionKey(kid)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWE", "failed to resolve encryption key for kid "+kid, err)
	}
	encrypter := jwe.NewEncrypter(enc, recipient, opts)
	if err := encrypter.SetProtectedHeader(map[string]any{"kid": kid}); err != nil {
		return nil, err
	}
	return encrypter.Encrypt(ctx, plaintext)
}

// DecryptAuto extracts kid from flat's protected header, resolves the
// matching static private key via GetEncryptionKey, and decrypts.
func (k *KeySet) DecryptAuto(ctx context.Context, flat *jwe.Flattened, opts jwe.DecryptOptions) (*jwe.DecryptResult, error) {
	if k.GetEncryptionKey == nil {
		return nil, joseerr.Invalid("JWE", "KeySet has no GetEncryptionKey lookup configured")
	}
	kid, err := extractKID("JWE", flat.Protected)
	if err != nil {
		return nil, err
	}
	recipientPrivate, err := k.GetEncryptionKey(kid)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWE", "failed to resolve decryption key for kid "+kid, err)
	}
	return jwe.NewDecrypter(recipientPrivate, opts).Decrypt(ctx, flat)
}

// SignAs signs payload as kid, adding "kid": kid to the protected header so
// the verifying side can resolve the matching public key via VerifyAuto.
func (k *KeySet) SignAs(ctx context.Context, kid string, payload []byte, opts jws.SignOptions) (*jws.Flattened, error) {
	if k.GetSigningKey == nil {
		return nil, joseerr.Invalid("JWS", "KeySet has no GetSigningKey lookup configured")
	}
	signerKey, err := k.GetSigningKey(kid)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "failed to resolve signing key for kid "+kid, err)
	}
	signer := jws.NewSigner(signerKey, opts)
	if err := signer.SetProtectedHeader(map[string]any{"kid": kid}); err != nil {
		return nil, err
	}
	return signer.Sign(ctx, payload)
}

// VerifyAuto extracts kid from flat's protected header, resolves the
// matching static public key via GetSigningKey, and verifies.
func (k *KeySet) VerifyAuto(ctx context.Context, flat *jws.Flattened, opts jws.VerifyOptions) (*jws.VerifyResult, error) {
	if k.GetSigningKey == nil {
		return nil, joseerr.Invalid("JWS", "KeySet has no GetSigningKey lookup configured")
	}
	kid, err := extractKID("JWS", flat.Protected)
	if err != nil {
		return nil, err
	}
	signerPublic, err := k.GetSigningKey(kid)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "failed to resolve verification key for kid "+kid, err)
	}
	return jws.NewVerifier(signerPublic, opts).Verify(ctx, flat)
}

// extractKID decodes a protected header segment just far enough to read
// its kid member, mirroring pkg/encoding/jwe/keychain.go's ExtractKID.
func extractKID(domain, encodedProtected string) (string, error) {
	raw, err := b64.Decode("protected", encodedProtected)
	if err != nil {
		return "", err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", joseerr.InvalidWrap(domain, "protected header is not a JSON object", err)
	}
	kid, _ := m["kid"].(string)
	if kid == "" {
		return "", joseerr.Invalid(domain, "protected header does not contain kid")
	}
	return kid, nil
}
