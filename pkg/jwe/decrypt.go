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
	"time"

	"github.com/higayasuo/jose-universal/internal/metrics"
	"github.com/higayasuo/jose-universal/pkg/aead"
	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/header"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
	"github.com/higayasuo/jose-universal/pkg/kdf"
	"github.com/higayasuo/jose-universal/pkg/timingmit"
)

// defaultKeyManagementAlgorithms is the allow-list used when
// DecryptOptions.KeyManagementAlgorithms is empty. PBES2* is listed
// defensively even though this module never registers a PBES2 provider,
// preserving defense-in-depth against a future alg-confusion regression
// (SPEC_FULL.md §9 Open Question 1).
var defaultKeyManagementAlgorithms = map[string]bool{
	"ECDH-ES":          true,
	"PBES2-HS256+A128KW": false,
	"PBES2-HS384+A192KW": false,
	"PBES2-HS512+A256KW": false,
}

// Decrypter runs the flattened JWE decryption pipeline (SPEC_FULL.md §4.7)
// for a single recipient static private key.
type Decrypter struct {
	recipientPrivate *jwk.JWK
	opts             DecryptOptions
}

// NewDecrypter constructs a Decrypter bound to the recipient's static
// EC/OKP private key.
func NewDecrypter(recipientPrivateJWK *jwk.JWK, opts DecryptOptions) *Decrypter {
	return &Decrypter{recipientPrivate: recipientPrivateJWK, opts: opts}
}

// Decrypt runs the full pipeline:
//
//  1. decode the protected header and merge it with the unprotected
//     positions, enforcing disjointness (§4.1)
//  2. validate crit
//  3. validate alg is an allowed key-management algorithm (ECDH-ES only)
//  4. validate enc is a supported, allowed content-encryption algorithm
//  5. extract epk, resolve its EC-Curve provider, compute the ECDH shared
//     secret against the recipient's static private key, and derive the
//     CEK — all wrapped in the §4.5 timing-attack mitigation, since this is
//     the one step whose failure must not be observable
//  6. AEAD-decrypt the ciphertext under the CEK with the §5.2 AAD
//  7. on any post-validation failure, return one uniform collapsed error
func (d *Decrypter) Decrypt(ctx context.Context, flat *Flattened) (result *DecryptResult, err error) {
	log := logger(d.opts.Logger)
	start := time.Now()
	defer func() {
		if d.opts.Metrics != nil {
			d.opts.Metrics.Observe(metrics.OpDecrypt, time.Since(start), err)
			if err != nil {
				d.opts.Metrics.RecordFailure(metrics.OpDecrypt, failureCategory(err))
			}
		}
		if err != nil {
			log.Warn(ctx, "decrypt failed", "error", err)
			return
		}
		log.Debug(ctx, "decrypt succeeded")
	}()

	if flat == nil || flat.Protected == "" {
		return nil, joseerr.Invalid("JWE", "protected header is missing")
	}
	protected, err := header.DecodeProtected("JWE", flat.Protected)
	if err != nil {
		return nil, err
	}
	shared := header.Map(flat.Unprotected)
	perRecipient := header.Map(flat.Header)
	merged, err := header.Merge("JWE", protected, shared, perRecipient)
	if err != nil {
		return nil, err
	}

	recognized := header.Defaults("JWE")
	for k, v := range d.opts.Crit {
		recognized[k] = v
	}
	if _, err := header.ValidateCrit("JWE", merged, protected, recognized); err != nil {
		return nil, err
	}

	alg, _ := merged["alg"].(string)
	if !d.algAllowed(alg) {
		return nil, joseerr.NotSupported("JWE", "unsupported or disallowed key management algorithm: "+alg)
	}
	enc, _ := merged["enc"].(string)
	aeadProvider := aead.NewDefault()
	if !d.encAllowed(enc) || !aeadProvider.IsEnc(enc) {
		return nil, joseerr.NotSupported("JWE", "unsupported or disallowed content encryption algorithm: "+enc)
	}

	iv, err := b64.Required(map[string]any{"iv": flat.IV}, "iv")
	if err != nil {
		return nil, err
	}
	ciphertext, err := b64.Required(map[string]any{"ciphertext": flat.Ciphertext}, "ciphertext")
	if err != nil {
		return nil, err
	}
	tag, err := b64.Required(map[string]any{"tag": flat.Tag}, "tag")
	if err != nil {
		return nil, err
	}
	var aadValue []byte
	if flat.AAD != "" {
		aadValue, err = b64.Decode("aad", flat.AAD)
		if err != nil {
			return nil, err
		}
	}

	cekBitLen, ok := kdf.BitLengthForEnc[enc]
	if !ok {
		return nil, joseerr.NotSupported("JWE", "unsupported content encryption algorithm: "+enc)
	}
	apu, _, _ := b64.Optional(merged, "apu")
	apv, _, _ := b64.Optional(merged, "apv")

	cek, err := timingmit.Mitigate(ctx, cekBitLen/8, func() ([]byte, error) {
		provider, epkPub, err := epkFromHeader(merged)
		if err != nil {
			return nil, err
		}
		recipientPriv, err := provider.RawPrivateKeyFromJWK(d.recipientPrivate)
		if err != nil {
			return nil, err
		}
		z, err := provider.SharedSecret(recipientPriv, epkPub)
		if err != nil {
			return nil, err
		}
		return kdf.DeriveCEK(z, enc, apu, apv)
	})
	if err != nil {
		return nil, err
	}

	plaintext, err := aeadProvider.Decrypt(aead.DecryptParams{
		Enc:        enc,
		Ciphertext: ciphertext,
		IV:         iv,
		Tag:        tag,
		CEK:        cek,
		AAD:        aeadAAD(flat.Protected, aadValue),
	})
	if err != nil {
		return nil, joseerr.Collapse("JWE", "decryption failed", err)
	}

	return &DecryptResult{
		Plaintext:                   plaintext,
		ProtectedHeader:             protected,
		AdditionalAuthenticatedData: aadValue,
		SharedUnprotectedHeader:     shared,
		UnprotectedHeader:           perRecipient,
	}, nil
}

func (d *Decrypter) algAllowed(alg string) bool {
	allowed := d.opts.KeyManagementAlgorithms
	if len(allowed) == 0 {
		return defaultKeyManagementAlgorithms[alg]
	}
	for _, a := range allowed {
		if a == alg {
			return true
		}
	}
	return false
}

func (d *Decrypter) encAllowed(enc string) bool {
	allowed := d.opts.ContentEncryptionAlgorithms
	if len(allowed) == 0 {
		_, ok := kdf.BitLengthForEnc[enc]
		return ok
	}
	for _, e := range allowed {
		if e == enc {
			return true
		}
	}
	return false
}
