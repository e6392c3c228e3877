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
	"github.com/higayasuo/jose-universal/pkg/curve"
	"github.com/higayasuo/jose-universal/pkg/header"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/kdf"
)

// Encrypt runs the ECDH-ES direct key agreement JWE encryption pipeline
// (SPEC_FULL.md §4.6) and returns the flattened JSON Serialization:
//
//  1. resolve the EC-Curve provider for the recipient's static public key
//  2. generate an ephemeral key pair on that curve and compute epk
//  3. compute the ECDH shared secret z against the recipient's public key
//  4. assemble the protected header (alg=ECDH-ES, enc, epk, apu?, apv?)
//     plus any caller-supplied protected/shared/per-recipient contributions
//  5. validate header disjointness and crit (§4.1)
//  6. encode the protected header
//  7. derive the CEK via Concat-KDF over z (§4.4)
//  8. AEAD-encrypt the plaintext under the CEK with the RFC 7516 §5.1 AAD
//  9. assemble and return the Flattened JWE
func (e *Encrypter) Encrypt(ctx context.Context, plaintext []byte) (flat *Flattened, err error) {
	log := logger(e.opts.Logger)
	start := time.Now()
	defer func() {
		if e.opts.Metrics != nil {
			e.opts.Metrics.Observe(metrics.OpEncrypt, time.Since(start), err)
			if err != nil {
				e.opts.Metrics.RecordFailure(metrics.OpEncrypt, failureCategory(err))
			}
		}
		if err != nil {
			log.Warn(ctx, "encrypt failed", "error", err)
			return
		}
		log.Debug(ctx, "encrypt succeeded", "enc", e.enc)
	}()

	if e.recipient == nil {
		return nil, joseerr.Invalid("JWE", "recipient public key is required")
	}
	provider, err := curve.ResolveECDH(e.recipient.Crv)
	if err != nil {
		return nil, err
	}
	recipientPub, err := provider.RawPublicKeyFromJWK(e.recipient)
	if err != nil {
		return nil, err
	}

	ephemeralPriv, epk, err := newEphemeral(provider)
	if err != nil {
		return nil, err
	}
	z, err := provider.SharedSecret(ephemeralPriv, recipientPub)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWE", "failed to compute ECDH shared secret", err)
	}

	epkObj, err := epkMap(epk)
	if err != nil {
		return nil, err
	}
	algHeader := header.Map{"alg": "ECDH-ES", "enc": e.enc, "epk": epkObj}
	if e.keyMgmtSet {
		if len(e.keyMgmt.PartyUInfo) > 0 {
			algHeader["apu"] = b64.Encode(e.keyMgmt.PartyUInfo)
		}
		if len(e.keyMgmt.PartyVInfo) > 0 {
			algHeader["apv"] = b64.Encode(e.keyMgmt.PartyVInfo)
		}
	}

	protected := header.Map{}
	for k, v := range algHeader {
		protected[k] = v
	}
	for k, v := range e.protected {
		protected[k] = v
	}

	recognized := header.Defaults("JWE")
	for k, v := range e.opts.Crit {
		recognized[k] = v
	}
	merged, err := header.Merge("JWE", protected, e.shared, e.perRecipient)
	if err != nil {
		return nil, err
	}
	if _, err := header.ValidateCrit("JWE", merged, protected, recognized); err != nil {
		return nil, err
	}

	encodedProtected, err := header.EncodeProtected("JWE", protected)
	if err != nil {
		return nil, err
	}

	cek, err := kdf.DeriveCEK(z, e.enc, e.keyMgmt.PartyUInfo, e.keyMgmt.PartyVInfo)
	if err != nil {
		return nil, err
	}

	aeadProvider := aead.NewDefault()
	if !aeadProvider.IsEnc(e.enc) {
		return nil, joseerr.NotSupported("JWE", "unsupported content encryption algorithm: "+e.enc)
	}
	result, err := aeadProvider.Encrypt(aead.Params{
		Enc:       e.enc,
		Plaintext: plaintext,
		CEK:       cek,
		AAD:       aeadAAD(encodedProtected, e.aad),
	})
	if err != nil {
		return nil, err
	}

	flat = &Flattened{
		Protected:  encodedProtected,
		IV:         b64.Encode(result.IV),
		Ciphertext: b64.Encode(result.Ciphertext),
		Tag:        b64.Encode(result.Tag),
	}
	if len(e.aad) > 0 {
		flat.AAD = b64.Encode(e.aad)
	}
	if len(e.shared) > 0 {
		flat.Unprotected = map[string]any(e.shared)
	}
	if len(e.perRecipient) > 0 {
		flat.Header = map[string]any(e.perRecipient)
	}
	return flat, nil
}
