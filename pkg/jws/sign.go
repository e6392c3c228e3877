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
	"time"

	"github.com/higayasuo/jose-universal/internal/metrics"
	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/curve"
	"github.com/higayasuo/jose-universal/pkg/header"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
	"github.com/higayasuo/jose-universal/pkg/jwk"
)

// Signer builds a single flattened JWS. Like jwe.Encrypter, each header
// position setter may be called at most once (§4.9's builder contract);
// unlike jwe.Encrypter there is no AAD-style last-write-wins exception.
type Signer struct {
	signerKey    *jwk.JWK
	protected    header.Map
	protectedSet bool
	unprotected  header.Map
	unprotSet    bool
	opts         SignOptions
}

// NewSigner starts a builder for signerPrivateJWK, the signer's static
// EC/OKP private key. The signature algorithm is implied by the key's
// curve (§4.9 step 6) unless the caller's protected header names "alg"
// explicitly, in which case it must agree.
func NewSigner(signerPrivateJWK *jwk.JWK, opts SignOptions) *Signer {
	return &Signer{signerKey: signerPrivateJWK, opts: opts}
}

// SetProtectedHeader sets the integrity-protected header contribution. May
// be called at most once.
func (s *Signer) SetProtectedHeader(h map[string]any) error {
	if s.protectedSet {
		return joseerr.Invalid("JWS", "protectedHeader was already set on this builder")
	}
	s.protected = header.Map(h)
	s.protectedSet = true
	return nil
}

// SetUnprotectedHeader sets the unprotected header contribution (the
// flattened JWS "header" member). May be called at most once.
func (s *Signer) SetUnprotectedHeader(h map[string]any) error {
	if s.unprotSet {
		return joseerr.Invalid("JWS", "unprotectedHeader was already set on this builder")
	}
	s.unprotected = header.Map(h)
	s.unprotSet = true
	return nil
}

// Sign runs the pipeline (SPEC_FULL.md §4.9):
//
//  1. resolve the SignatureProvider for the signer key's curve
//  2. set alg in the protected header contribution if absent, else check
//     agreement with the key's curve
//  3. merge protected + unprotected (2 positions; no shared-unprotected
//     position exists for JWS)
//  4. if b64 is present and false, it MUST be in the protected header and
//     MUST be listed in crit (RFC 7797 §3)
//  5. validate crit
//  6. encode the protected header
//  7. build the signing input per b64
//  8. sign and assemble the Flattened JWS
func (s *Signer) Sign(ctx context.Context, payload []byte) (flat *Flattened, err error) {
	log := logger(s.opts.Logger)
	start := time.Now()
	defer func() {
		if s.opts.Metrics != nil {
			s.opts.Metrics.Observe(metrics.OpSign, time.Since(start), err)
			if err != nil {
				s.opts.Metrics.RecordFailure(metrics.OpSign, failureCategory(err))
			}
		}
		if err != nil {
			log.Warn(ctx, "sign failed", "error", err)
			return
		}
		log.Debug(ctx, "sign succeeded")
	}()

	if s.signerKey == nil {
		return nil, joseerr.Invalid("JWS", "signer private key is required")
	}
	provider, err := curve.ResolveSignature(s.signerKey.Crv)
	if err != nil {
		return nil, err
	}
	priv, err := provider.RawPrivateKeyFromJWK(s.signerKey)
	if err != nil {
		return nil, err
	}

	protected := header.Map{}
	for k, v := range s.protected {
		protected[k] = v
	}
	if alg, present := protected["alg"]; present {
		if alg != provider.AlgorithmName() {
			return nil, joseerr.Invalid("JWS", "alg header parameter does not match the signer key's curve")
		}
	} else {
		protected["alg"] = provider.AlgorithmName()
	}

	b64Enabled := true
	if raw, present := protected["b64"]; present {
		b, ok := raw.(bool)
		if !ok {
			return nil, joseerr.Invalid("JWS", "b64 header parameter must be a boolean")
		}
		b64Enabled = b
	}
	if !b64Enabled {
		if !containsCrit(protected, "b64") {
			return nil, joseerr.Invalid("JWS", "b64 header parameter requires \"b64\" to be listed in crit")
		}
	}

	recognized := header.Defaults("JWS")
	for k, v := range s.opts.Crit {
		recognized[k] = v
	}
	merged, err := header.Merge("JWS", protected, s.unprotected)
	if err != nil {
		return nil, err
	}
	if _, err := header.ValidateCrit("JWS", merged, protected, recognized); err != nil {
		return nil, err
	}

	encodedProtected, err := header.EncodeProtected("JWS", protected)
	if err != nil {
		return nil, err
	}

	input := signingInput(encodedProtected, payload, b64Enabled)
	sig, err := provider.Sign(priv, input)
	if err != nil {
		return nil, joseerr.InvalidWrap("JWS", "signing failed", err)
	}

	flat = &Flattened{
		Protected: encodedProtected,
		Signature: b64.Encode(sig),
	}
	if b64Enabled {
		flat.Payload = b64.Encode(payload)
	} else {
		flat.Payload = string(payload)
	}
	if len(s.unprotected) > 0 {
		flat.Header = map[string]any(s.unprotected)
	}
	return flat, nil
}

func containsCrit(protected header.Map, name string) bool {
	raw, ok := protected["crit"]
	if !ok {
		return false
	}
	list, ok := raw.([]any)
	if !ok {
		return false
	}
	for _, v := range list {
		if s, ok := v.(string); ok && s == name {
			return true
		}
	}
	return false
}
