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

// Verifier checks a single flattened JWS against a static EC/OKP public
// key. Unlike Decrypt, a verification failure is never collapsed into the
// generic invalid-input error: it is its own distinct, clearly-labeled
// joseerr.KindVerificationFailed error (SPEC_FULL.md §7 "the one exception
// to uniform error collapsing").
type Verifier struct {
	signerPublic *jwk.JWK
	opts         VerifyOptions
}

// NewVerifier constructs a Verifier bound to the signer's static public key.
func NewVerifier(signerPublicJWK *jwk.JWK, opts VerifyOptions) *Verifier {
	return &Verifier{signerPublic: signerPublicJWK, opts: opts}
}

// Verify runs the pipeline (SPEC_FULL.md §4.10):
//
//  1. decode the protected header and merge it with the unprotected
//     header, enforcing disjointness
//  2. validate crit
//  3. determine b64: the protected header's value when "b64" is listed
//     in crit, otherwise true
//  4. resolve alg, confirming it names a provider on the expected curve
//     and (if configured) appears in the caller's algorithm allow-list
//  5. recompute the signing input and verify the signature
//  6. on success, return the recovered payload
func (v *Verifier) Verify(ctx context.Context, flat *Flattened) (result *VerifyResult, err error) {
	log := logger(v.opts.Logger)
	start := time.Now()
	defer func() {
		if v.opts.Metrics != nil {
			v.opts.Metrics.Observe(metrics.OpVerify, time.Since(start), err)
			if err != nil {
				v.opts.Metrics.RecordFailure(metrics.OpVerify, failureCategory(err))
			}
		}
		if err != nil {
			log.Warn(ctx, "verify failed", "error", err)
			return
		}
		log.Debug(ctx, "verify succeeded")
	}()

	if v.signerPublic == nil {
		return nil, joseerr.Invalid("JWS", "signer public key is required")
	}
	if flat == nil || flat.Protected == "" {
		return nil, joseerr.Invalid("JWS", "protected header is missing")
	}
	protected, err := header.DecodeProtected("JWS", flat.Protected)
	if err != nil {
		return nil, err
	}
	unprotected := header.Map(flat.Header)
	merged, err := header.Merge("JWS", protected, unprotected)
	if err != nil {
		return nil, err
	}

	recognized := header.Defaults("JWS")
	for k, flag := range v.opts.Crit {
		recognized[k] = flag
	}
	critNames, err := header.ValidateCrit("JWS", merged, protected, recognized)
	if err != nil {
		return nil, err
	}

	b64Enabled := true
	if critNames["b64"] {
		if raw, present := merged["b64"]; present {
			b, ok := raw.(bool)
			if !ok {
				return nil, joseerr.Invalid("JWS", "b64 header parameter must be a boolean")
			}
			b64Enabled = b
		}
	}

	alg, _ := merged["alg"].(string)
	if !v.algAllowed(alg) {
		return nil, joseerr.NotSupported("JWS", "unsupported or disallowed signature algorithm: "+alg)
	}
	provider, err := curve.ResolveSignatureByAlg(alg)
	if err != nil {
		return nil, err
	}
	if provider.CurveName() != jwk.Curve(v.signerPublic.Crv) {
		return nil, joseerr.Invalid("JWS", "alg header parameter does not match the signer key's curve")
	}
	pub, err := provider.RawPublicKeyFromJWK(v.signerPublic)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if b64Enabled {
		payload, err = b64.Decode("payload", flat.Payload)
		if err != nil {
			return nil, err
		}
	} else {
		payload = []byte(flat.Payload)
	}
	sig, err := b64.Decode("signature", flat.Signature)
	if err != nil {
		return nil, err
	}

	input := signingInput(flat.Protected, payload, b64Enabled)
	ok, err := provider.Verify(pub, input, sig)
	if err != nil || !ok {
		return nil, joseerr.VerificationFailed("JWS", "signature verification failed")
	}

	return &VerifyResult{
		Payload:           payload,
		ProtectedHeader:   protected,
		UnprotectedHeader: unprotected,
	}, nil
}

func (v *Verifier) algAllowed(alg string) bool {
	if len(v.opts.Algorithms) == 0 {
		return alg != ""
	}
	for _, a := range v.opts.Algorithms {
		if a == alg {
			return true
		}
	}
	return false
}
