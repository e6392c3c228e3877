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

// Package timingmit implements the RFC 7516 §11.5 timing-attack
// mitigation: when CEK derivation fails during JWE decrypt, produce a
// random CEK of the correct length after a randomized delay rather than
// propagating the derivation error, so the subsequent (deterministic)
// AEAD authentication failure is indistinguishable in timing and shape
// from genuine ciphertext tampering (SPEC_FULL.md §4.5).
package timingmit

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// MinDelay and MaxDelay bound the randomized mitigation sleep (§4.5: a
// uniform random delay in [200, 500) ms).
const (
	MinDelay = 200 * time.Millisecond
	MaxDelay = 500 * time.Millisecond
)

// DeriveFunc is the CEK-derivation step being wrapped.
type DeriveFunc func() ([]byte, error)

// Mitigate runs derive; on success it returns the CEK unchanged. On
// failure, it sleeps a uniform-random duration in [MinDelay, MaxDelay) and
// returns cekLen random bytes instead, suppressing the underlying
// derivation error entirely (it is never returned, matching §4.5's "this
// wrapper does not rethrow"). ctx cancellation during the sleep returns
// early; per §5's cancellation clause, the indistinguishability property
// is not guaranteed once a caller has given up and canceled.
func Mitigate(ctx context.Context, cekLen int, derive DeriveFunc) ([]byte, error) {
	cek, err := derive()
	if err == nil {
		return cek, nil
	}

	delay, randErr := randomDuration(MinDelay, MaxDelay)
	if randErr != nil {
		delay = MinDelay
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}

	random := make([]byte, cekLen)
	if _, err := rand.Read(random); err != nil {
		// crypto/rand.Read failing is not recoverable; produce zero
		// bytes rather than leaking the original derivation error.
		return make([]byte, cekLen), nil
	}
	return random, nil
}

func randomDuration(min, max time.Duration) (time.Duration, error) {
	span := max - min
	n, err := rand.Int(rand.Reader, big.NewInt(int64(span)))
	if err != nil {
		return 0, err
	}
	return min + time.Duration(n.Int64()), nil
}
