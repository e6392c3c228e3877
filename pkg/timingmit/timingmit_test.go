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

package timingmit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMitigateReturnsDerivedCEKOnSuccess(t *testing.T) {
	want := []byte{1, 2, 3, 4}
	got, err := Mitigate(context.Background(), len(want), func() ([]byte, error) {
		return want, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestMitigateSuppressesDerivationError(t *testing.T) {
	start := time.Now()
	got, err := Mitigate(context.Background(), 32, func() ([]byte, error) {
		return nil, errors.New("derivation failed")
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected the derivation error to be suppressed, got %v", err)
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 random bytes, got %d", len(got))
	}
	if elapsed < MinDelay {
		t.Fatalf("expected mitigation delay of at least %v, got %v", MinDelay, elapsed)
	}
}

func TestMitigateRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := Mitigate(ctx, 16, func() ([]byte, error) {
		return nil, errors.New("derivation failed")
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed >= MinDelay {
		t.Fatalf("expected canceled context to return before the mitigation delay, took %v", elapsed)
	}
}
