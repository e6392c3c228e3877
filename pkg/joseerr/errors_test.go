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

package joseerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NotSupported("JWE", "bad alg"))

	if !IsKind(wrapped, KindNotSupported) {
		t.Fatal("expected wrapped error to be recognized as KindNotSupported")
	}
	if IsKind(wrapped, KindInvalid) {
		t.Fatal("did not expect wrapped error to be KindInvalid")
	}
}

func TestErrorIs(t *testing.T) {
	a := Invalid("JWE", "one reason")
	b := Invalid("JWS", "a different reason")

	if !errors.Is(a, b) {
		t.Fatal("expected two *Error values of the same Kind to satisfy errors.Is")
	}
	if errors.Is(a, VerificationFailed("JWS", "nope")) {
		t.Fatal("did not expect different Kinds to satisfy errors.Is")
	}
}

func TestCollapseRetainsCauseOnlyForDiagnostics(t *testing.T) {
	cause := errors.New("authentication tag mismatch")
	collapsed := Collapse("JWE", "decryption failed", cause)

	if collapsed.Kind != KindInvalid {
		t.Fatalf("expected Collapse to produce KindInvalid, got %v", collapsed.Kind)
	}
	if collapsed.Error() != "JWE invalid: decryption failed" {
		t.Fatalf("unexpected uniform message: %q", collapsed.Error())
	}
	if !errors.Is(collapsed, cause) {
		t.Fatal("expected Unwrap to expose the original cause for diagnostics")
	}
}
