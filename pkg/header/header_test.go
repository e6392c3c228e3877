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

package header

import "testing"

func TestMergeRejectsDuplicateParameterAcrossPositions(t *testing.T) {
	protected := Map{"alg": "ECDH-ES"}
	shared := Map{"alg": "duplicate"}

	if _, err := Merge("JWE", protected, shared); err == nil {
		t.Fatal("expected error for parameter present in more than one position")
	}
}

func TestMergeRejectsEmptyNonNilProtected(t *testing.T) {
	if _, err := Merge("JWE", Map{}); err == nil {
		t.Fatal("expected error for non-nil but empty protected header")
	}
}

func TestMergeRejectsZip(t *testing.T) {
	if _, err := Merge("JWE", Map{"zip": "DEF"}); err == nil {
		t.Fatal("expected zip header parameter to be rejected as not supported")
	}
}

func TestMergeAllowsNilProtected(t *testing.T) {
	merged, err := Merge("JWS", nil, Map{"kid": "k1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged["kid"] != "k1" {
		t.Fatalf("expected merged header to contain kid, got %v", merged)
	}
}

func TestValidateCritRequiresIntegrityProtection(t *testing.T) {
	protected := Map{}
	merged := Map{"crit": []any{"exp"}, "exp": 123}

	_, err := ValidateCrit("JWE", merged, protected, map[string]CritFlag{"exp": {IntegrityProtected: true}})
	if err == nil {
		t.Fatal("expected error: crit itself must be present in the protected header")
	}
}

func TestValidateCritRejectsUnrecognizedName(t *testing.T) {
	protected := Map{"crit": []any{"exp"}, "exp": 123}
	merged := Map{"crit": []any{"exp"}, "exp": 123}

	_, err := ValidateCrit("JWE", merged, protected, map[string]CritFlag{})
	if err == nil {
		t.Fatal("expected error for unrecognized crit name")
	}
}

func TestValidateCritAcceptsRecognizedIntegrityProtected(t *testing.T) {
	protected := Map{"crit": []any{"b64"}, "b64": false}
	merged := Map{"crit": []any{"b64"}, "b64": false}

	result, err := ValidateCrit("JWS", merged, protected, Defaults("JWS"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result["b64"] {
		t.Fatal("expected b64 to be recorded as recognized and present")
	}
}

func TestValidateCritAbsentCritIsOK(t *testing.T) {
	result, err := ValidateCrit("JWE", Map{}, Map{}, Defaults("JWE"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected empty result when crit is absent, got %v", result)
	}
}

func TestEncodeDecodeProtectedRoundTrip(t *testing.T) {
	h := Map{"alg": "ECDH-ES", "enc": "A256GCM"}
	encoded, err := EncodeProtected("JWE", h)
	if err != nil {
		t.Fatalf("EncodeProtected failed: %v", err)
	}

	decoded, err := DecodeProtected("JWE", encoded)
	if err != nil {
		t.Fatalf("DecodeProtected failed: %v", err)
	}
	if decoded["alg"] != "ECDH-ES" || decoded["enc"] != "A256GCM" {
		t.Fatalf("round trip mismatch: got %v", decoded)
	}
}

func TestDecodeProtectedRejectsEmptyObject(t *testing.T) {
	encoded, _ := EncodeProtected("JWE", Map{})
	if _, err := DecodeProtected("JWE", encoded); err == nil {
		t.Fatal("expected error for empty protected header")
	}
}
