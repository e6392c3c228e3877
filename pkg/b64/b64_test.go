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

package b64

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := []byte("hello, world! \x00\x01\xff")
	encoded := Encode(want)

	got, err := Decode("payload", encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch: got %q want %q", got, want)
	}
}

func TestRequiredMissing(t *testing.T) {
	if _, err := Required(map[string]any{}, "iv"); err == nil {
		t.Fatal("expected error for missing field")
	}
}

func TestRequiredWrongType(t *testing.T) {
	if _, err := Required(map[string]any{"iv": 42}, "iv"); err == nil {
		t.Fatal("expected error for non-string field")
	}
}

func TestOptionalAbsentReturnsNoError(t *testing.T) {
	b, ok, err := Optional(map[string]any{}, "apu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for absent field")
	}
	if b != nil {
		t.Fatalf("expected nil bytes, got %v", b)
	}
}

func TestOptionalPresentButUndecodable(t *testing.T) {
	if _, _, err := Optional(map[string]any{"apu": "not base64url!!"}, "apu"); err == nil {
		t.Fatal("expected error for undecodable value")
	}
}
