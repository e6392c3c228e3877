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

package jwk

import "testing"

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	j := &JWK{Kty: "EC", Crv: "P-256", X: "eA", Y: "eQ", Kid: "k1"}
	raw, err := j.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Kty != j.Kty || got.Crv != j.Crv || got.X != j.X || got.Kid != j.Kid {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, j)
	}
}

func TestIsPrivate(t *testing.T) {
	pub := &JWK{Kty: "EC", Crv: "P-256"}
	if pub.IsPrivate() {
		t.Fatal("expected key without d to report IsPrivate() == false")
	}
	priv := &JWK{Kty: "EC", Crv: "P-256", D: "ZA"}
	if !priv.IsPrivate() {
		t.Fatal("expected key with d to report IsPrivate() == true")
	}
}

func TestFromMapRequiresKtyAndCrv(t *testing.T) {
	if _, err := FromMap(map[string]any{"crv": "P-256"}); err == nil {
		t.Fatal("expected error for missing kty")
	}
	if _, err := FromMap(map[string]any{"kty": "EC"}); err == nil {
		t.Fatal("expected error for missing crv")
	}
}

func TestScalarLen(t *testing.T) {
	cases := map[Curve]int{
		CurveP256: 32, CurveP384: 48, CurveP521: 66,
		CurveSecp256k1: 32, CurveEd25519: 32, CurveX25519: 32,
	}
	for crv, want := range cases {
		got, err := crv.ScalarLen()
		if err != nil {
			t.Fatalf("%s: ScalarLen failed: %v", crv, err)
		}
		if got != want {
			t.Errorf("%s: got %d want %d", crv, got, want)
		}
	}
}

func TestDecodeCoordinateRejectsWrongLength(t *testing.T) {
	// "AA" decodes to a single zero byte, far short of P-256's 32.
	if _, err := DecodeCoordinate("x", "AA", CurveP256); err == nil {
		t.Fatal("expected error for coordinate of the wrong length")
	}
}
