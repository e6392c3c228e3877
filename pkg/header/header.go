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

// Package header implements the JOSE header merge and crit (Critical
// Header Parameter, RFC 7515 §4.1.11 / RFC 7516 §4.1.13) validation rules
// shared by the jwe and jws packages (SPEC_FULL.md §4.1).
package header

import (
	"encoding/json"
	"fmt"

	"github.com/higayasuo/jose-universal/pkg/b64"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// Map is a JOSE header position: protected, shared-unprotected, or
// per-recipient unprotected.
type Map map[string]any

// CritFlag records whether a recognized critical parameter must be
// integrity-protected (i.e. must live in the protected header).
type CritFlag struct {
	IntegrityProtected bool
}

// Defaults returns the library's default recognized crit set for the given
// domain ("JWE" or "JWS"). JWS recognizes b64 (RFC 7797) as
// integrity-protected by default; JWE recognizes nothing by default.
func Defaults(domain string) map[string]CritFlag {
	if domain == "JWS" {
		return map[string]CritFlag{"b64": {IntegrityProtected: true}}
	}
	return map[string]CritFlag{}
}

// Merge combines 2 (JWS) or 3 (JWE) header positions into one JOSE header,
// enforcing that the protected header (when present) is non-empty and that
// parameter names are pairwise disjoint across positions (§3 invariants
// 1-2). nil maps are treated as absent/empty.
func Merge(domain string, protected Map, positions ...Map) (merged Map, err error) {
	if protected != nil && len(protected) == 0 {
		return nil, joseerr.Invalid(domain, "protected header must be non-empty when present")
	}
	merged = Map{}
	seen := map[string]bool{}
	all := append([]Map{protected}, positions...)
	for _, pos := range all {
		for k, v := range pos {
			if seen[k] {
				return nil, joseerr.Invalid(domain, fmt.Sprintf("header parameter %q is present in more than one position", k))
			}
			seen[k] = true
			merged[k] = v
		}
	}
	if _, ok := merged["zip"]; ok {
		return nil, joseerr.NotSupported(domain, "the zip header parameter is not supported")
	}
	return merged, nil
}

// ValidateCrit applies the crit rule (§4.1) given the merged header, the
// protected header alone, and the union of default ∪ caller-supplied
// recognized sets. It returns the set of crit names that were recognized,
// for downstream use (e.g. JWS's b64 opt-in check). "b64" is exempt from
// the presence and integrity-protection checks, so it is returned even
// when the header does not carry it.
func ValidateCrit(domain string, merged, protected Map, recognized map[string]CritFlag) (map[string]bool, error) {
	critVal, present := merged["crit"]
	if !present {
		return map[string]bool{}, nil
	}
	if _, inProtected := protected["crit"]; !inProtected {
		return nil, joseerr.Invalid(domain, "crit MUST be integrity protected (present in the protected header)")
	}
	names, err := asNonEmptyStringSlice(critVal)
	if err != nil {
		return nil, joseerr.Invalid(domain, "crit must be a non-empty array of non-empty strings")
	}
	result := map[string]bool{}
	for _, name := range names {
		flag, ok := recognized[name]
		if !ok {
			return nil, joseerr.Invalid(domain, fmt.Sprintf("crit parameter %q is not recognized", name))
		}
		if _, exists := merged[name]; !exists && name != "b64" {
			return nil, joseerr.Invalid(domain, fmt.Sprintf("crit parameter %q is not present in the header", name))
		}
		if flag.IntegrityProtected {
			if _, inProtected := protected[name]; !inProtected && name != "b64" {
				return nil, joseerr.Invalid(domain, fmt.Sprintf("crit parameter %q must be integrity protected", name))
			}
		}
		result[name] = true
	}
	return result, nil
}

func asNonEmptyStringSlice(v any) ([]string, error) {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("not a non-empty array")
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("element is not a non-empty string")
		}
		out = append(out, s)
	}
	return out, nil
}

// EncodeProtected renders a protected header to its base64url(JSON) wire
// form (§4.6 step 7 / §4.9 step 7).
func EncodeProtected(domain string, h Map) (string, error) {
	raw, err := json.Marshal(h)
	if err != nil {
		return "", joseerr.InvalidWrap(domain, "failed to encode protected header", err)
	}
	return b64.Encode(raw), nil
}

// DecodeProtected parses a base64url(JSON-object) protected header string
// back into a Map, failing with a labeled invalid error on any step.
func DecodeProtected(domain, encoded string) (Map, error) {
	raw, err := b64.Decode("protected", encoded)
	if err != nil {
		return nil, err
	}
	var m Map
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, joseerr.InvalidWrap(domain, "protected header is not a JSON object", err)
	}
	if len(m) == 0 {
		return nil, joseerr.Invalid(domain, "protected header must be non-empty")
	}
	return m, nil
}

// AsMap type-asserts a decoded JSON value (e.g. a header or unprotected
// position field) as a plain object, failing otherwise.
func AsMap(domain, label string, v any) (Map, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, joseerr.Invalid(domain, fmt.Sprintf("%s must be a plain object", label))
	}
	return Map(raw), nil
}
