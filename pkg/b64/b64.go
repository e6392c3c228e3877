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

// Package b64 wraps unpadded base64url (RFC 4648 §5) with the labeled,
// structured errors the header and container decomposition steps need:
// Required fails with "<label> is missing" on absence, Optional returns
// ok=false instead.
package b64

import (
	"encoding/base64"
	"fmt"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// Encoding is the unpadded base64url alphabet used throughout the wire
// formats (RFC 7515 §2, RFC 7516 §2).
var Encoding = base64.RawURLEncoding

// Encode returns the base64url (no padding) encoding of b.
func Encode(b []byte) string {
	return Encoding.EncodeToString(b)
}

// Decode decodes a base64url string, wrapping the stdlib error with the
// given label so downstream callers see "<label> is not valid base64url".
func Decode(label, s string) ([]byte, error) {
	b, err := Encoding.DecodeString(s)
	if err != nil {
		return nil, joseerr.InvalidWrap("", fmt.Sprintf("%s is not valid base64url", label), err)
	}
	return b, nil
}

// Required extracts field named label from m, decoding it as base64url.
// Fails if absent, not a string, or undecodable.
func Required(m map[string]any, label string) ([]byte, error) {
	v, ok := m[label]
	if !ok {
		return nil, joseerr.Invalid("", fmt.Sprintf("%s is missing", label))
	}
	s, ok := v.(string)
	if !ok {
		return nil, joseerr.Invalid("", fmt.Sprintf("%s must be a string", label))
	}
	return Decode(label, s)
}

// Optional extracts field named label from m if present, returning
// ok=false ("no value") when the field is absent entirely. A present but
// non-string or undecodable value is still an error.
func Optional(m map[string]any, label string) (b []byte, ok bool, err error) {
	v, present := m[label]
	if !present {
		return nil, false, nil
	}
	s, isStr := v.(string)
	if !isStr {
		return nil, false, joseerr.Invalid("", fmt.Sprintf("%s must be a string", label))
	}
	decoded, err := Decode(label, s)
	if err != nil {
		return nil, false, err
	}
	return decoded, true, nil
}
