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

package jwe

import (
	"errors"

	"github.com/higayasuo/jose-universal/internal/logging"
	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

// logger returns l, or a discard sink if l is nil, so every call site can
// log unconditionally without a nil check.
func logger(l *logging.Logger) *logging.Logger {
	if l == nil {
		return logging.Discard()
	}
	return l
}

// failureCategory maps err to the metrics "category" label, mirroring the
// three error kinds the protocol core distinguishes.
func failureCategory(err error) string {
	var e *joseerr.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case joseerr.KindInvalid:
			return "invalid"
		case joseerr.KindNotSupported:
			return "not_supported"
		case joseerr.KindVerificationFailed:
			return "verification_failed"
		}
	}
	return "unknown"
}
