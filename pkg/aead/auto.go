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

package aead

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HasHardwareAES reports whether the CPU has AES-NI (amd64) or the ARMv8
// Cryptography Extensions (arm64), adapted from
// pkg/crypto/aead/auto.go's HasAESNI. crypto/aes already selects the
// assembly fast path transparently when available; NewDefault only records
// the result, which Default.HardwareAccelerated reports.
func HasHardwareAES() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAES
	case "arm64":
		return cpu.ARM64.HasAES
	default:
		return false
	}
}
