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

package curve

import (
	"fmt"

	"github.com/higayasuo/jose-universal/pkg/joseerr"
)

func notSupportedCurve(crv string) error {
	return joseerr.NotSupported("", fmt.Sprintf("unsupported curve: %s", crv))
}

func notSupportedAlg(alg string) error {
	return joseerr.NotSupported("", fmt.Sprintf("unsupported algorithm: %s", alg))
}
