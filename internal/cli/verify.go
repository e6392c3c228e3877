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

package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/higayasuo/jose-universal/pkg/jws"
	"github.com/spf13/cobra"
)

var (
	verifyKeyPath string
	verifyIn      string
	verifyCompact bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a flattened or compact JWS",
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := readKeyFile(verifyKeyPath)
		if err != nil {
			handleError(err)
			return nil
		}
		raw, err := readPayload(verifyIn)
		if err != nil {
			handleError(err)
			return nil
		}

		var flat *jws.Flattened
		if verifyCompact {
			flat, err = jws.FromCompact(string(raw))
		} else {
			flat = &jws.Flattened{}
			err = json.Unmarshal(raw, flat)
		}
		if err != nil {
			handleError(err)
			return nil
		}

		opts := jws.VerifyOptions{Logger: newLogger()}
		result, err := jws.NewVerifier(signer, opts).Verify(context.Background(), flat)
		if err != nil {
			handleError(err)
			return nil
		}

		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		return printer.PrintVerifyResult(result)
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyKeyPath, "key", "k", "", "path to the signer's public JWK, or - for stdin (required)")
	verifyCmd.Flags().StringVarP(&verifyIn, "in", "i", "-", "path to the JWS to verify, or - for stdin")
	verifyCmd.Flags().BoolVar(&verifyCompact, "compact", false, "input is compact serialization instead of flattened JSON")
	_ = verifyCmd.MarkFlagRequired("key")
}
