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

	"github.com/higayasuo/jose-universal/pkg/jwe"
	"github.com/spf13/cobra"
)

var (
	decryptKeyPath string
	decryptIn      string
	decryptCompact bool
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a flattened or compact JWE using ECDH-ES",
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, err := readKeyFile(decryptKeyPath)
		if err != nil {
			handleError(err)
			return nil
		}
		raw, err := readPayload(decryptIn)
		if err != nil {
			handleError(err)
			return nil
		}

		var flat *jwe.Flattened
		if decryptCompact {
			flat, err = jwe.FromCompact(string(raw))
		} else {
			flat = &jwe.Flattened{}
			err = json.Unmarshal(raw, flat)
		}
		if err != nil {
			handleError(err)
			return nil
		}

		opts := jwe.DecryptOptions{Logger: newLogger()}
		result, err := jwe.NewDecrypter(recipient, opts).Decrypt(context.Background(), flat)
		if err != nil {
			handleError(err)
			return nil
		}

		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		return printer.PrintDecryptResult(result)
	},
}

func init() {
	decryptCmd.Flags().StringVarP(&decryptKeyPath, "key", "k", "", "path to the recipient's private JWK, or - for stdin (required)")
	decryptCmd.Flags().StringVarP(&decryptIn, "in", "i", "-", "path to the JWE to decrypt, or - for stdin")
	decryptCmd.Flags().BoolVar(&decryptCompact, "compact", false, "input is compact serialization instead of flattened JSON")
	_ = decryptCmd.MarkFlagRequired("key")
}
