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
	"fmt"
	"os"

	"github.com/higayasuo/jose-universal/pkg/jwe"
	"github.com/spf13/cobra"
)

var (
	encryptKeyPath string
	encryptEnc     string
	encryptIn      string
	encryptCompact bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a payload into a flattened or compact JWE using ECDH-ES",
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, err := readKeyFile(encryptKeyPath)
		if err != nil {
			handleError(err)
			return nil
		}
		plaintext, err := readPayload(encryptIn)
		if err != nil {
			handleError(err)
			return nil
		}

		opts := jwe.EncryptOptions{Logger: newLogger()}
		flat, err := jwe.NewEncrypter(encryptEnc, recipient, opts).Encrypt(context.Background(), plaintext)
		if err != nil {
			handleError(err)
			return nil
		}

		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		if encryptCompact {
			compact, err := flat.ToCompact()
			if err != nil {
				handleError(err)
				return nil
			}
			fmt.Fprintln(os.Stdout, compact)
			return nil
		}
		return printer.PrintFlattenedJWE(flat)
	},
}

func init() {
	encryptCmd.Flags().StringVarP(&encryptKeyPath, "key", "k", "", "path to the recipient's public JWK, or - for stdin (required)")
	encryptCmd.Flags().StringVar(&encryptEnc, "enc", "A256GCM", "content encryption algorithm")
	encryptCmd.Flags().StringVarP(&encryptIn, "in", "i", "-", "path to the plaintext to encrypt, or - for stdin")
	encryptCmd.Flags().BoolVar(&encryptCompact, "compact", false, "emit compact serialization instead of flattened JSON")
	_ = encryptCmd.MarkFlagRequired("key")
}
