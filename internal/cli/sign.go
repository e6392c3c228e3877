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

	"github.com/higayasuo/jose-universal/pkg/jws"
	"github.com/spf13/cobra"
)

var (
	signKeyPath string
	signIn      string
	signCompact bool
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a payload into a flattened or compact JWS",
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := readKeyFile(signKeyPath)
		if err != nil {
			handleError(err)
			return nil
		}
		payload, err := readPayload(signIn)
		if err != nil {
			handleError(err)
			return nil
		}

		opts := jws.SignOptions{Logger: newLogger()}
		flat, err := jws.NewSigner(signer, opts).Sign(context.Background(), payload)
		if err != nil {
			handleError(err)
			return nil
		}

		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
		if signCompact {
			compact, err := flat.ToCompact()
			if err != nil {
				handleError(err)
				return nil
			}
			fmt.Fprintln(os.Stdout, compact)
			return nil
		}
		return printer.PrintFlattenedJWS(flat)
	},
}

func init() {
	signCmd.Flags().StringVarP(&signKeyPath, "key", "k", "", "path to the signer's private JWK, or - for stdin (required)")
	signCmd.Flags().StringVarP(&signIn, "in", "i", "-", "path to the payload to sign, or - for stdin")
	signCmd.Flags().BoolVar(&signCompact, "compact", false, "emit compact serialization instead of flattened JSON")
	_ = signCmd.MarkFlagRequired("key")
}
