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
	"fmt"
	"os"

	"github.com/higayasuo/jose-universal/pkg/curve"
	"github.com/higayasuo/jose-universal/pkg/jwk"
	"github.com/spf13/cobra"
)

var (
	keygenCurve string
	keygenUse   string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a JWK key pair for ECDH-ES encryption or JWS signing",
	RunE: func(cmd *cobra.Command, args []string) error {
		var priv *jwk.JWK
		var err error

		switch keygenUse {
		case "enc":
			priv, err = generateECDHKey(keygenCurve)
		case "sig":
			priv, err = generateSignatureKey(keygenCurve)
		default:
			err = fmt.Errorf("unknown --use value %q (want enc or sig)", keygenUse)
		}
		if err != nil {
			handleError(err)
			return nil
		}
		return printKeyPair(priv)
	},
}

func generateECDHKey(crv string) (*jwk.JWK, error) {
	provider, err := curve.ResolveECDH(crv)
	if err != nil {
		return nil, err
	}
	rawPriv, err := provider.RandomPrivateKey()
	if err != nil {
		return nil, err
	}
	return provider.JWKPrivateKeyFromRaw(rawPriv)
}

func generateSignatureKey(crv string) (*jwk.JWK, error) {
	provider, err := curve.ResolveSignature(crv)
	if err != nil {
		return nil, err
	}
	rawPriv, err := provider.RandomPrivateKey()
	if err != nil {
		return nil, err
	}
	return provider.JWKPrivateKeyFromRaw(rawPriv)
}

func printKeyPair(priv *jwk.JWK) error {
	pub := priv.PublicOnly()
	printer := NewPrinter(getConfig().OutputFormat, os.Stdout)
	if getConfig().OutputFormat == "json" {
		return printer.printJSON(map[string]any{"private": priv, "public": pub})
	}
	fmt.Fprintln(os.Stdout, "private:")
	if err := printer.PrintJWK(priv); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "public:")
	return printer.PrintJWK(pub)
}

func init() {
	keygenCmd.Flags().StringVar(&keygenCurve, "crv", "P-256", "curve: P-256, P-384, P-521, X25519 (enc); P-256, P-384, P-521, secp256k1, Ed25519 (sig)")
	keygenCmd.Flags().StringVar(&keygenUse, "use", "enc", "key use: enc (ECDH-ES) or sig (JWS)")
}
