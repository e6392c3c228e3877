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

// Package cli implements josectl, a local testing and scripting front end
// over pkg/jwe, pkg/jws, and pkg/curve.
package cli

import (
	"os"

	"github.com/higayasuo/jose-universal/internal/logging"
	"github.com/spf13/cobra"
)

var globalConfig = &Config{OutputFormat: "text"}

// Config holds flags shared by every josectl subcommand.
type Config struct {
	ConfigFile   string
	OutputFormat string
	Debug        bool
}

var rootCmd = &cobra.Command{
	Use:           "josectl",
	Short:         "josectl - JWE/JWS encrypt, decrypt, sign, and verify from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalConfig.ConfigFile, "config", "",
		"config file path (accepted but not read by any subcommand)")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.OutputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&globalConfig.Debug, "debug", "d", false,
		"emit debug-level diagnostic logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
}

func getConfig() *Config {
	return globalConfig
}

// newLogger builds the diagnostic sink every terminal-operation subcommand
// wires into its jwe/jws options: a debug-level slog sink when --debug was
// passed, a discard sink otherwise. Metrics are never wired from the CLI;
// this front end is for local testing and scripting, not a long-running
// process worth scraping.
func newLogger() *logging.Logger {
	if globalConfig.Debug {
		return logging.New(true)
	}
	return logging.Discard()
}

func handleError(err error) {
	printer := NewPrinter(globalConfig.OutputFormat, os.Stderr)
	_ = printer.PrintError(err)
	os.Exit(1)
}
