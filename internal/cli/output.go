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
	"encoding/json"
	"fmt"
	"io"

	"github.com/higayasuo/jose-universal/pkg/jwe"
	"github.com/higayasuo/jose-universal/pkg/jwk"
	"github.com/higayasuo/jose-universal/pkg/jws"
)

// OutputFormat selects how a Printer renders command results.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output for every josectl subcommand.
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a Printer writing to writer in the given format.
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{format: OutputFormat(format), writer: writer}
}

// PrintFlattenedJWE prints the result of an encrypt command.
func (p *Printer) PrintFlattenedJWE(flat *jwe.Flattened) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(flat)
	default:
		fmt.Fprintf(p.writer, "protected:     %s\n", flat.Protected)
		fmt.Fprintf(p.writer, "iv:            %s\n", flat.IV)
		fmt.Fprintf(p.writer, "ciphertext:    %s\n", flat.Ciphertext)
		fmt.Fprintf(p.writer, "tag:           %s\n", flat.Tag)
		if flat.AAD != "" {
			fmt.Fprintf(p.writer, "aad:           %s\n", flat.AAD)
		}
		return nil
	}
}

// PrintDecryptResult prints the result of a decrypt command.
func (p *Printer) PrintDecryptResult(result *jwe.DecryptResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{
			"plaintext": string(result.Plaintext),
		})
	default:
		fmt.Fprintln(p.writer, string(result.Plaintext))
		return nil
	}
}

// PrintFlattenedJWS prints the result of a sign command.
func (p *Printer) PrintFlattenedJWS(flat *jws.Flattened) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(flat)
	default:
		fmt.Fprintf(p.writer, "protected: %s\n", flat.Protected)
		fmt.Fprintf(p.writer, "payload:   %s\n", flat.Payload)
		fmt.Fprintf(p.writer, "signature: %s\n", flat.Signature)
		return nil
	}
}

// PrintVerifyResult prints the result of a verify command.
func (p *Printer) PrintVerifyResult(result *jws.VerifyResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{
			"valid":   true,
			"payload": string(result.Payload),
		})
	default:
		fmt.Fprintln(p.writer, "signature valid")
		fmt.Fprintln(p.writer, string(result.Payload))
		return nil
	}
}

// PrintJWK prints a generated key.
func (p *Printer) PrintJWK(j *jwk.JWK) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(j)
	default:
		raw, err := j.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprintln(p.writer, string(raw))
		return nil
	}
}

// PrintError prints err to the configured writer.
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{"error": err.Error()})
	default:
		_, writeErr := fmt.Fprintf(p.writer, "error: %v\n", err)
		return writeErr
	}
}

func (p *Printer) printJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
