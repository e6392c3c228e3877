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

// Package logging provides the diagnostic logging sink used by the
// encrypt/decrypt/sign/verify operations. It is a sink only: nothing it
// logs ever changes the value an operation returns to its caller.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/higayasuo/jose-universal/internal/correlation"
)

// Logger wraps a *slog.Logger with level-scoped helpers and an attached
// correlation ID, mirroring the shape of the teacher's own logging wrapper.
type Logger struct {
	logger *slog.Logger
	debug  bool
}

// New creates a Logger writing structured text records to stderr. When
// debug is false, Debug-level records (which the operations in this
// module emit on success) are suppressed; the Warn records they emit on
// failure are still written.
func New(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{logger: slog.New(handler), debug: debug}
}

// Discard returns a Logger that drops every record. pkg/jwe and pkg/jws
// use it whenever the Logger field of their options is nil.
func Discard() *Logger {
	handler := slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1})
	return &Logger{logger: slog.New(handler)}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Debug logs a structured debug record with the correlation ID from ctx
// attached, if one is present. It never receives plaintext or key
// material as an argument; callers pass only shape metadata (curve name,
// enc/alg identifier, byte lengths).
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if !l.debug {
		return
	}
	l.logger.Debug(msg, l.withCorrelation(ctx, args)...)
}

// Debugf is the formatted form of Debug.
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	if !l.debug {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...), l.withCorrelation(ctx, nil)...)
}

// Warn logs a structured warning record.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.Warn(msg, l.withCorrelation(ctx, args)...)
}

// Error logs an error, never the underlying cause of a collapsed
// decrypt/verify failure unless err itself already is that collapsed,
// public-facing error.
func (l *Logger) Error(ctx context.Context, err error) {
	l.logger.Error(err.Error(), l.withCorrelation(ctx, nil)...)
}

func (l *Logger) withCorrelation(ctx context.Context, args []any) []any {
	id := correlation.GetCorrelationID(ctx)
	if id == "" {
		return args
	}
	return append(args, "correlation_id", id)
}
