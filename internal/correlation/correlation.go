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

// Package correlation attaches a per-operation identifier to a context so
// diagnostic log records from encrypt/decrypt/sign/verify calls that
// belong to the same caller-initiated request can be grouped together.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// CorrelationIDKey is the context key for storing correlation IDs.
const CorrelationIDKey contextKey = "correlation-id"

// WithCorrelationID attaches a correlation ID to ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// GetCorrelationID retrieves the correlation ID from ctx, or "" if none is set.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// NewID generates a new UUID v4 correlation ID.
func NewID() string {
	return uuid.New().String()
}

// GetOrGenerate retrieves the correlation ID already present on ctx, or
// generates and returns a new one if none is set.
func GetOrGenerate(ctx context.Context) string {
	if id := GetCorrelationID(ctx); id != "" {
		return id
	}
	return NewID()
}
