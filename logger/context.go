// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"context"
	"io"
)

var (
	// nullLogger has no subscribers and a discarded console: records go nowhere.
	nullLogger = NewLogger(&Options{StreamOut: io.Discard, StreamErr: io.Discard}).CreateScope("")
)

// WithContext returns a new context carrying the provided scoped logger.
func WithContext(ctx context.Context, log *ScopedLogger) context.Context {
	return context.WithValue(ctx, contextKey, log)
}

// FromContext retrieves the scoped logger from the context. If no logger is found,
// a scope of a Logger without subscribers is returned.
func FromContext(ctx context.Context) *ScopedLogger {
	if ctx != nil {
		if log, ok := ctx.Value(contextKey).(*ScopedLogger); ok && log != nil {
			return log
		}
	}

	return nullLogger
}

// Unexported new type so that our context key never collides with another.
type contextKeyType struct{}

// contextKey is the key used for the context to store the logger.
var contextKey = contextKeyType{}
