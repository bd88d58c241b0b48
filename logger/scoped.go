// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import "github.com/mia-platform/scopelog/internal/stack"

var scopedFile = stack.CallerFile()

// ScopedLogger emits on its root Logger with a fixed scope and an extra context
// layer between the Logger context and the call site one.
type ScopedLogger struct {
	main    *Logger
	scope   string
	context Context
}

// Main returns the root Logger records are emitted on.
func (s *ScopedLogger) Main() *Logger { return s.main }

// Scope returns the scope stamped on every record.
func (s *ScopedLogger) Scope() string { return s.scope }

// Context returns a copy of the scope context.
func (s *ScopedLogger) Context() Context { return MergeContext(s.context) }

// Info emits an info record in the scope and reports whether any handler received it.
func (s *ScopedLogger) Info(message string, context ...Context) bool {
	return s.main.Info(s.scope, message, s.merge(context))
}

// Warn emits a warn record in the scope and reports whether any handler received it.
func (s *ScopedLogger) Warn(message string, context ...Context) bool {
	return s.main.Warn(s.scope, message, s.merge(context))
}

// Error emits an error record in the scope and reports whether any handler received it.
func (s *ScopedLogger) Error(err error, context ...Context) bool {
	return s.main.Error(s.scope, err, s.merge(context))
}

// NonCriticalError emits a nonCriticalError record in the scope and reports
// whether any handler received it.
func (s *ScopedLogger) NonCriticalError(err error, context ...Context) bool {
	return s.main.NonCriticalError(s.scope, err, s.merge(context))
}

// CreateScope creates a sibling scope on the root Logger: scopes never nest.
func (s *ScopedLogger) CreateScope(scope string, context ...Context) *ScopedLogger {
	return s.main.CreateScope(scope, context...)
}

func (s *ScopedLogger) merge(context []Context) Context {
	layers := make([]Context, 0, len(context)+1)
	layers = append(layers, s.context)
	layers = append(layers, context...)

	return MergeContext(layers...)
}
