// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger is a leveled logging facade built on an event hub.
// A Logger turns every call into a typed record carrying the scope, the merged
// context and the caller trace, and hands it synchronously to the handlers
// subscribed to the level event. ScopedLogger presets the scope and a context layer.
// Loggers are also made available through context helpers and a fiber middleware.
package logger
