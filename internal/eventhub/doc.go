// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package eventhub provides a small synchronous publish/subscribe hub.
// Emitting an event runs every handler registered for it before returning; emitting
// without handlers is not an error, and a panicking handler is reported to the hub
// diagnostics logger instead of reaching the emitter.
package eventhub
