// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"maps"
	"slices"
)

// Context holds the metadata attached to a record.
type Context map[string]any

// MergeContext combines layers from the least to the most specific: a key set in a
// later layer overrides the same key of an earlier one. The merge is shallow, the
// layers are left untouched and the result is always a new, non nil map.
func MergeContext(layers ...Context) Context {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}

	merged := make(Context, size)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}

	return merged
}

// Keys returns the context keys in lexical order.
func (c Context) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}
