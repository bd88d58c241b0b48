// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"

	"github.com/mia-platform/scopelog/logger"
)

var (
	// ErrParsing reports failures that occur while decoding context files.
	ErrParsing = errors.New("error parsing")
	// ErrUnsupportedFormat reports a context file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported context file format")
)

type decodeFunc func(data []byte, out *map[string]any) error

var decoders = map[string]decodeFunc{
	".yaml":  decodeYAML,
	".yml":   decodeYAML,
	".json":  decodeYAML,
	".toml":  decodeTOML,
	".json5": decodeJSON5,
}

// LoadContextFile reads a context from the file at path. The format is chosen
// by extension: YAML and JSON files, TOML files and JSON5 files are supported.
// The top level of the document must be a mapping; an empty document yields an
// empty context.
func LoadContextFile(path string) (logger.Context, error) {
	extension := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[extension]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]any)
	if err := decode(data, &values); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	return logger.Context(values), nil
}

func decodeYAML(data []byte, out *map[string]any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if *out == nil {
		*out = make(map[string]any)
	}
	return nil
}

func decodeTOML(data []byte, out *map[string]any) error {
	return toml.Unmarshal(data, out)
}

func decodeJSON5(data []byte, out *map[string]any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	return json5.Unmarshal(data, out)
}
