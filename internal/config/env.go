// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/scopelog/logger"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Config holds the settings read from the environment.
type Config struct {
	Context       map[string]string `env:"SCOPELOG_CONTEXT" envSeparator:"," envKeyValSeparator:":"`
	ContextFile   string            `env:"SCOPELOG_CONTEXT_FILE"`
	ConsoleFormat string            `env:"SCOPELOG_CONSOLE_FORMAT" envDefault:"text"`
}

// LoadConfig parses and validates the environment configuration.
func LoadConfig() (*Config, error) {
	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnvironmentVariables(envVars *Config) error {
	envError := make([]string, 0)

	switch logger.ConsoleFormat(strings.ToLower(envVars.ConsoleFormat)) {
	case logger.ConsoleText, logger.ConsoleJSON:
		envVars.ConsoleFormat = strings.ToLower(envVars.ConsoleFormat)
	default:
		envError = append(envError, "SCOPELOG_CONSOLE_FORMAT must be one of text, json")
	}

	for key := range envVars.Context {
		if strings.TrimSpace(key) == "" {
			envError = append(envError, "SCOPELOG_CONTEXT contains an empty key")
			break
		}
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}

// DefaultContext merges the SCOPELOG_CONTEXT pairs with the content of
// SCOPELOG_CONTEXT_FILE, the file winning on conflicting keys.
func (c *Config) DefaultContext() (logger.Context, error) {
	fromEnv := make(logger.Context, len(c.Context))
	for key, value := range c.Context {
		fromEnv[key] = value
	}

	if c.ContextFile == "" {
		return fromEnv, nil
	}

	fromFile, err := LoadContextFile(c.ContextFile)
	if err != nil {
		return nil, err
	}

	return logger.MergeContext(fromEnv, fromFile), nil
}
