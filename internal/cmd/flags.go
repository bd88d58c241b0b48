// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/scopelog/internal/config"
	"github.com/mia-platform/scopelog/logger"
)

const (
	contextFlagName  = "context"
	contextFlagShort = "c"
	contextFlagUsage = "Context pair in key=value form added to the record. Can be specified multiple times."

	contextFileFlagName  = "context-file"
	contextFileFlagShort = "f"
	contextFileFlagUsage = "Path to a yaml, json, toml or json5 file containing the record context."

	outputFlagName    = "output"
	outputFlagShort   = "o"
	outputFlagUsage   = "Output format of the emitted record (possible values: text, json)"
	defaultOutputFlag = outputText

	outputText = "text"
	outputJSON = "json"
)

// flags collects the CLI options of the emit command.
type flags struct {
	contextPairs []string
	contextFile  string
	output       string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(
		&f.contextPairs,
		contextFlagName,
		contextFlagShort,
		nil,
		contextFlagUsage)

	cmd.Flags().StringVarP(&f.contextFile, contextFileFlagName, contextFileFlagShort, "", contextFileFlagUsage)
	cmd.Flags().StringVarP(&f.output, outputFlagName, outputFlagShort, defaultOutputFlag, outputFlagUsage)
}

// toOptions builds an options instance from the parsed flags, CLI arguments and
// environment configuration.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	var levelName, scope, message string
	if len(args) > 0 {
		levelName = args[0]
	}
	if len(args) > 1 {
		scope = args[1]
	}
	if len(args) > 2 {
		message = args[2]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	defaultContext, err := cfg.DefaultContext()
	if err != nil {
		return nil, err
	}

	var fileContext logger.Context
	if f.contextFile != "" {
		fileContext, err = config.LoadContextFile(f.contextFile)
		if err != nil {
			return nil, err
		}
	}

	pairsContext, err := parseContextPairs(f.contextPairs)
	if err != nil {
		return nil, err
	}

	return &options{
		levelName:      strings.TrimSpace(levelName),
		scope:          scope,
		message:        message,
		argsCount:      len(args),
		defaultContext: defaultContext,
		callContext:    logger.MergeContext(fileContext, pairsContext),
		output:         strings.ToLower(f.output),
		consoleFormat:  logger.ConsoleFormat(cfg.ConsoleFormat),
		out:            cmd.OutOrStdout(),
		errOut:         cmd.ErrOrStderr(),
	}, nil
}
