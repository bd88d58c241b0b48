// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mia-platform/scopelog/logger"
)

var (
	errNoArguments      = errors.New("no level provided")
	errMissingArguments = errors.New("scope and message are required")
	errInvalidLevel     = errors.New("invalid level provided")
	errInvalidContext   = errors.New("invalid context pair")

	// availableLevels holds the emittable levels and their description
	// for command completion and help messages.
	availableLevels = map[string]string{
		logger.Info.String():             "informational record with a message",
		logger.Warn.String():             "warning record with a message",
		logger.Error.String():            "error record, the message becomes the error",
		logger.NonCriticalError.String(): "recoverable error record, the message becomes the error",
	}

	// recordTypes names the record delivered on every event.
	recordTypes = map[logger.Level]string{
		logger.Info:             "InfoLog",
		logger.Warn:             "WarningLog",
		logger.Error:            "ErrorLog",
		logger.NonCriticalError: "NonCriticalErrorLog",
	}
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errInvalidLevel), errors.Is(err, errMissingArguments):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(levels map[string]string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		if len(args) == 0 {
			for _, name := range levelNames() {
				if strings.HasPrefix(name, toComplete) {
					comps = append(comps, cobra.CompletionWithDesc(name, levels[name]))
				}
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}

// levelNames returns the event names in level declaration order.
func levelNames() []string {
	names := make([]string, 0, len(logger.Levels))
	for _, level := range logger.Levels {
		names = append(names, level.String())
	}

	return names
}

// parseContextPairs turns key=value pairs into a context. Later pairs win.
func parseContextPairs(pairs []string) (logger.Context, error) {
	context := make(logger.Context, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidContext, pair)
		}

		context[key] = value
	}

	return context, nil
}

func renderEventsTable() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"event", "level", "record", "payload"})

	for _, level := range logger.Levels {
		payload := "Message string"
		if level == logger.Error || level == logger.NonCriticalError {
			payload = "Error error"
		}
		tw.AppendRow(table.Row{level.String(), int(level), recordTypes[level], payload})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
