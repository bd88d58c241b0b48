// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	emitCmdUsageTemplate = "emit [%s] SCOPE MESSAGE"
	emitCmdShort         = "emit a single record on a new logger"
	emitCmdLong          = `Emit a single record on a new logger and print it.
	The logger default context is read from the SCOPELOG_CONTEXT and
	SCOPELOG_CONTEXT_FILE environment variables, the call site context from
	the --context and --context-file flags. For the error and nonCriticalError
	levels the message is used as the error text.

	The record is printed on the console mirror, or as a JSON line when the
	json output is selected.`

	emitCmdExample = `# Emit a warning with some context
	scopelog emit warn billing "invoice is late" --context invoice=42

	# Emit an error as a JSON line
	scopelog emit error billing "payment refused" --output json`

	eventsCmdShort = "list the events emitted by a logger"
	eventsCmdLong  = `List the events emitted by a logger and the record delivered to
	their subscribers.`
)

// EmitCmd returns the Cobra command that emits a single record.
func EmitCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(emitCmdUsageTemplate, strings.Join(levelNames(), "|")),
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.MaximumNArgs(3),
		ValidArgsFunction: validArgsFunc(availableLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// EventsCmd returns the Cobra command that prints the event table.
func EventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: heredoc.Doc(eventsCmdShort),
		Long:  heredoc.Doc(eventsCmdLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), renderEventsTable())
		},
	}
}
