// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/mia-platform/scopelog/logger"
)

const loggerName = "scopelog:emit"

var errInvalidOutput = errors.New("invalid output format")

// options configures the record emitted by the emit command.
type options struct {
	levelName string
	scope     string
	message   string
	argsCount int

	defaultContext logger.Context
	callContext    logger.Context

	output        string
	consoleFormat logger.ConsoleFormat
	out           io.Writer
	errOut        io.Writer

	level logger.Level
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if o.levelName == "" {
		return errNoArguments
	}

	level, ok := logger.LevelFromString(o.levelName)
	if !ok {
		return fmt.Errorf("%w: %s", errInvalidLevel, o.levelName)
	}
	o.level = level

	if o.argsCount < 3 {
		return errMissingArguments
	}

	if o.output != outputText && o.output != outputJSON {
		return fmt.Errorf("%w: %s", errInvalidOutput, o.output)
	}

	return nil
}

// execute builds the logger, attaches the selected output and emits the record.
func (o *options) execute(ctx context.Context) error {
	diagnostics := hclog.FromContext(ctx).Named(loggerName)
	log := logger.NewLogger(&logger.Options{
		Context:       o.defaultContext,
		StreamOut:     o.out,
		StreamErr:     o.errOut,
		ConsoleFormat: o.consoleFormat,
		Diagnostics:   diagnostics,
	})

	var encodeErr error
	switch o.output {
	case outputJSON:
		detach := attachJSON(log, o.out, &encodeErr)
		defer detach()
	default:
		detach := log.AttachConsole()
		defer detach()
	}

	scoped := log.CreateScope(o.scope)
	var delivered bool
	switch o.level {
	case logger.Info:
		delivered = scoped.Info(o.message, o.callContext)
	case logger.Warn:
		delivered = scoped.Warn(o.message, o.callContext)
	case logger.Error:
		delivered = scoped.Error(errors.New(o.message), o.callContext)
	case logger.NonCriticalError:
		delivered = scoped.NonCriticalError(errors.New(o.message), o.callContext)
	}

	diagnostics.Debug("record emitted", "level", o.level.String(), "scope", o.scope, "delivered", delivered)
	return encodeErr
}

// attachJSON writes every record as a JSON line on out. The first encoding or
// write failure is stored in errOut.
func attachJSON(log *logger.Logger, out io.Writer, errOut *error) func() {
	subscriptions := make(map[logger.Level]logger.Subscription, len(logger.Levels))
	for _, level := range logger.Levels {
		subscriptions[level] = log.On(level, func(record logger.Log) {
			data, err := logger.EncodeJSON(record)
			if err == nil {
				_, err = out.Write(append(data, '\n'))
			}
			if err != nil && *errOut == nil {
				*errOut = err
			}
		})
	}

	return func() {
		for level, subscription := range subscriptions {
			log.Off(level, subscription)
		}
	}
}
