// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// ConsoleFormat selects how the console mirror renders records.
type ConsoleFormat string

const (
	ConsoleText ConsoleFormat = "text"
	ConsoleJSON ConsoleFormat = "json"
)

// Keys added by the console next to the record context. The @ prefix follows
// hclog own keys so they never clash with call site context keys.
const (
	callerKey      = "@caller"
	nonCriticalKey = "@nonCritical"
)

// Console renders records in a human readable form: info records go to the
// output sink, every other level to the error sink.
type Console struct {
	out hclog.Logger
	err hclog.Logger
}

// NewConsole builds a Console writing on out and errOut. An empty format means
// ConsoleText.
func NewConsole(out, errOut io.Writer, format ConsoleFormat) *Console {
	return &Console{
		out: newConsoleLogger(out, format),
		err: newConsoleLogger(errOut, format),
	}
}

// newConsoleLogger enables colors only for text output written on a terminal.
func newConsoleLogger(writer io.Writer, format ConsoleFormat) hclog.Logger {
	jsonFormat := format == ConsoleJSON
	color := hclog.ColorOff
	if !jsonFormat && isTerminal(writer) {
		color = hclog.ForceColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Output:     writer,
		JSONFormat: jsonFormat,
		Color:      color,
		Level:      hclog.Info,
	})
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Write renders log. Its signature matches Handler so a Console can be
// subscribed directly.
func (c *Console) Write(log Log) {
	base := log.Base()
	args := make([]any, 0, 2*len(base.Context)+4)
	for _, key := range base.Context.Keys() {
		args = append(args, key, base.Context[key])
	}
	if len(base.Trace) > 0 {
		args = append(args, callerKey, base.Trace[0])
	}

	switch log.Level() {
	case Info:
		c.out.Named(base.Scope).Info(Payload(log), args...)
	case Warn:
		c.err.Named(base.Scope).Warn(Payload(log), args...)
	case Error:
		c.err.Named(base.Scope).Error(Payload(log), args...)
	case NonCriticalError:
		args = append(args, nonCriticalKey, true)
		c.err.Named(base.Scope).Error(Payload(log), args...)
	}
}
