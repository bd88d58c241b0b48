// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleText(t *testing.T) {
	t.Parallel()

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	console := NewConsole(out, errOut, "")

	base := BaseLog{
		Trace:   []string{"app.handler (/src/app.go:42)"},
		Scope:   "api",
		Context: Context{"zeta": 1, "alpha": "first"},
	}
	console.Write(InfoLog{BaseLog: base, Message: "served"})
	console.Write(WarningLog{BaseLog: base, Message: "slow"})
	console.Write(ErrorLog{BaseLog: base, Error: errTest})
	console.Write(NonCriticalErrorLog{BaseLog: base, Error: errTest})

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, outLines, 1)
	assert.Contains(t, outLines[0], "[INFO]")
	assert.Contains(t, outLines[0], "api: served")
	assert.Contains(t, outLines[0], "@caller=")
	assert.Contains(t, outLines[0], "app.handler (/src/app.go:42)")
	assert.Less(t, strings.Index(outLines[0], "alpha="), strings.Index(outLines[0], "zeta="))

	errLines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	require.Len(t, errLines, 3)
	assert.Contains(t, errLines[0], "[WARN]")
	assert.Contains(t, errLines[0], "api: slow")
	assert.Contains(t, errLines[1], "[ERROR]")
	assert.Contains(t, errLines[1], "api: something failed")
	assert.NotContains(t, errLines[1], "nonCritical")
	assert.Contains(t, errLines[2], "[ERROR]")
	assert.Contains(t, errLines[2], "@nonCritical=true")
}

func TestConsoleKeysDoNotClashWithContext(t *testing.T) {
	t.Parallel()

	errOut := new(bytes.Buffer)
	console := NewConsole(new(bytes.Buffer), errOut, ConsoleText)
	console.Write(NonCriticalErrorLog{
		BaseLog: BaseLog{
			Trace:   []string{"app.handler (/src/app.go:42)"},
			Scope:   "api",
			Context: Context{"caller": "billing", "nonCritical": "maybe"},
		},
		Error: errTest,
	})

	line := strings.TrimSpace(errOut.String())
	assert.Equal(t, 1, strings.Count(line, " caller="))
	assert.Equal(t, 1, strings.Count(line, " nonCritical="))
	assert.Equal(t, 1, strings.Count(line, "@caller="))
	assert.Equal(t, 1, strings.Count(line, "@nonCritical="))
	assert.Contains(t, line, "caller=billing")
	assert.Contains(t, line, "nonCritical=maybe")
	assert.Contains(t, line, "@nonCritical=true")
}

func TestConsoleWithoutTerminalHasNoColors(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	NewConsole(out, new(bytes.Buffer), ConsoleText).Write(InfoLog{
		BaseLog: BaseLog{Scope: "api"},
		Message: "served",
	})

	assert.Contains(t, out.String(), "api: served")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestConsoleJSON(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	console := NewConsole(out, new(bytes.Buffer), ConsoleJSON)
	console.Write(InfoLog{
		BaseLog: BaseLog{Scope: "api", Context: Context{"user": "alice"}},
		Message: "served",
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "served", line["@message"])
	assert.Equal(t, "api", line["@module"])
	assert.Equal(t, "info", line["@level"])
	assert.Equal(t, "alice", line["user"])
	assert.NotContains(t, line, "caller")
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, isTerminal(new(bytes.Buffer)))

	file, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	defer file.Close()
	assert.False(t, isTerminal(file))
}
