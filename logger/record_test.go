// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	base := BaseLog{
		Time:    1700000000123,
		Trace:   []string{"main.main (/src/main.go:10)"},
		Scope:   "api",
		Context: Context{"user": "alice"},
	}

	testCases := map[string]struct {
		log      Log
		expected string
	}{
		"info": {
			log:      InfoLog{BaseLog: base, Message: "hello"},
			expected: `{"time":1700000000123,"level":"info","scope":"api","message":"hello","trace":["main.main (/src/main.go:10)"],"context":{"user":"alice"}}`,
		},
		"warn with empty message": {
			log:      WarningLog{BaseLog: base},
			expected: `{"time":1700000000123,"level":"warn","scope":"api","message":"","trace":["main.main (/src/main.go:10)"],"context":{"user":"alice"}}`,
		},
		"error": {
			log:      ErrorLog{BaseLog: base, Error: errTest},
			expected: `{"time":1700000000123,"level":"error","scope":"api","error":"something failed","trace":["main.main (/src/main.go:10)"],"context":{"user":"alice"}}`,
		},
		"non critical error without error value": {
			log:      NonCriticalErrorLog{BaseLog: BaseLog{Scope: "api"}},
			expected: `{"time":0,"level":"nonCriticalError","scope":"api","error":"","trace":[]}`,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := EncodeJSON(test.log)
			require.NoError(t, err)
			assert.JSONEq(t, test.expected, string(data))

			marshalled, err := json.Marshal(test.log)
			require.NoError(t, err)
			assert.JSONEq(t, test.expected, string(marshalled))
		})
	}
}

func TestPayload(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "message", Payload(InfoLog{Message: "message"}))
	assert.Equal(t, "warning", Payload(WarningLog{Message: "warning"}))
	assert.Equal(t, errTest.Error(), Payload(ErrorLog{Error: errTest}))
	assert.Empty(t, Payload(NonCriticalErrorLog{}))
}

func TestLevelNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "nonCriticalError", NonCriticalError.String())
	assert.Equal(t, "warn", Warn.String())
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "Level(999)", Level(999).String())
	assert.Equal(t, []Level{Error, NonCriticalError, Warn, Info}, Levels)

	for _, level := range Levels {
		parsed, ok := LevelFromString(level.String())
		assert.True(t, ok)
		assert.Equal(t, level, parsed)
	}

	parsed, ok := LevelFromString("NONCRITICALERROR")
	assert.True(t, ok)
	assert.Equal(t, NonCriticalError, parsed)

	_, ok = LevelFromString("debug")
	assert.False(t, ok)

	var level Level
	require.NoError(t, level.UnmarshalText([]byte("warn")))
	assert.Equal(t, Warn, level)
	require.Error(t, level.UnmarshalText([]byte("fatal")))

	_, err := Level(42).MarshalText()
	require.Error(t, err)
}
