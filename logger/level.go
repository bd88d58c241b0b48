// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strconv"
	"strings"
)

// Level tags a record with its severity. Levels are never used for filtering.
type Level int

const (
	Error Level = iota
	NonCriticalError
	Warn
	Info
)

// Levels lists every level in declaration order.
var Levels = []Level{Error, NonCriticalError, Warn, Info}

var levelEventNames = map[Level]string{
	Error:            "error",
	NonCriticalError: "nonCriticalError",
	Warn:             "warn",
	Info:             "info",
}

// String returns the name of the event emitted for records of this level.
func (l Level) String() string {
	if name, ok := levelEventNames[l]; ok {
		return name
	}

	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// LevelFromString parses an event name, ignoring case. The boolean reports
// whether name matched a known level.
func LevelFromString(name string) (Level, bool) {
	for _, level := range Levels {
		if strings.EqualFold(levelEventNames[level], name) {
			return level, true
		}
	}

	return Info, false
}

// MarshalText encodes the level as its event name.
func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelEventNames[l]; !ok {
		return nil, fmt.Errorf("unknown level %d", int(l))
	}

	return []byte(l.String()), nil
}

// UnmarshalText decodes an event name into the level.
func (l *Level) UnmarshalText(text []byte) error {
	level, ok := LevelFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown level %q", string(text))
	}

	*l = level
	return nil
}
