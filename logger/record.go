// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"github.com/segmentio/encoding/json"
)

// Log is implemented by the four record types delivered to subscribers.
// Level tells which concrete type, and so which payload field, a Log carries.
type Log interface {
	Level() Level
	Base() BaseLog

	sealed()
}

var (
	_ Log = InfoLog{}
	_ Log = WarningLog{}
	_ Log = ErrorLog{}
	_ Log = NonCriticalErrorLog{}
)

// BaseLog holds the fields shared by every record.
type BaseLog struct {
	// Time is expressed in milliseconds since the Unix epoch.
	Time int64
	// Trace lists the call sites that produced the record, the caller first.
	Trace []string
	// Scope names the logical source of the record.
	Scope   string
	Context Context
}

// Base returns the shared fields of the record.
func (b BaseLog) Base() BaseLog { return b }

func (BaseLog) sealed() {}

// InfoLog is delivered on the info event.
type InfoLog struct {
	BaseLog
	Message string
}

func (InfoLog) Level() Level { return Info }

func (r InfoLog) MarshalJSON() ([]byte, error) { return EncodeJSON(r) }

// WarningLog is delivered on the warn event.
type WarningLog struct {
	BaseLog
	Message string
}

func (WarningLog) Level() Level { return Warn }

func (r WarningLog) MarshalJSON() ([]byte, error) { return EncodeJSON(r) }

// ErrorLog is delivered on the error event.
type ErrorLog struct {
	BaseLog
	Error error
}

func (ErrorLog) Level() Level { return Error }

func (r ErrorLog) MarshalJSON() ([]byte, error) { return EncodeJSON(r) }

// NonCriticalErrorLog is delivered on the nonCriticalError event.
type NonCriticalErrorLog struct {
	BaseLog
	Error error
}

func (NonCriticalErrorLog) Level() Level { return NonCriticalError }

func (r NonCriticalErrorLog) MarshalJSON() ([]byte, error) { return EncodeJSON(r) }

// jsonRecord is the wire shape shared by every record type.
type jsonRecord struct {
	Time    int64    `json:"time"`
	Level   Level    `json:"level"`
	Scope   string   `json:"scope"`
	Message *string  `json:"message,omitempty"`
	Error   *string  `json:"error,omitempty"`
	Trace   []string `json:"trace"`
	Context Context  `json:"context,omitempty"`
}

// EncodeJSON renders log as a single JSON object. Error values are rendered with
// their Error method; a nil error is rendered as an empty string.
func EncodeJSON(log Log) ([]byte, error) {
	base := log.Base()
	record := jsonRecord{
		Time:    base.Time,
		Level:   log.Level(),
		Scope:   base.Scope,
		Trace:   base.Trace,
		Context: base.Context,
	}
	if record.Trace == nil {
		record.Trace = []string{}
	}

	switch typed := log.(type) {
	case InfoLog:
		record.Message = &typed.Message
	case WarningLog:
		record.Message = &typed.Message
	case ErrorLog:
		record.Error = errorText(typed.Error)
	case NonCriticalErrorLog:
		record.Error = errorText(typed.Error)
	}

	return json.Marshal(record)
}

// Payload returns the message of info and warn records or the error text of
// error and nonCriticalError records.
func Payload(log Log) string {
	switch typed := log.(type) {
	case InfoLog:
		return typed.Message
	case WarningLog:
		return typed.Message
	case ErrorLog:
		return *errorText(typed.Error)
	case NonCriticalErrorLog:
		return *errorText(typed.Error)
	default:
		return ""
	}
}

func errorText(err error) *string {
	text := ""
	if err != nil {
		text = err.Error()
	}

	return &text
}
