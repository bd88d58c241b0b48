// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mia-platform/scopelog/internal/eventhub"
	"github.com/mia-platform/scopelog/internal/stack"
)

// framesToSkip drops the capture call and the Logger method that requested it.
const framesToSkip = 1

// selfPrefixes matches every frame that belongs to Logger or ScopedLogger methods,
// closures created inside them included, and every frame whose code lives in
// the files declaring them.
var selfPrefixes = func() []string {
	pc, _, _, _ := runtime.Caller(0)
	self := runtime.FuncForPC(pc).Name()
	return []string{
		stack.FunctionPrefix(self, "Logger"),
		stack.FunctionPrefix(self, "ScopedLogger"),
		stack.CallerFile(),
		scopedFile,
	}
}()

// TraceFunc captures the current call stack. It must drop skip frames above its
// own caller and any frame whose function starts with one of selfPrefixes or
// whose file equals one of them.
type TraceFunc func(skip int, selfPrefixes []string) []string

// Handler receives the records emitted on the event it is subscribed to.
type Handler func(log Log)

// Subscription identifies a handler registered with On or Once.
type Subscription = eventhub.ID

// Options configures a Logger. Every field is optional.
type Options struct {
	// Context is merged into every record emitted by the Logger.
	Context Context
	// StreamOut and StreamErr back the console mirror. They default to os.Stdout
	// and os.Stderr.
	StreamOut io.Writer
	StreamErr io.Writer
	// ConsoleFormat selects the console mirror rendering.
	ConsoleFormat ConsoleFormat
	// Diagnostics receives the panics raised by subscribers.
	Diagnostics hclog.Logger

	CaptureTrace TraceFunc
	Now          func() time.Time
}

// Logger emits records to the handlers subscribed to the level event.
type Logger struct {
	events    *eventhub.Hub[Level, Log]
	streamOut io.Writer
	streamErr io.Writer
	context   Context
	console   *Console

	captureTrace TraceFunc
	now          func() time.Time
}

// Binding exposes a Logger through a single logging function.
type Binding struct {
	Log func(scope, message string, context ...Context) bool
}

// NewLogger creates a Logger configured by opts; nil opts are allowed.
func NewLogger(opts *Options) *Logger {
	if opts == nil {
		opts = &Options{}
	}

	l := &Logger{
		events:       eventhub.New[Level, Log](opts.Diagnostics),
		streamOut:    opts.StreamOut,
		streamErr:    opts.StreamErr,
		captureTrace: opts.CaptureTrace,
		now:          opts.Now,
	}
	if opts.Context != nil {
		l.context = MergeContext(opts.Context)
	}
	if l.captureTrace == nil {
		l.captureTrace = stack.Capture
	}
	if l.now == nil {
		l.now = time.Now
	}

	out, errOut := l.streamOut, l.streamErr
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	l.console = NewConsole(out, errOut, opts.ConsoleFormat)

	return l
}

// Context returns a copy of the default context of the Logger.
func (l *Logger) Context() Context {
	if l.context == nil {
		return nil
	}

	return MergeContext(l.context)
}

// StreamOut returns the configured output sink, nil when the default is in use.
func (l *Logger) StreamOut() io.Writer { return l.streamOut }

// StreamErr returns the configured error sink, nil when the default is in use.
func (l *Logger) StreamErr() io.Writer { return l.streamErr }

// Console returns the human readable mirror built on the Logger sinks.
func (l *Logger) Console() *Console { return l.console }

// On subscribes handler to every record of level.
func (l *Logger) On(level Level, handler Handler) Subscription {
	return l.events.Subscribe(level, eventhub.Handler[Log](handler))
}

// Once subscribes handler to the next record of level only.
func (l *Logger) Once(level Level, handler Handler) Subscription {
	return l.events.SubscribeOnce(level, eventhub.Handler[Log](handler))
}

// Off removes a subscription created by On or Once.
func (l *Logger) Off(level Level, subscription Subscription) {
	l.events.Unsubscribe(level, subscription)
}

// OnInfo subscribes handler to info records.
func (l *Logger) OnInfo(handler func(InfoLog)) Subscription {
	return l.On(Info, func(log Log) { handler(log.(InfoLog)) })
}

// OnWarn subscribes handler to warn records.
func (l *Logger) OnWarn(handler func(WarningLog)) Subscription {
	return l.On(Warn, func(log Log) { handler(log.(WarningLog)) })
}

// OnError subscribes handler to error records.
func (l *Logger) OnError(handler func(ErrorLog)) Subscription {
	return l.On(Error, func(log Log) { handler(log.(ErrorLog)) })
}

// OnNonCriticalError subscribes handler to nonCriticalError records.
func (l *Logger) OnNonCriticalError(handler func(NonCriticalErrorLog)) Subscription {
	return l.On(NonCriticalError, func(log Log) { handler(log.(NonCriticalErrorLog)) })
}

// AttachConsole mirrors every record on the console until the returned function
// is called.
func (l *Logger) AttachConsole() func() {
	subscriptions := make(map[Level]Subscription, len(Levels))
	for _, level := range Levels {
		subscriptions[level] = l.On(level, l.console.Write)
	}

	return func() {
		for level, subscription := range subscriptions {
			l.Off(level, subscription)
		}
	}
}

// Info emits an info record and reports whether any handler received it.
func (l *Logger) Info(scope, message string, context ...Context) bool {
	return l.events.Emit(Info, InfoLog{
		BaseLog: l.base(scope, context),
		Message: message,
	})
}

// Warn emits a warn record and reports whether any handler received it.
func (l *Logger) Warn(scope, message string, context ...Context) bool {
	return l.events.Emit(Warn, WarningLog{
		BaseLog: l.base(scope, context),
		Message: message,
	})
}

// Error emits an error record and reports whether any handler received it.
func (l *Logger) Error(scope string, err error, context ...Context) bool {
	return l.events.Emit(Error, ErrorLog{
		BaseLog: l.base(scope, context),
		Error:   err,
	})
}

// NonCriticalError emits a nonCriticalError record and reports whether any
// handler received it.
func (l *Logger) NonCriticalError(scope string, err error, context ...Context) bool {
	return l.events.Emit(NonCriticalError, NonCriticalErrorLog{
		BaseLog: l.base(scope, context),
		Error:   err,
	})
}

// Bind returns a Binding whose Log function emits info records on l.
func (l *Logger) Bind() Binding {
	return Binding{Log: l.Info}
}

// CreateScope returns a ScopedLogger emitting on l with scope and context preset.
func (l *Logger) CreateScope(scope string, context ...Context) *ScopedLogger {
	return &ScopedLogger{
		main:    l,
		scope:   scope,
		context: MergeContext(context...),
	}
}

func (l *Logger) base(scope string, context []Context) BaseLog {
	layers := make([]Context, 0, len(context)+1)
	layers = append(layers, l.context)
	layers = append(layers, context...)

	return BaseLog{
		Time:    l.now().UnixMilli(),
		Trace:   l.captureTrace(framesToSkip, selfPrefixes),
		Scope:   scope,
		Context: MergeContext(layers...),
	}
}
