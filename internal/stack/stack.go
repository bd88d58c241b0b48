// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package stack captures the current call stack as human readable call sites.
package stack

import (
	"runtime"
	"strconv"
	"strings"
)

const maxDepth = 64

// Capture returns the call sites of the current goroutine, innermost first.
// skip counts the frames to drop above the caller of Capture: 0 keeps the caller
// itself, 1 drops it as well. Frames whose function name starts with one of
// selfPrefixes, or whose source file equals one of them, are then removed
// wherever they appear. Matching the
// file catches closures that the compiler renamed after the enclosing caller
// when it inlined them.
func Capture(skip int, selfPrefixes []string) []string {
	pcs := make([]uintptr, maxDepth)
	// runtime.Callers and Capture itself
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	trace := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !isSelf(frame, selfPrefixes) {
			trace = append(trace, FormatFrame(frame))
		}
		if !more {
			break
		}
	}

	return trace
}

// FormatFrame renders a frame as "function (file:line)".
func FormatFrame(frame runtime.Frame) string {
	var builder strings.Builder
	builder.WriteString(frame.Function)
	if frame.File != "" {
		builder.WriteString(" (")
		builder.WriteString(frame.File)
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(frame.Line))
		builder.WriteByte(')')
	}

	return builder.String()
}

// FunctionPrefix returns the prefix shared by every method of the named type
// declared in the package of pkgFunc. pkgFunc is any fully qualified function name
// from that package, as reported by runtime.FuncForPC.
func FunctionPrefix(pkgFunc, typeName string) string {
	return packagePath(pkgFunc) + ".(*" + typeName + ")."
}

// packagePath strips the function part from a fully qualified function name.
func packagePath(function string) string {
	lastSlash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[lastSlash+1:], '.')
	if dot < 0 {
		return function
	}

	return function[:lastSlash+1+dot]
}

// CallerFile returns the source file of the function calling CallerFile.
func CallerFile() string {
	_, file, _, _ := runtime.Caller(1)
	return file
}

func isSelf(frame runtime.Frame, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(frame.Function, prefix) {
			return true
		}
		if frame.File != "" && frame.File == prefix {
			return true
		}
	}

	return false
}
