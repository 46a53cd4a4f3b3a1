package engine

import (
	"fmt"
	"strings"
)

// ErrorPrefix distinguishes error results from success output.
const ErrorPrefix = "ERROR: "

// Result is the tagged terminal body of a dispatch run.
//
// Using an explicit variant instead of a reserved payload prefix means the
// dispatcher never sniffs strings to recognize completion - a unit either
// carries a Result or it doesn't.
type Result struct {
	Text    string
	IsError bool
}

// Errorf builds an error Result with the standard prefix.
func Errorf(format string, args ...any) Result {
	return Result{Text: ErrorPrefix + fmt.Sprintf(format, args...), IsError: true}
}

// Successf builds a success Result.
func Successf(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...)}
}

// FromError turns a Go error into an error Result, avoiding a doubled
// prefix when the message already carries one.
func FromError(err error) Result {
	msg := err.Error()
	if strings.HasPrefix(msg, ErrorPrefix) {
		return Result{Text: msg, IsError: true}
	}
	return Result{Text: ErrorPrefix + msg, IsError: true}
}
