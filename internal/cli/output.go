package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/siso-ai/siso-database/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Statement failure (syntax error, missing table, etc.)
	ExitCommandError = 2 // Command error (invalid paths, bad flags, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for statement results.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// statementResult is the JSON form of one executed statement.
type statementResult struct {
	Statement string `json:"statement"`
	Output    string `json:"output"`
	Error     bool   `json:"error"`
}

// Result prints one statement outcome in the configured format.
func (f *OutputFormatter) Result(stmt, output string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(statementResult{
			Statement: stmt,
			Output:    output,
			Error:     strings.HasPrefix(output, engine.ErrorPrefix),
		})
	}
	_, err := fmt.Fprintln(f.Writer, output)
	return err
}
