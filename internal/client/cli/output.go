package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/fatih/color"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The server rejected the request
	ExitCommandError = 2 // Usage or local errors (bad flags, unreadable files, no session)
	ExitUnavailable  = 3 // The server could not be reached
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

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// apiError classifies an error returned by the API client.
func apiError(action string, err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return WrapExitError(ExitUnavailable, action+": server unavailable", err)
	case errors.Is(err, client.ErrUnauthorized):
		return WrapExitError(ExitFailure, action+": not authorized, run `cosmosctl login`", err)
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return NewExitError(ExitCommandError, "not logged in, run `cosmosctl login`")
	default:
		return WrapExitError(ExitFailure, action, err)
	}
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
	boldColor = color.New(color.Bold)
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Success writes data as JSON, or calls text for the human-readable form.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// Error reports err in the configured format.
func (f *OutputFormatter) Error(err error) {
	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: GetExitCode(err), Message: err.Error()},
		})
		return
	}
	errColor.Fprint(f.GetErrWriter(), "Error: ")
	fmt.Fprintln(f.GetErrWriter(), err.Error())
}

// Warn prints a diagnostic to the error writer. It is silent in JSON mode.
func (f *OutputFormatter) Warn(format string, args ...any) {
	if f.Format == "json" {
		return
	}
	warnColor.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
