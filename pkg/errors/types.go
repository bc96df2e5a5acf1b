package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates all operations completed successfully.
	ExitSuccess = 0

	// ExitPartialFailure indicates some declarations failed but others succeeded.
	// Only produced with --continue-on-fail.
	ExitPartialFailure = 1

	// ExitFailure indicates the run was aborted by a format, I/O or oracle error.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or argument error.
	// The command could not proceed due to invalid config or missing requirements.
	ExitConfigError = 3
)

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// ConfigError maps to ExitConfigError, PartialSuccessError to ExitPartialFailure.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if _, ok := IsConfigError(err); ok {
		return ExitConfigError
	}
	if _, ok := IsPartialSuccess(err); ok {
		return ExitPartialFailure
	}

	return ExitFailure
}

// ConfigError reports an invalid argument or configuration value detected
// before any manifest is scanned.
//
// Fields:
//   - Field: Name of the argument or config key ("root", "oracle.command", ...)
//   - Value: The rejected value
//   - Reason: Why the value was rejected
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: '%s' %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewConfigError creates a ConfigError.
func NewConfigError(field, value, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// IsConfigError checks if err is a ConfigError and returns it.
func IsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// FormatError reports a dependency URL that cannot be split into a base URL
// and a revision fragment.
type FormatError struct {
	URL    string
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.URL)
}

// NewFormatError creates a FormatError.
func NewFormatError(url, reason string) *FormatError {
	return &FormatError{URL: url, Reason: reason}
}

// IsFormatError checks if err is a FormatError and returns it.
func IsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ExternalToolError reports a failed oracle invocation.
//
// Fields:
//   - Command: Executable that was run
//   - Args: Arguments passed to the executable
//   - Dir: Working directory, empty for the current one
//   - ExitCode: Process exit code, -1 when the process did not exit normally
//   - Stderr: Captured diagnostic output (stdout when stderr was empty)
//   - Err: Underlying error from os/exec or the context
type ExternalToolError struct {
	Command  string
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *ExternalToolError) Error() string {
	var b strings.Builder
	b.WriteString(e.CommandLine())
	if e.Dir != "" {
		fmt.Fprintf(&b, " (in %s)", e.Dir)
	}
	b.WriteString(" failed")
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", e.Stderr)
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// CommandLine returns the command and its arguments joined by spaces.
func (e *ExternalToolError) CommandLine() string {
	return strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
}

// IsExternalToolError checks if err is an ExternalToolError and returns it.
func IsExternalToolError(err error) (*ExternalToolError, bool) {
	var te *ExternalToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// PartialSuccessError indicates that some declarations were processed while
// others failed. The command should exit with ExitPartialFailure.
//
// Fields:
//   - Succeeded: Count of declarations processed without error
//   - Failed: Count of failed declarations
//   - Errors: Errors from the failed declarations, in processing order
type PartialSuccessError struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// Error implements the error interface.
//
// Returns a summary message in the format "X succeeded, Y failed".
func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed)
}

// NewPartialSuccessError creates a PartialSuccessError with the given counts and errors.
func NewPartialSuccessError(succeeded, failed int, errs []error) *PartialSuccessError {
	return &PartialSuccessError{
		Succeeded: succeeded,
		Failed:    failed,
		Errors:    errs,
	}
}

// IsPartialSuccess checks if err is a PartialSuccessError and returns it.
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}
