// Package verbose provides leveled debug logging for zigdeps.
//
// Messages go to stderr through a charmbracelet/log logger. Warnings are always
// printed; debug messages only after Enable (the --verbose flag).
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = newLogger(os.Stderr, log.WarnLevel)
)

// newLogger creates a logger writing to w that filters below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "zigdeps",
		Level:  level,
	})
}

// levelFor returns the logger level matching the enabled flag.
func levelFor(on bool) log.Level {
	if on {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// Enable turns on verbose logging and allows debug messages to be printed.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	logger.SetLevel(levelFor(true))
}

// Disable turns off verbose logging. Warnings are still printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	logger.SetLevel(levelFor(false))
}

// SetWriter sets the output writer for log messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		logger = newLogger(w, levelFor(enabled))
	}
}

// current returns the logger with proper locking for internal use.
func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Infof prints a formatted debug message if enabled.
func Infof(format string, args ...any) {
	current().Debugf(format, args...)
}

// Debug prints a structured debug message with key/value pairs if enabled.
//
// Example:
//
//	verbose.Debug("manifest found", "path", path, "urls", len(urls))
func Debug(msg string, keyvals ...any) {
	current().Debug(msg, keyvals...)
}

// Warnf prints a formatted warning. Warnings are printed even when verbose
// logging is disabled.
func Warnf(format string, args ...any) {
	current().Warn(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// CommandExec logs an oracle invocation if enabled.
//
// Parameters:
//   - cmd: The command line being executed
//   - workDir: The working directory, empty for the current one
func CommandExec(cmd, workDir string) {
	if workDir == "" {
		workDir = "."
	}
	current().Debug("exec", "cmd", cmd, "dir", workDir)
}

// CommandResult logs the outcome of an oracle invocation if enabled.
//
// Parameters:
//   - cmd: The command line that was executed
//   - exitCode: Process exit code
//   - err: Error returned by the execution, nil on success
func CommandResult(cmd string, exitCode int, err error) {
	if err != nil {
		current().Debug("exec failed", "cmd", cmd, "exit", exitCode, "err", err)
		return
	}
	current().Debug("exec ok", "cmd", cmd)
}

// ConfigLoaded logs which configuration file was used if enabled.
func ConfigLoaded(path string) {
	if path == "" {
		current().Debug("using built-in default configuration")
		return
	}
	current().Debug("config loaded", "path", path)
}
