// Package preflight validates the zig toolchain before any dependency is
// fetched.
package preflight

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/ajxudir/zigdeps/pkg/oracle"
	"github.com/ajxudir/zigdeps/pkg/verbose"
)

// ZigResolutionHint explains how to make a zig toolchain available.
const ZigResolutionHint = "Install Zig: https://ziglang.org/download/ or point --zig / ZIGDEPS_ZIG at an existing binary"

// ValidationError represents a missing command with a resolution hint.
//
// Fields:
//   - Command: The name or path of the missing command
//   - Hint: Installation instructions (empty if no hint available)
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns a formatted error message with resolution instructions.
func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, e.Hint)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: Ensure '%s' is installed and available in your PATH.", e.Command, e.Command)
}

// Run checks that the oracle command resolves to an executable and, when
// minVersion is set, that it reports at least that version.
//
// Commands are executed without a shell, so shell aliases and functions do
// not count as available.
//
// Returns:
//   - error: *ValidationError for a missing command, the *errors.ConfigError
//     from Zig.CheckVersion for an old toolchain, nil otherwise
func Run(ctx context.Context, z *oracle.Zig, minVersion string) error {
	if err := validateCommand(z.Command); err != nil {
		return err
	}
	return z.CheckVersion(ctx, minVersion)
}

// validateCommand checks that cmd exists in PATH, or as a path to an
// executable file.
func validateCommand(cmd string) *ValidationError {
	path, err := exec.LookPath(cmd)
	if err == nil {
		verbose.Debug("preflight: command found", "command", cmd, "path", path)
		return nil
	}

	verbose.Debug("preflight: command not found", "command", cmd, "err", err)
	return &ValidationError{Command: cmd, Hint: GetResolutionHint(cmd)}
}

// GetResolutionHint returns the installation hint for an oracle command.
// Any command is assumed to be a zig toolchain, so every command gets the
// zig hint; an empty command gets none.
func GetResolutionHint(cmd string) string {
	if cmd == "" {
		return ""
	}
	return ZigResolutionHint
}
