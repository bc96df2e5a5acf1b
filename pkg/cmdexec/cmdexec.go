// Package cmdexec runs external commands for zigdeps and captures their output.
//
// It is the only place that spawns processes. Commands are executed directly
// (no shell), stdout and stderr are captured rather than streamed, and a
// non-zero exit becomes an *errors.ExternalToolError.
package cmdexec

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/verbose"
)

// Spec describes one command invocation.
//
// Fields:
//   - Name: Executable name or path
//   - Args: Arguments passed verbatim
//   - Dir: Working directory; empty means the current one
//   - Timeout: Upper bound for the run; zero means no timeout
type Spec struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// CommandLine returns the command and its arguments joined by spaces.
func (s Spec) CommandLine() string {
	return strings.TrimSpace(s.Name + " " + strings.Join(s.Args, " "))
}

// RunFunc is the function signature for command execution.
//
// Returns:
//   - []byte: Captured stdout of a successful run
//   - error: *errors.ExternalToolError on non-zero exit, timeout or start failure
type RunFunc func(ctx context.Context, spec Spec) ([]byte, error)

// Run is the default command execution function.
//
// It can be replaced with a fake in tests; callers that need isolation
// should take a RunFunc instead of reading this variable.
var Run RunFunc = run

// waitDelay bounds how long Wait blocks on output pipes after the process is killed.
const waitDelay = 2 * time.Second

func run(ctx context.Context, spec Spec) ([]byte, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("empty command")
	}
	if ctx.Err() != nil {
		return nil, toolError(spec, -1, "", ctx.Err())
	}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir

	setProcGroup(cmd)
	cmd.Cancel = func() error { return killProcGroup(cmd) }
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	line := spec.CommandLine()
	verbose.CommandExec(line, spec.Dir)

	err := cmd.Run()
	if err == nil {
		verbose.CommandResult(line, 0, nil)
		return stdout.Bytes(), nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	if spec.Timeout > 0 && stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		verbose.Warnf("command timed out after %s: %s", spec.Timeout, line)
		err = fmt.Errorf("command timed out after %s: %w", spec.Timeout, err)
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = strings.TrimSpace(stdout.String())
	}

	verbose.CommandResult(line, exitCode, err)
	return nil, toolError(spec, exitCode, msg, err)
}

func toolError(spec Spec, exitCode int, stderr string, err error) *errors.ExternalToolError {
	return &errors.ExternalToolError{
		Command:  spec.Name,
		Args:     append([]string(nil), spec.Args...),
		Dir:      spec.Dir,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}
