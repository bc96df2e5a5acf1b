// Package oracle resolves dependency URLs to content hashes through the zig
// toolchain and persists updated pins into manifests.
//
// The zig binary does the network access and the manifest rewrite; this
// package only builds the command lines and captures the output.
package oracle

import (
	"context"
	"time"

	"github.com/ajxudir/zigdeps/pkg/cmdexec"
)

// Oracle resolves URLs to content hashes and persists updated pins.
type Oracle interface {
	// Resolve returns the content hash for url. A pinned URL yields the
	// pinned content, a base URL (fragment stripped) the latest revision.
	Resolve(ctx context.Context, url string) (string, error)

	// Persist fetches baseURL and saves it into the manifest found in dir.
	Persist(ctx context.Context, dir, baseURL string) error
}

// CurrentHash returns the hash of the revision url is pinned to.
func CurrentHash(ctx context.Context, o Oracle, url string) (string, error) {
	return o.Resolve(ctx, url)
}

// LatestHash returns the hash of the latest revision behind baseURL.
func LatestHash(ctx context.Context, o Oracle, baseURL string) (string, error) {
	return o.Resolve(ctx, baseURL)
}

// DefaultCommand is the oracle executable used when none is configured.
const DefaultCommand = "zig"

// Zig is the Oracle backed by `zig fetch`.
//
// Fields:
//   - Command: zig executable name or path
//   - Timeout: Bound for each invocation; zero means none
type Zig struct {
	Command string
	Timeout time.Duration
	run     cmdexec.RunFunc
}

// NewZig returns a Zig oracle using command (DefaultCommand when empty).
func NewZig(command string, timeout time.Duration) *Zig {
	if command == "" {
		command = DefaultCommand
	}
	return &Zig{Command: command, Timeout: timeout, run: cmdexec.Run}
}

// WithRunner replaces the process runner, for tests.
func (z *Zig) WithRunner(run cmdexec.RunFunc) *Zig {
	z.run = run
	return z
}

// Resolve runs `zig fetch <url>` and returns its captured stdout unchanged.
func (z *Zig) Resolve(ctx context.Context, url string) (string, error) {
	out, err := z.exec(ctx, "", "fetch", url)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Persist runs `zig fetch --save <baseURL>` inside dir, which makes zig
// rewrite the manifest of that directory.
func (z *Zig) Persist(ctx context.Context, dir, baseURL string) error {
	_, err := z.exec(ctx, dir, "fetch", "--save", baseURL)
	return err
}

func (z *Zig) exec(ctx context.Context, dir string, args ...string) ([]byte, error) {
	run := z.run
	if run == nil {
		run = cmdexec.Run
	}
	return run(ctx, cmdexec.Spec{
		Name:    z.Command,
		Args:    args,
		Dir:     dir,
		Timeout: z.Timeout,
	})
}
