package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// FakeZig is a shell script standing in for the zig toolchain.
//
// It answers "version", prints the configured hash for "fetch <url>", records
// "fetch --save <url>" calls and fails for unknown URLs or URLs listed in Fail.
type FakeZig struct {
	// Path is the executable to pass as the oracle command.
	Path string
	// LogPath receives one "<physical cwd>|<args>" line per invocation.
	LogPath string
}

// FakeZigOptions configures NewFakeZig.
//
// Fields:
//   - Version: Output of "zig version"; defaults to 0.13.0
//   - Hashes: URL to hash printed by "zig fetch <url>"
//   - Fail: URLs for which every fetch mode exits 1
//   - FailSave: URLs for which only "fetch --save" exits 1
type FakeZigOptions struct {
	Version  string
	Hashes   map[string]string
	Fail     []string
	FailSave []string
}

// NewFakeZig writes the fake toolchain into a temp dir. Tests using it are
// skipped on Windows.
func NewFakeZig(t *testing.T, opts FakeZigOptions) *FakeZig {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake zig requires a POSIX shell")
	}
	if opts.Version == "" {
		opts.Version = "0.13.0"
	}

	dir := t.TempDir()
	fz := &FakeZig{
		Path:    filepath.Join(dir, "zig"),
		LogPath: filepath.Join(dir, "calls.log"),
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "printf '%%s|%%s\\n' \"$(pwd -P)\" \"$*\" >> %s\n", shQuote(fz.LogPath))
	b.WriteString("case \"$1\" in\n")
	fmt.Fprintf(&b, "version) printf '%%s\\n' %s; exit 0;;\n", shQuote(opts.Version))
	b.WriteString("fetch)\n")
	b.WriteString("  if [ \"$2\" = \"--save\" ]; then\n")
	b.WriteString("    case \"$3\" in\n")
	for _, url := range append(append([]string{}, opts.Fail...), opts.FailSave...) {
		fmt.Fprintf(&b, "    %s) echo \"error: save failed for $3\" >&2; exit 1;;\n", shQuote(url))
	}
	b.WriteString("    esac\n")
	b.WriteString("    exit 0\n")
	b.WriteString("  fi\n")
	b.WriteString("  case \"$2\" in\n")
	for _, url := range opts.Fail {
		fmt.Fprintf(&b, "  %s) echo \"error: fetch failed for $2\" >&2; exit 1;;\n", shQuote(url))
	}
	for _, url := range sortedKeys(opts.Hashes) {
		fmt.Fprintf(&b, "  %s) printf '%%s\\n' %s;;\n", shQuote(url), shQuote(opts.Hashes[url]))
	}
	b.WriteString("  *) echo \"error: unknown url $2\" >&2; exit 1;;\n")
	b.WriteString("  esac;;\n")
	b.WriteString("*) echo \"error: unsupported command $1\" >&2; exit 2;;\n")
	b.WriteString("esac\n")

	if err := os.WriteFile(fz.Path, []byte(b.String()), 0o755); err != nil {
		t.Fatalf("writing fake zig: %v", err)
	}
	return fz
}

// FakeZigCall is one recorded invocation.
type FakeZigCall struct {
	Dir  string
	Args string
}

// Calls returns the recorded invocations in order.
func (f *FakeZig) Calls(t *testing.T) []FakeZigCall {
	t.Helper()
	data, err := os.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading fake zig log: %v", err)
	}

	var calls []FakeZigCall
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		dir, args, _ := strings.Cut(line, "|")
		calls = append(calls, FakeZigCall{Dir: dir, Args: args})
	}
	return calls
}

// Saves returns the recorded "fetch --save" invocations.
func (f *FakeZig) Saves(t *testing.T) []FakeZigCall {
	t.Helper()
	var saves []FakeZigCall
	for _, c := range f.Calls(t) {
		if strings.HasPrefix(c.Args, "fetch --save ") {
			saves = append(saves, c)
		}
	}
	return saves
}

// RealPath resolves symlinks so paths compare equal to the fake's `pwd -P`.
func RealPath(t *testing.T, path string) string {
	t.Helper()
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("resolving %s: %v", path, err)
	}
	return real
}

func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
