package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajxudir/zigdeps/pkg/config"
	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/testutil"
	"github.com/ajxudir/zigdeps/pkg/verbose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	urlA  = "https://example.com/a/archive/v1.tar.gz#v1"
	baseA = "https://example.com/a/archive/v1.tar.gz"
	urlB  = "https://example.com/b/archive/main.tar.gz#abc"
	baseB = "https://example.com/b/archive/main.tar.gz"

	hashOld = "1220aaaaaaaaaaaaaaaa"
	hashNew = "1220bbbbbbbbbbbbbbbb"
)

// runCmd executes a fresh root command and returns what it wrote to stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvZig, "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestRootNoManifest tests the empty-result path.
//
// It verifies:
//   - A root without manifests prints the explanatory line and succeeds
//   - A manifest without .url lines is treated the same way
//   - The oracle is never invoked
func TestRootNoManifest(t *testing.T) {
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{})

	t.Run("empty directory", func(t *testing.T) {
		out, err := runCmd(t, t.TempDir(), "--zig", fz.Path)
		require.NoError(t, err)
		assert.Equal(t, "no build.zig.zon file found (or no URLs in it). did you run the command from the wrong directory?\n", out)
	})

	t.Run("manifest without urls", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteManifest(t, root)

		out, err := runCmd(t, root, "--zig", fz.Path)
		require.NoError(t, err)
		assert.Contains(t, out, "no build.zig.zon file found")
	})

	assert.Empty(t, fz.Calls(t))
}

// TestRootInvalidRoot tests that a missing or non-directory root is a
// configuration error with exit code 3.
func TestRootInvalidRoot(t *testing.T) {
	file := testutil.WriteFile(t, filepath.Join(t.TempDir(), "plain.txt"), "x")

	for _, root := range []string{filepath.Join(t.TempDir(), "missing"), file} {
		_, err := runCmd(t, root)
		require.Error(t, err)
		_, ok := errors.IsConfigError(err)
		assert.True(t, ok)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "is not a directory.")
	}
}

// TestRootTooManyArgs tests that only one positional root is accepted.
func TestRootTooManyArgs(t *testing.T) {
	_, err := runCmd(t, t.TempDir(), t.TempDir())
	assert.Error(t, err)
}

// TestRootUpToDate tests a dependency whose pin is the latest revision.
//
// It verifies:
//   - The "already up to date" line is printed with the base URL
//   - Only the two lookups run and nothing is persisted
//   - The manifest is left untouched
func TestRootUpToDate(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteManifest(t, root, urlA)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Hashes: map[string]string{urlA: hashOld, baseA: hashOld},
	})

	out, err := runCmd(t, root, "--zig", fz.Path, "-u")
	require.NoError(t, err)
	assert.Equal(t, "["+baseA+"] already up to date\n", out)

	calls := fz.Calls(t)
	require.Len(t, calls, 2)
	assert.Equal(t, "fetch "+urlA, calls[0].Args)
	assert.Equal(t, "fetch "+baseA, calls[1].Args)
	assert.Empty(t, fz.Saves(t))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// TestRootOutOfDate tests reporting without --update.
func TestRootOutOfDate(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, urlA)
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Hashes: map[string]string{urlA: hashOld, baseA: hashNew},
	})

	out, err := runCmd(t, root, "--zig", fz.Path)
	require.NoError(t, err)
	assert.Equal(t, "["+baseA+"] out of date\n", out)
	assert.Empty(t, fz.Saves(t))
}

// TestRootUpdate tests --update across nested manifests.
//
// It verifies:
//   - Each out of date dependency is saved exactly once
//   - The save runs in the directory of the declaring manifest
//   - The update line shows both 7-character hash prefixes
//   - Up to date dependencies are not saved
func TestRootUpdate(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg", "lib")
	testutil.WriteManifest(t, root, urlA)
	testutil.WriteManifest(t, sub, urlB)

	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Hashes: map[string]string{
			urlA: hashOld, baseA: hashOld,
			urlB: hashOld, baseB: hashNew,
		},
	})

	out, err := runCmd(t, root, "--zig", fz.Path, "-r", "--update")
	require.NoError(t, err)
	assert.Equal(t,
		"["+baseA+"] already up to date\n"+
			"["+baseB+"] updated 1220aaa -> 1220bbb\n",
		out)

	saves := fz.Saves(t)
	require.Len(t, saves, 1)
	assert.Equal(t, "fetch --save "+baseB, saves[0].Args)
	assert.Equal(t, testutil.RealPath(t, sub), saves[0].Dir)
}

// TestRootNonRecursive tests that subdirectories are ignored without -r.
func TestRootNonRecursive(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, filepath.Join(root, "nested"), urlA)
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{})

	out, err := runCmd(t, root, "--zig", fz.Path)
	require.NoError(t, err)
	assert.Contains(t, out, "no build.zig.zon file found")
	assert.Empty(t, fz.Calls(t))
}

// TestRootFailures tests the failure policies.
//
// It verifies:
//   - A URL without a revision fragment aborts with exit code 2
//   - An oracle failure aborts with exit code 2 before later dependencies
//   - With --continue-on-fail the failure is reported and the run exits 1
func TestRootFailures(t *testing.T) {
	t.Run("missing fragment", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteManifest(t, root, baseA)
		fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{})

		_, err := runCmd(t, root, "--zig", fz.Path)
		require.Error(t, err)
		_, ok := errors.IsFormatError(err)
		assert.True(t, ok)
		assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
		assert.Empty(t, fz.Calls(t))
	})

	t.Run("oracle failure aborts", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteManifest(t, root, urlA, urlB)
		fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
			Hashes: map[string]string{urlB: hashOld, baseB: hashOld},
			Fail:   []string{urlA},
		})

		out, err := runCmd(t, root, "--zig", fz.Path)
		require.Error(t, err)
		_, ok := errors.IsExternalToolError(err)
		assert.True(t, ok)
		assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
		assert.Empty(t, out)
		assert.Len(t, fz.Calls(t), 1)
	})

	t.Run("continue on fail", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteManifest(t, root, urlA, urlB)
		fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
			Hashes: map[string]string{urlB: hashOld, baseB: hashOld},
			Fail:   []string{urlA},
		})

		out, err := runCmd(t, root, "--zig", fz.Path, "--continue-on-fail")
		require.Error(t, err)
		assert.Equal(t, errors.ExitPartialFailure, errors.GetExitCode(err))

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "["+baseA+"] failed: "))
		assert.Equal(t, "["+baseB+"] already up to date", lines[1])
	})
}

// TestRootFormatsAfterAbort tests that non-text formats still report the
// declarations processed before a fail-fast abort.
//
// It verifies:
//   - An update saved before the failing declaration appears in the JSON
//   - The table lists the same update
//   - The run still fails with exit code 2
func TestRootFormatsAfterAbort(t *testing.T) {
	setup := func(t *testing.T) (string, *testutil.FakeZig) {
		root := t.TempDir()
		testutil.WriteManifest(t, root, urlA, urlB)
		fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
			Hashes: map[string]string{urlA: hashOld, baseA: hashNew, urlB: hashOld},
			Fail:   []string{baseB},
		})
		return root, fz
	}

	t.Run("json", func(t *testing.T) {
		root, fz := setup(t)

		out, err := runCmd(t, root, "--zig", fz.Path, "-u", "--format", "json")
		require.Error(t, err)
		assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))

		saves := fz.Saves(t)
		require.Len(t, saves, 1)
		assert.Equal(t, "fetch --save "+baseA, saves[0].Args)

		var doc struct {
			Directories map[string][]struct {
				Base   string `json:"base"`
				Status string `json:"status"`
			} `json:"directories"`
			Summary map[string]int `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		require.Len(t, doc.Directories["."], 1)
		assert.Equal(t, baseA, doc.Directories["."][0].Base)
		assert.Equal(t, "Updated", doc.Directories["."][0].Status)
		assert.Equal(t, 1, doc.Summary["updated"])
	})

	t.Run("table", func(t *testing.T) {
		root, fz := setup(t)

		out, err := runCmd(t, root, "--zig", fz.Path, "-u", "--format", "table")
		require.Error(t, err)
		assert.Contains(t, out, baseA)
		assert.Contains(t, out, "Updated")
		assert.NotContains(t, out, baseB)
	})
}

// TestRootVerboseExitCode tests that --verbose logs the exit code of the run.
func TestRootVerboseExitCode(t *testing.T) {
	var logs bytes.Buffer
	verbose.SetWriter(&logs)
	defer verbose.SetWriter(os.Stderr)

	_, err := runCmd(t, filepath.Join(t.TempDir(), "missing"), "--verbose")
	require.Error(t, err)
	assert.Contains(t, logs.String(), "Exit code 3")
}

// TestRootFormats tests the table and JSON renderers end to end.
func TestRootFormats(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, urlA)
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Hashes: map[string]string{urlA: hashOld, baseA: hashNew},
	})

	t.Run("table", func(t *testing.T) {
		out, err := runCmd(t, root, "--zig", fz.Path, "--format", "table")
		require.NoError(t, err)
		assert.NotContains(t, out, "] out of date")
		assert.Contains(t, out, "DEPENDENCY")
		assert.Contains(t, out, baseA)
		assert.Contains(t, out, "1220aaa")
		assert.Contains(t, out, "1220bbb")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCmd(t, root, "--zig", fz.Path, "--format", "json")
		require.NoError(t, err)

		var doc struct {
			Directories map[string][]struct {
				URL     string `json:"url"`
				Base    string `json:"base"`
				Status  string `json:"status"`
				Current string `json:"current"`
				Latest  string `json:"latest"`
			} `json:"directories"`
			Summary map[string]int `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		require.Len(t, doc.Directories["."], 1)
		entry := doc.Directories["."][0]
		assert.Equal(t, urlA, entry.URL)
		assert.Equal(t, baseA, entry.Base)
		assert.Equal(t, "OutOfDate", entry.Status)
		assert.Equal(t, hashOld, entry.Current)
		assert.Equal(t, hashNew, entry.Latest)
		assert.Equal(t, 1, doc.Summary["out_of_date"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runCmd(t, root, "--zig", fz.Path, "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
	})
}

// TestRootConfigFile tests that .zigdeps.yml settings apply and flags win.
//
// It verifies:
//   - recursive and oracle.command are read from the file
//   - exclude patterns from the file skip matching directories
//   - an explicit --format overrides the file
func TestRootConfigFile(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, filepath.Join(root, "app"), urlA)
	testutil.WriteManifest(t, filepath.Join(root, ".zig-cache", "p"), urlB)
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Hashes: map[string]string{urlA: hashOld, baseA: hashOld},
	})
	testutil.WriteFile(t, filepath.Join(root, ".zigdeps.yml"),
		"recursive: true\nformat: json\nexclude:\n  - \".zig-cache/**\"\noracle:\n  command: "+fz.Path+"\n")

	out, err := runCmd(t, root, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "["+baseA+"] already up to date\n", out)
}

// TestRootEnvZig tests that ZIGDEPS_ZIG selects the oracle command.
func TestRootEnvZig(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, urlA)
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Hashes: map[string]string{urlA: hashOld, baseA: hashOld},
	})

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{root})
	t.Setenv(config.EnvZig, fz.Path)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "["+baseA+"] already up to date\n", out.String())
}

// TestRootMinZigVersion tests the toolchain preflight.
func TestRootMinZigVersion(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, urlA)
	fz := testutil.NewFakeZig(t, testutil.FakeZigOptions{
		Version: "0.11.0",
		Hashes:  map[string]string{urlA: hashOld, baseA: hashOld},
	})

	t.Run("too old", func(t *testing.T) {
		_, err := runCmd(t, root, "--zig", fz.Path, "--min-zig-version", "0.12.0")
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "older than required")
	})

	t.Run("satisfied", func(t *testing.T) {
		out, err := runCmd(t, root, "--zig", fz.Path, "--min-zig-version", "0.11.0")
		require.NoError(t, err)
		assert.Contains(t, out, "already up to date")
	})
}

// TestRootMissingZig tests that an unknown oracle command fails with exit code 2.
func TestRootMissingZig(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, urlA)

	_, err := runCmd(t, root, "--zig", filepath.Join(t.TempDir(), "no-such-zig"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
}

// TestExecute tests that Execute maps errors to exit codes.
func TestExecute(t *testing.T) {
	oldExit := exitFunc
	oldArgs := os.Args
	defer func() {
		exitFunc = oldExit
		os.Args = oldArgs
	}()

	var code int
	exitFunc = func(c int) { code = c }

	os.Args = []string{"zigdeps", filepath.Join(t.TempDir(), "missing")}
	stderr := testutil.CaptureStderr(t, Execute)
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "Error: root:")
	assert.Contains(t, stderr, "is not a directory.")
}

// TestExecuteTest tests the non-exiting entry point.
func TestExecuteTest(t *testing.T) {
	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, ExecuteTest(t.TempDir()))
	})
	assert.Contains(t, out, "did you run the command from the wrong directory?")
}
