// Package testutil provides shared test utilities for zigdeps packages.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// capture swaps *target for a pipe while fn runs and returns what was written.
// The pipe is drained concurrently so large outputs cannot block fn.
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}

	old := *target
	*target = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() {
		*target = old
	}()

	fn()

	_ = w.Close()
	out := <-done
	_ = r.Close()
	return out
}

// CaptureStdout captures stdout during the execution of fn and returns the output as a string.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

// CaptureStderr captures stderr during the execution of fn and returns the output as a string.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}
