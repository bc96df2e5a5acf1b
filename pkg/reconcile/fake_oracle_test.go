package reconcile

import (
	"context"
	"fmt"

	"github.com/ajxudir/zigdeps/pkg/errors"
)

// persistCall records one Persist invocation.
type persistCall struct {
	Dir  string
	Base string
}

// fakeOracle answers Resolve from a map and records every call.
type fakeOracle struct {
	hashes      map[string]string
	failResolve map[string]bool
	failPersist map[string]bool
	resolved    []string
	persisted   []persistCall
	// sequence, when set, overrides hashes with per-call answers.
	sequence map[string][]string
}

func newFakeOracle(hashes map[string]string) *fakeOracle {
	return &fakeOracle{
		hashes:      hashes,
		failResolve: map[string]bool{},
		failPersist: map[string]bool{},
		sequence:    map[string][]string{},
	}
}

func (f *fakeOracle) Resolve(_ context.Context, url string) (string, error) {
	f.resolved = append(f.resolved, url)
	if f.failResolve[url] {
		return "", &errors.ExternalToolError{Command: "zig", Args: []string{"fetch", url}, ExitCode: 1, Stderr: "error: unable to fetch"}
	}
	if seq := f.sequence[url]; len(seq) > 0 {
		f.sequence[url] = seq[1:]
		return seq[0], nil
	}
	hash, ok := f.hashes[url]
	if !ok {
		return "", fmt.Errorf("unexpected url %s", url)
	}
	return hash, nil
}

func (f *fakeOracle) Persist(_ context.Context, dir, base string) error {
	f.persisted = append(f.persisted, persistCall{Dir: dir, Base: base})
	if f.failPersist[base] {
		return &errors.ExternalToolError{Command: "zig", Args: []string{"fetch", "--save", base}, Dir: dir, ExitCode: 1}
	}
	return nil
}
