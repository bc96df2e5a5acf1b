package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/verbose"
	"golang.org/x/mod/semver"
)

// Version runs `zig version` and returns the trimmed output.
func (z *Zig) Version(ctx context.Context) (string, error) {
	out, err := z.exec(ctx, "", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckVersion fails with a ConfigError when the toolchain is older than min.
// An empty min disables the check.
//
// Zig development builds ("0.14.0-dev.1+abc") sort before the matching release.
func (z *Zig) CheckVersion(ctx context.Context, min string) error {
	if min == "" {
		return nil
	}
	want, ok := Canonical(min)
	if !ok {
		return errors.NewConfigError("oracle.min_version", min, "is not a valid version")
	}

	raw, err := z.Version(ctx)
	if err != nil {
		return fmt.Errorf("checking zig version: %w", err)
	}
	have, ok := Canonical(raw)
	if !ok {
		return errors.NewConfigError("oracle.command", z.Command, fmt.Sprintf("reported an unparsable version %q", raw))
	}

	verbose.Debug("zig version", "have", raw, "min", min)
	if semver.Compare(have, want) < 0 {
		return errors.NewConfigError("oracle.command", z.Command,
			fmt.Sprintf("version %s is older than required %s", raw, min))
	}
	return nil
}

// Canonical converts a zig version ("0.13.0", "v0.13.0") into a semver
// string with the leading "v" and reports whether it is valid.
func Canonical(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}
