package config

import (
	"strings"

	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/oracle"
	"github.com/ajxudir/zigdeps/pkg/output"
	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks the configuration and returns the first problem found as
// a *errors.ConfigError.
func (c *Config) Validate() error {
	manifest := strings.TrimSpace(c.Manifest)
	if manifest == "" {
		return errors.NewConfigError("manifest", "", "must not be empty")
	}
	if strings.ContainsAny(manifest, `/\`) || manifest == "." || manifest == ".." {
		return errors.NewConfigError("manifest", c.Manifest, "must be a bare filename")
	}

	if strings.TrimSpace(c.Oracle.Command) == "" {
		return errors.NewConfigError("oracle.command", "", "must not be empty")
	}
	if c.Oracle.TimeoutSeconds < 0 {
		return errors.NewConfigError("oracle.timeout_seconds", "", "must not be negative")
	}
	if c.Oracle.MinVersion != "" {
		if _, ok := oracle.Canonical(c.Oracle.MinVersion); !ok {
			return errors.NewConfigError("oracle.min_version", c.Oracle.MinVersion, "is not a valid version")
		}
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.NewConfigError("exclude", pattern, "is not a valid glob pattern")
		}
	}

	if _, err := output.ParseFormat(c.Format); err != nil {
		return errors.NewConfigError("format", c.Format, "must be one of text, table, json")
	}

	return nil
}
