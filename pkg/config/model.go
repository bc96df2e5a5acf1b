// Package config loads zigdeps settings from .zigdeps.yml with built-in
// defaults, environment overrides and validation.
package config

import "time"

// Config is the effective zigdeps configuration.
//
// Fields:
//   - Manifest: Manifest filename to scan for
//   - Recursive: Descend into subdirectories
//   - Update: Persist latest revisions for out of date dependencies
//   - ContinueOnFail: Isolate failures per declaration instead of aborting
//   - Exclude: doublestar patterns relative to the root
//   - Format: Output format (text, table, json)
//   - Oracle: zig invocation settings
//   - Path: File the configuration was read from; empty for defaults
type Config struct {
	Manifest       string    `yaml:"manifest"`
	Recursive      bool      `yaml:"recursive"`
	Update         bool      `yaml:"update"`
	ContinueOnFail bool      `yaml:"continue_on_fail"`
	Exclude        []string  `yaml:"exclude"`
	Format         string    `yaml:"format"`
	Oracle         OracleCfg `yaml:"oracle"`

	Path string `yaml:"-"`
}

// OracleCfg configures the zig toolchain used as the revision oracle.
//
// Fields:
//   - Command: Executable name or path
//   - TimeoutSeconds: Bound for every invocation; 0 disables the timeout
//   - MinVersion: Oldest accepted `zig version`; empty skips the check
type OracleCfg struct {
	Command        string `yaml:"command"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MinVersion     string `yaml:"min_version"`
}

// Timeout returns the oracle timeout as a duration.
func (o OracleCfg) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}
