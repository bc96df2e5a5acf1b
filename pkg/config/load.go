package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ajxudir/zigdeps/pkg/constants"
	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// DefaultMaxConfigFileSize caps the size of a configuration file (1 MiB).
const DefaultMaxConfigFileSize int64 = 1 << 20

// EnvZig overrides oracle.command when set.
const EnvZig = "ZIGDEPS_ZIG"

// Load returns the configuration for a scan of root.
//
// If configPath is set, that file must exist. Otherwise .zigdeps.yml in root
// is used when present, and the built-in defaults when not. Keys missing
// from the file keep their default value. ZIGDEPS_ZIG then overrides
// oracle.command. The result is not validated; call Validate after applying
// command-line overrides.
//
// Returns:
//   - *Config: the loaded configuration
//   - error: *errors.ConfigError for unreadable, oversized or invalid files
func Load(configPath, root string) (*Config, error) {
	cfg := Default()

	path := configPath
	if path == "" {
		local := filepath.Join(root, constants.ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			path = local
		}
	}

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.Path = path
	}
	verbose.ConfigLoaded(cfg.Path)

	if zig := os.Getenv(EnvZig); zig != "" {
		verbose.Debug("oracle command from environment", "env", EnvZig, "command", zig)
		cfg.Oracle.Command = zig
	}

	return cfg, nil
}

// loadFile decodes the YAML file at path on top of cfg. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewConfigError("config", path, fmt.Sprintf("cannot be read: %v", err))
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return errors.NewConfigError("config", path,
			fmt.Sprintf("is too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxConfigFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewConfigError("config", path, fmt.Sprintf("cannot be read: %v", err))
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.NewConfigError("config", path, fmt.Sprintf("is invalid YAML: %v", err))
	}
	return nil
}
