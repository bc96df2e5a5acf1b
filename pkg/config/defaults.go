package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		// default.yml is embedded at build time; a decode failure is a build bug.
		panic("config: invalid embedded default.yml: " + err.Error())
	}
	return &cfg
}
