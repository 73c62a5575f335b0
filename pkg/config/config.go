// Package config loads the optional chef.yaml CLI configuration file.
//
// Everything here is presentation-layer only: prompt coloring, a REPL
// history file path, and diagnostic log verbosity. HistoryFile is
// parsed but nothing in the CLI reads it, so no REPL history is
// persisted. None of it may
// reach the compiler or VM's resource limits or language semantics —
// those stay fixed constants enforced as runtime errors.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Color selects when the REPL colorizes its prompt and error output.
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// Config is the chef.yaml document shape. Every field has a default,
// so a missing or empty file is equivalent to Default().
type Config struct {
	Color       Color  `yaml:"color"`
	HistoryFile string `yaml:"history_file"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when no chef.yaml is found.
func Default() *Config {
	return &Config{Color: ColorAuto, HistoryFile: "", LogLevel: "warn"}
}

// candidateNames are tried in order when no explicit path is given.
var candidateNames = []string{"chef.yaml", "chef.yml"}

// Load reads path if given, otherwise looks for chef.yaml/chef.yml in
// the current directory. When no path is given and neither file
// exists, Load returns Default(). An explicit path that cannot be
// read is an error, and so is a present-but-unparseable file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		for _, name := range candidateNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}
