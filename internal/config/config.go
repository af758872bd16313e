// Package config handles endmark project configuration file loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the per-project defaults file.
const ConfigFileName = ".endmarkrc.yaml"

// Config holds project-wide defaults for flags a user would otherwise
// have to repeat on every invocation.
type Config struct {
	// IndentWith is the literal string repeated per indent level.
	IndentWith string `yaml:"indent_with"`
	// IgnoreIndent makes BLOCK_START/BLOCK_END (not INDENT/DEDENT) drive
	// scope by default.
	IgnoreIndent bool `yaml:"ignore_indent"`
	// Validate controls whether a formatting run re-tokenizes its own
	// output to check semantic equivalence.
	Validate bool `yaml:"validate"`
	// ProjectRoot is the directory the config file was found in, or the
	// starting directory if none was found.
	ProjectRoot string `yaml:"-"`
}

// Load searches for ConfigFileName starting from the current working
// directory, walking up the directory tree. If none is found, it
// returns the defaults.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromPath(cwd)
}

// LoadFromPath searches for ConfigFileName starting from startPath,
// walking up the directory tree. If found, it parses the configuration.
// If not found, returns default configuration with startPath as
// ProjectRoot.
func LoadFromPath(startPath string) (*Config, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to resolve absolute path for %q: %w",
			startPath,
			err,
		)
	}

	currentPath := absPath
	for {
		configPath := filepath.Join(currentPath, ConfigFileName)

		if _, err := os.Stat(configPath); err == nil {
			cfg, err := parseConfigFile(configPath)
			if err != nil {
				return nil, err
			}
			cfg.ProjectRoot = currentPath

			if err := cfg.validate(); err != nil {
				return nil, fmt.Errorf(
					"invalid configuration in %s: %w",
					configPath,
					err,
				)
			}

			return cfg, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}

	return &Config{
		IndentWith:  "\t",
		Validate:    true,
		ProjectRoot: absPath,
	}, nil
}

// parseConfigFile reads and parses a .endmarkrc.yaml file.
func parseConfigFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{Validate: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var yamlErr *yaml.TypeError
		if errors.As(err, &yamlErr) {
			return nil, fmt.Errorf("invalid YAML syntax: %v", yamlErr.Errors)
		}

		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.IndentWith == "" {
		cfg.IndentWith = "\t"
	}

	return &cfg, nil
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if strings.ContainsAny(c.IndentWith, "\r\n") {
		return errors.New("indent_with cannot contain a line break")
	}
	return nil
}
