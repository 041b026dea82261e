// Package config loads the optional YAML settings of the command line tool.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/KarpelesLab/dilithium"
)

var (
	// DefaultConfigFiles is the file names from which we attempt to read configuration.
	DefaultConfigFiles = []string{"config.yml", "config.yaml"}

	defaultConfigDirs = []string{"~/.dilithium"}

	ErrNoConfigFile = errors.New("no configuration file found")
)

const (
	defaultMode    = "2"
	defaultWorkers = 4
)

// Config is the content of a configuration file. Unset fields keep their
// defaults.
type Config struct {
	Mode     string `yaml:"mode"`
	LogLevel string `yaml:"loglevel"`
	Workers  int    `yaml:"workers"`

	sourceFile string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Mode: defaultMode, LogLevel: "info", Workers: defaultWorkers}
}

// Source returns the path the configuration was read from, if any.
func (c *Config) Source() string {
	return c.sourceFile
}

// ResolveMode parses the configured parameter set.
func (c *Config) ResolveMode() (*dilithium.Mode, error) {
	return dilithium.ParseMode(c.Mode)
}

// FindDefaultConfigPath returns the first existing config file in the
// default search directories, or "" if there is none.
func FindDefaultConfigPath() string {
	for _, configDir := range defaultConfigDirs {
		dirPath, err := homedir.Expand(configDir)
		if err != nil {
			continue
		}
		for _, configFile := range DefaultConfigFiles {
			path := filepath.Join(dirPath, configFile)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// ReadConfigFile reads the YAML file at path over the defaults. Keys the
// file sets but Config does not know are returned as warnings.
func ReadConfigFile(path string) (cfg *Config, warnings string, err error) {
	path, err = homedir.Expand(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "cannot expand config path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(ErrNoConfigFile, path)
		}
		return nil, "", errors.Wrap(err, "cannot read config file")
	}

	cfg = Default()
	cfg.sourceFile = path
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", errors.Wrap(err, "error parsing YAML in config file at "+path)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if _, err := cfg.ResolveMode(); err != nil {
		return nil, "", errors.Wrap(err, "invalid mode in config file at "+path)
	}

	// Decode again with known fields only to find typos.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var strict Config
	if err := dec.Decode(&strict); err != nil && err != io.EOF {
		warnings = err.Error()
	}
	return cfg, warnings, nil
}

// Load reads path if it is set, otherwise the first default config file,
// and falls back to the defaults when there is none.
func Load(path string) (cfg *Config, warnings string, err error) {
	if path == "" {
		path = FindDefaultConfigPath()
		if path == "" {
			return Default(), "", nil
		}
	}
	return ReadConfigFile(path)
}
