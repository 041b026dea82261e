package config

import (
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KarpelesLab/dilithium"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadConfigFile(t *testing.T) {
	path := writeConfig(t, "mode: 3\nloglevel: debug\nworkers: 8\n")

	cfg, warnings, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "3", cfg.Mode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, path, cfg.Source())

	m, err := cfg.ResolveMode()
	require.NoError(t, err)
	assert.Same(t, dilithium.Mode3, m)
}

func TestReadConfigFileDefaults(t *testing.T) {
	path := writeConfig(t, "loglevel: warn\n")

	cfg, _, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Mode, cfg.Mode)
	assert.Equal(t, Default().Workers, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestReadConfigFileWarnings(t *testing.T) {
	path := writeConfig(t, "mode: Dilithium-Mode1\nworkerz: 3\n")

	cfg, warnings, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dilithium-Mode1", cfg.Mode)
	assert.Contains(t, warnings, "workerz")
}

func TestReadConfigFileErrors(t *testing.T) {
	_, _, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, ErrNoConfigFile)

	_, _, err = ReadConfigFile(writeConfig(t, "mode: [1, 2\n"))
	assert.Error(t, err)

	_, _, err = ReadConfigFile(writeConfig(t, "mode: 9\n"))
	assert.ErrorIs(t, err, dilithium.ErrInvalidMode)
}

func TestLoadWithoutFile(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	cfg, warnings, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, Default(), cfg)
}
