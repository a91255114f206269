package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.SeqURL)
}

func TestLoadConfigFile(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := filepath.Join(t.TempDir(), "lexitab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nstrict: true\nseq_url: http://localhost:5341\n"), 0644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "http://localhost:5341", cfg.SeqURL)
	assert.Equal(t, path, GetConfigFileUsed())
	// untouched keys keep defaults
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := filepath.Join(t.TempDir(), "lexitab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0644))

	t.Setenv("LEXITAB_LOG_LEVEL", "error")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Cleanup(ResetConfig)

	t.Setenv("LEXITAB_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "text", "--log-level", "warn"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigUnchangedFlagIgnored(t *testing.T) {
	t.Cleanup(ResetConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}
