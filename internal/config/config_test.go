package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file mutate the package level viper instance and run sequentially.

func TestInitializeDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Initialize(""))

	cfg := Get()
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 1600, cfg.Server.Port)
	assert.Equal(t, "ecb", cfg.Dukpt.Mode)
	assert.Equal(t, "00000000000000000000000000000000", cfg.Dukpt.IV)
	assert.Empty(t, cfg.Dukpt.BDK)
	assert.Equal(t, "info", cfg.Log.Level)

	_, err := os.Stat(filepath.Join(os.Getenv("HOME"), appDir, "config.yaml"))
	assert.NoError(t, err)
}

func TestInitializeFromFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GODUKPT_SERVER_PORT", "1700")

	file := filepath.Join(t.TempDir(), "dukpt.yaml")
	content := "dukpt:\n  bdk: 0123456789ABCDEFFEDCBA9876543210\n  mode: cbc\nserver:\n  port: 1650\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	require.NoError(t, Initialize(file))

	cfg := Get()
	assert.Equal(t, "0123456789ABCDEFFEDCBA9876543210", cfg.Dukpt.BDK)
	assert.Equal(t, "cbc", cfg.Dukpt.Mode)
	assert.Equal(t, 1700, cfg.Server.Port)
	assert.NotNil(t, GetViper())

	bdk, err := BDK()
	require.NoError(t, err)
	assert.Equal(t, "0123456789ABCDEFFEDCBA9876543210", bdk)
}

func TestBindFlagOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Initialize(""))

	_, err := BDK()
	assert.ErrorIs(t, err, ErrNoBDK)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("bdk", "", "")
	require.NoError(t, flags.Parse([]string{"--bdk", "FEDCBA98765432100123456789ABCDEF"}))
	require.NoError(t, BindFlag("dukpt.bdk", flags.Lookup("bdk")))

	bdk, err := BDK()
	require.NoError(t, err)
	assert.Equal(t, "FEDCBA98765432100123456789ABCDEF", bdk)
	assert.NoError(t, BindFlag("server.port", nil))
}

func TestInitializeBadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	file := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server: [\n"), 0o600))

	assert.Error(t, Initialize(file))
}
