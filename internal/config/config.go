package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appDir = ".go_dukpt"

var (
	configData Config
	v          *viper.Viper
)

// Config holds all configuration settings.
type Config struct {
	// Server configuration
	Server struct {
		Host string
		Port int
	}
	// DUKPT configuration
	Dukpt struct {
		BDK  string `mapstructure:"bdk"`
		Mode string
		IV   string `mapstructure:"iv"`
	}
	// Logging configuration
	Log struct {
		Level  string
		Format string
	}
}

// Initialize sets up the configuration system. A non-empty cfgFile replaces
// the search path.
func Initialize(cfgFile string) error {
	v = viper.New()

	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/" + appDir)
		v.AddConfigPath("/etc/go_dukpt/")
	}

	setDefaults(v)

	// GODUKPT_DUKPT_BDK, GODUKPT_SERVER_PORT, ...
	v.SetEnvPrefix("GODUKPT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile == "" {
		if err := ensureConfig(); err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if we can't find a config file, we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return load()
}

func load() error {
	configData = Config{}
	if err := v.Unmarshal(&configData); err != nil {
		return fmt.Errorf("unable to decode into config struct: %w", err)
	}

	return nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 1600)

	// The BDK has no default and must be supplied.
	v.SetDefault("dukpt.bdk", "")
	v.SetDefault("dukpt.mode", "ecb")
	v.SetDefault("dukpt.iv", strings.Repeat("0", 32))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "human")
}

// ensureConfig creates a default config file if none exists.
func ensureConfig() error {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		// no home directory, defaults and env only
		return nil
	}

	dir := filepath.Join(home, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := `# GO DUKPT Configuration File
server:
  host: localhost
  port: 1600

dukpt:
  # base derivation key, 32 hex characters; prefer GODUKPT_DUKPT_BDK
  bdk: ""
  mode: ecb
  iv: "00000000000000000000000000000000"

log:
  level: info
  format: human
`
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o600); err != nil {
			return err
		}
	}

	return nil
}

// ErrNoBDK is returned when no base derivation key is configured.
var ErrNoBDK = errors.New("no BDK configured: use --bdk, dukpt.bdk or GODUKPT_DUKPT_BDK")

// BindFlag binds a command line flag to a config key and reloads the
// configuration. A nil flag is ignored.
func BindFlag(key string, flag *pflag.Flag) error {
	if v == nil {
		return errors.New("config not initialized")
	}
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind %s: %w", key, err)
	}

	return load()
}

// BDK returns the configured base derivation key in hex.
func BDK() (string, error) {
	bdk := strings.TrimSpace(configData.Dukpt.BDK)
	if bdk == "" {
		return "", ErrNoBDK
	}

	return bdk, nil
}

// Get returns the current configuration.
func Get() *Config {
	return &configData
}

// GetViper returns the viper instance.
func GetViper() *viper.Viper {
	return v
}
