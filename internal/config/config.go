// Package config handles the configuration directory, file, environment and
// flag overrides for the store session.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TASKMAN"

	// ConfigName is the config file name (without extension) in Dir.
	ConfigName = "config"

	// DefaultCollection is the Firestore collection holding tasks.
	DefaultCollection = "tasks"
)

// Config holds the settings needed to open the store session.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// ProjectID is the Google Cloud project hosting the Firestore database.
	ProjectID string `mapstructure:"project_id" validate:"required"`

	// Credentials is the path to a service account key file.
	// Empty means Application Default Credentials.
	Credentials string `mapstructure:"credentials" validate:"omitempty,file"`

	// EmulatorHost points the client at a Firestore emulator (host:port).
	EmulatorHost string `mapstructure:"emulator_host" validate:"omitempty,hostname_port"`

	// Collection is the document collection holding tasks.
	Collection string `mapstructure:"collection" validate:"required"`

	// RequestTimeout bounds each store call. Zero disables the limit.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
}

// Overrides carries values given on the command line.
// Empty strings and false leave the loaded value untouched.
type Overrides struct {
	ProjectID   string
	Credentials string
	Debug       bool
}

// keys lists every setting bound to an environment variable.
var keys = []string{
	"project_id",
	"credentials",
	"emulator_host",
	"collection",
	"request_timeout",
	"debug",
}

// Load reads configuration from multiple sources in priority order:
// 1. Defaults
// 2. config.yaml in configDir (optional)
// 3. TASKMAN_* environment variables
// 4. Command-line overrides
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
func Load(configDir string, o Overrides) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault("collection", DefaultCollection)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("debug", false)

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding environment variable for %s: %w", key, err)
		}
	}

	if o.ProjectID != "" {
		v.Set("project_id", o.ProjectID)
	}
	if o.Credentials != "" {
		v.Set("credentials", o.Credentials)
	}
	if o.Debug {
		v.Set("debug", true)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Dir = dir

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path of the optional config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigName+".yaml")
}

// UsesEmulator reports whether the store session targets an emulator.
func (c *Config) UsesEmulator() bool {
	return c.EmulatorHost != ""
}
