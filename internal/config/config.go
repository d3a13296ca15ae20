// Package config resolves rhc settings from ~/.rhc/config.toml, RHC_*
// environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".rhc"
	envPrefix  = "RHC"

	StoragePathKey         = "storage.path"
	BookingsPathKey        = "bookings.path"
	AllowRoleSwitchKey     = "session.allow_role_switch"
	StrictRolesKey         = "guard.strict_roles"
	RequireSymptomNotesKey = "booking.require_symptom_notes"
	LogLevelKey            = "log.level"
	LogFormatKey           = "log.format"
	ServerAddrKey          = "server.addr"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Guard   GuardConfig   `mapstructure:"guard"`
	Booking BookingConfig `mapstructure:"booking"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`

	v *viper.Viper
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	AllowRoleSwitch bool `mapstructure:"allow_role_switch"`
}

type GuardConfig struct {
	StrictRoles bool `mapstructure:"strict_roles"`
}

type BookingConfig struct {
	RequireSymptomNotes bool `mapstructure:"require_symptom_notes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration rooted at home. A missing config file is not an
// error.
func Load(home string) (*Config, error) {
	v := viper.New()
	baseDir := filepath.Join(home, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(StoragePathKey, filepath.Join(baseDir, "state"))
	v.SetDefault(BookingsPathKey, filepath.Join(baseDir, "bookings.toml"))
	v.SetDefault(AllowRoleSwitchKey, true)
	v.SetDefault(StrictRolesKey, false)
	v.SetDefault(RequireSymptomNotesKey, false)
	v.SetDefault(LogLevelKey, "warn")
	v.SetDefault(LogFormatKey, "auto")
	v.SetDefault(ServerAddrKey, "127.0.0.1:8080")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path is empty")
	}
	if strings.TrimSpace(c.v.GetString(BookingsPathKey)) == "" {
		return errors.New("bookings.path is empty")
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log.format %q is not one of auto, console, json", c.Log.Format)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is empty")
	}

	return nil
}

// Viper exposes the underlying settings for adapters that read their own
// keys.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

func (c *Config) BookingsPath() string {
	return c.v.GetString(BookingsPathKey)
}

// LoadDotEnv loads variables from path into the process environment
// without overriding ones already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}
