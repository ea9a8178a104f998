package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingStoreLocation is returned when TX_DB is not set
var ErrMissingStoreLocation = errors.New("TX_DB is not set: a store location is required")

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Location     string `mapstructure:"location"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// NewViper returns a viper instance with defaults and environment bindings
// registered. Flags may be bound on top of it before LoadConfig.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.location", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit names for the variables that do not follow the key layout
	_ = v.BindEnv("database.location", "TX_DB")
	_ = v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	_ = v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")

	return v
}

// LoadConfig decodes the configuration held by v
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Database.Location = strings.TrimSpace(cfg.Database.Location)
	if cfg.Database.Location == "" {
		return nil, ErrMissingStoreLocation
	}

	return cfg, nil
}
