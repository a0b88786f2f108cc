package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	JWT struct {
		// Secret signs every issued token. Rotating it invalidates all
		// outstanding tokens at once.
		Secret   string
		Lifetime time.Duration
	}
}

// Load reads config from environment (NOTES_ prefix) and optional notes-api.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("notes-api")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("jwt.lifetime", "24h")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.JWT.Secret = v.GetString("jwt.secret")

	lifetime, err := time.ParseDuration(v.GetString("jwt.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTES_JWT_LIFETIME: %w", err)
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("NOTES_JWT_LIFETIME must be positive")
	}
	cfg.JWT.Lifetime = lifetime

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("NOTES_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("NOTES_DB_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("NOTES_JWT_SECRET is required")
	}

	return cfg, nil
}
