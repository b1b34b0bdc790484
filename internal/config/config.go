package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds server configuration. All fields have workable defaults so a
// config file is optional; command-line flags override file values.
type Config struct {
	Addr      string `toml:"addr"`
	DBPath    string `toml:"db_path"`
	JWTSecret string `toml:"jwt_secret"`
	LogLevel  string `toml:"log_level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		DBPath:   "najdeno.sqlite3",
		LogLevel: "info",
	}
}

// Load reads a TOML config file over the defaults. A missing path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
