// Package config loads library configuration from environment variables,
// with an optional .env file for development setups.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend type names accepted in MONEY_BACKEND.
const (
	BackendMoneyMoney = "moneymoney"
	BackendMock       = "mock"
)

// Config holds the settings for constructing a client via money.New.
type Config struct {
	// Backend selects the implementation: "moneymoney" talks to the live
	// application, "mock" serves a fixture file.
	Backend string
	// MockFixture is the YAML fixture path used by the mock backend.
	// Empty means an empty dataset.
	MockFixture string
	// ScriptTimeout bounds a single AppleScript invocation.
	ScriptTimeout time.Duration
	LogLevel      string
}

// Load reads configuration from environment variables and a .env file if
// present.
func Load() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("MONEY_BACKEND", BackendMoneyMoney)
	viper.SetDefault("MONEY_MOCK_FIXTURE", "")
	viper.SetDefault("MONEY_SCRIPT_TIMEOUT", "60s")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	cfg := &Config{
		Backend:       viper.GetString("MONEY_BACKEND"),
		MockFixture:   viper.GetString("MONEY_MOCK_FIXTURE"),
		ScriptTimeout: viper.GetDuration("MONEY_SCRIPT_TIMEOUT"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMoneyMoney, BackendMock:
	default:
		return fmt.Errorf("invalid backend type %q (want %q or %q)", c.Backend, BackendMoneyMoney, BackendMock)
	}
	if c.ScriptTimeout < 0 {
		return fmt.Errorf("script timeout must not be negative, got %s", c.ScriptTimeout)
	}
	return nil
}
