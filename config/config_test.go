package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscript/money/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMoneyMoney, cfg.Backend)
	assert.Empty(t, cfg.MockFixture)
	assert.Equal(t, 60*time.Second, cfg.ScriptTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MONEY_BACKEND", "mock")
	t.Setenv("MONEY_MOCK_FIXTURE", "/tmp/fixture.yml")
	t.Setenv("MONEY_SCRIPT_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMock, cfg.Backend)
	assert.Equal(t, "/tmp/fixture.yml", cfg.MockFixture)
	assert.Equal(t, 5*time.Second, cfg.ScriptTimeout)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("MONEY_BACKEND", "sqlite")

	_, err := config.Load()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "valid mock config",
			cfg:  config.Config{Backend: config.BackendMock},
		},
		{
			name: "valid moneymoney config",
			cfg:  config.Config{Backend: config.BackendMoneyMoney, ScriptTimeout: time.Minute},
		},
		{
			name:    "unknown backend",
			cfg:     config.Config{Backend: "sheets"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     config.Config{Backend: config.BackendMoneyMoney, ScriptTimeout: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
