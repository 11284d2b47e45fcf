package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	if content == "" {
		return ""
	}
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configFile, []byte(content), 0600)
	require.NoError(t, err)
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  max_open_conns: 30
  conn_max_lifetime: "1h"
auth:
  jwt_public_key: "test-public-key"
  api_keys:
    - "key1"
    - "key2"
ledger:
  edition_cap: 50
  flag_threshold: 0.75
  fraction_cap: 500
  default_verification: "Label Verified"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, 30, cfg.Database.MaxOpenConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "test-public-key", cfg.Auth.JWTPublicKey)
				assert.Len(t, cfg.Auth.APIKeys, 2)
				assert.Equal(t, 50, cfg.Ledger.EditionCap)
				assert.InDelta(t, 0.75, cfg.Ledger.FlagThreshold, 1e-9)
				assert.Equal(t, int64(500), cfg.Ledger.FractionCap)
				assert.Equal(t, "Label Verified", cfg.Ledger.DefaultVerification)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)                   // default
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)  // default
				assert.Equal(t, 8080, cfg.Server.Port)       // default
				assert.Equal(t, 10, cfg.Server.ReadTimeout)  // default
				assert.Equal(t, 10, cfg.Server.WriteTimeout) // default
				assert.Equal(t, 120, cfg.Server.IdleTimeout) // default
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 21, cfg.Ledger.EditionCap)
				assert.InDelta(t, 0.6, cfg.Ledger.FlagThreshold, 1e-9)
				assert.Equal(t, int64(10000), cfg.Ledger.FractionCap)
				assert.Equal(t, "SOVN Clean", cfg.Ledger.DefaultVerification)
			},
		},
		{
			name:        "missing config file - should work with env vars",
			configFile:  "",
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.NotNil(t, cfg)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 21, cfg.Ledger.EditionCap)
			},
		},
		{
			name: "flag threshold out of range",
			configFile: `
ledger:
  flag_threshold: 1.5
`,
			expectError: true,
		},
		{
			name: "fraction cap below minimum",
			configFile: `
ledger:
  fraction_cap: 1
`,
			expectError: true,
		},
		{
			name: "malformed yaml",
			configFile: `
server: [
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfigFile(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadJournalRelayConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *JournalRelayConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_LEDGER"
  max_reconnects: 5
  reconnect_wait: "5s"
relay:
  consumer: "relay-a"
  batch_size: 50
  poll_interval: "500ms"
  worker:
    pool_size: 4
`,
			expectError: false,
			validate: func(t *testing.T, cfg *JournalRelayConfig) {
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_LEDGER", cfg.NATS.StreamName)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "relay-a", cfg.Relay.Consumer)
				assert.Equal(t, 50, cfg.Relay.BatchSize)
				assert.Equal(t, 500*time.Millisecond, cfg.Relay.PollInterval)
				assert.Equal(t, 4, cfg.Relay.Worker.WorkerPoolSize)
				assert.Equal(t, ":9102", cfg.MetricsAddress) // default
			},
		},
		{
			name: "config with defaults",
			configFile: `
nats:
  url: "nats://localhost:4222"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *JournalRelayConfig) {
				assert.Equal(t, "LEDGER_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "journal-relay", cfg.Relay.Consumer)
				assert.Equal(t, 100, cfg.Relay.BatchSize)
				assert.Equal(t, 2*time.Second, cfg.Relay.PollInterval)
				assert.Equal(t, time.Minute, cfg.Relay.MaxElapsedTime)
				assert.Equal(t, 8, cfg.Relay.Worker.WorkerPoolSize)
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
			},
		},
		{
			name: "missing nats url",
			configFile: `
relay:
  batch_size: 10
`,
			expectError: true,
		},
		{
			name: "invalid batch size",
			configFile: `
nats:
  url: "nats://localhost:4222"
relay:
  batch_size: 0
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadJournalRelayConfig(writeConfigFile(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLedgerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  LedgerConfig
		wantErr bool
	}{
		{"defaults", LedgerConfig{EditionCap: 21, FlagThreshold: 0.6, FractionCap: 10000}, false},
		{"threshold of one", LedgerConfig{EditionCap: 1, FlagThreshold: 1, FractionCap: 2}, false},
		{"zero threshold", LedgerConfig{EditionCap: 21, FlagThreshold: 0, FractionCap: 10000}, true},
		{"negative threshold", LedgerConfig{EditionCap: 21, FlagThreshold: -0.1, FractionCap: 10000}, true},
		{"zero edition cap", LedgerConfig{EditionCap: 0, FlagThreshold: 0.6, FractionCap: 10000}, true},
		{"fraction cap of one", LedgerConfig{EditionCap: 21, FlagThreshold: 0.6, FractionCap: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

// TestConfigWithEnvironmentVariables must stay last: godotenv.Overload sets process environment variables
func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Viper uses the ISSUANCE_ prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `ISSUANCE_DEBUG=true
ISSUANCE_DATABASE_HOST=env-host
ISSUANCE_DATABASE_PORT=3306
ISSUANCE_LEDGER_FLAG_THRESHOLD=0.5
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// Per-service local file overrides the shared one
	serviceEnvFile := filepath.Join(envDir, ".env.api.local")
	err = os.WriteFile(serviceEnvFile, []byte("ISSUANCE_LEDGER_EDITION_CAP=7\n"), 0600)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
ledger:
  edition_cap: 30
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.InDelta(t, 0.5, cfg.Ledger.FlagThreshold, 1e-9)
	assert.Equal(t, 7, cfg.Ledger.EditionCap)
}
