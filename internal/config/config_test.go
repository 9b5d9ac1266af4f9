package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/domain"
)

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
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
chain:
  chain_id: 80002
  rpc_url: "https://rpc-amoy.polygon.technology"
  stablecoins:
    - "0xc2132D05D31c914a87C6611C10748AEb04B58e8F"
  native_token: "0x0000000000000000000000000000000000000000"
  proxy_admin: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
  marketplace_proxy: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
  price_feeds:
    - pay_token: "0x0000000000000000000000000000000000000000"
      aggregator: "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B"
subgraph:
  url: "https://api.studio.thegraph.com/query/1/aliveland/v1"
  timeout: 5s
backend:
  host: "https://backend.example.com/"
  rate_limit: 120
gateway:
  url: "https://gateway.example.com/ipfs/"
  token: "secret"
  fallbacks:
    - "https://ipfs.io/ipfs/"
pipeline:
  page_size: 12
  concurrency: 4
cache:
  session_ttl: 10m
rate_limiter:
  providers:
    rpc:
      requests_per_second: 25
      burst: 5
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
				assert.Equal(t, domain.ChainPolygonAmoy, cfg.Chain.ChainID)
				assert.Equal(t, []string{"0xc2132D05D31c914a87C6611C10748AEb04B58e8F"}, cfg.Chain.Stablecoins)
				require.Len(t, cfg.Chain.PriceFeeds, 1)
				assert.Equal(t, "0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B", cfg.Chain.PriceFeeds[0].Aggregator)
				assert.Equal(t, 5*time.Second, cfg.Subgraph.Timeout)
				assert.Equal(t, 120, cfg.Backend.RateLimit)
				assert.Equal(t, "secret", cfg.Gateway.Token)
				assert.Equal(t, []string{"https://ipfs.io/ipfs/"}, cfg.Gateway.Fallbacks)
				assert.Equal(t, 12, cfg.Pipeline.PageSize)
				assert.Equal(t, 4, cfg.Pipeline.Concurrency)
				assert.Equal(t, 10*time.Minute, cfg.Cache.SessionTTL)
				assert.Equal(t, 25, cfg.RateLimiter.Providers["rpc"].RequestsPerSecond)
			},
		},
		{
			name: "config with defaults",
			configFile: `
subgraph:
  url: "https://api.studio.thegraph.com/query/1/aliveland/v1"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, domain.ChainPolygonMainnet, cfg.Chain.ChainID)
				assert.Equal(t, 15*time.Second, cfg.Subgraph.Timeout)
				assert.Equal(t, 600, cfg.Backend.RateLimit)
				assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
				assert.Equal(t, domain.DEFAULT_PAGE_SIZE, cfg.Pipeline.PageSize)
				assert.Equal(t, 8, cfg.Pipeline.Concurrency)
				assert.Equal(t, 30*time.Minute, cfg.Cache.SessionTTL)
				assert.Equal(t, time.Hour, cfg.Cache.MetadataTTL)
				assert.True(t, cfg.Metrics.Enabled)
				assert.Equal(t, "/metrics", cfg.Metrics.Path)
			},
		},
		{
			name:        "missing config file",
			configFile:  "",
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, 8080, cfg.Server.Port)
			},
		},
		{
			name: "unsupported chain",
			configFile: `
chain:
  chain_id: 1
`,
			expectError: true,
		},
		{
			name: "invalid aggregator",
			configFile: `
chain:
  price_feeds:
    - pay_token: "0x0000000000000000000000000000000000000000"
      aggregator: "not-an-address"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				server:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadAPIConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
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

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	// Create temporary directory for env files
	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// Note: Viper uses MARKET_ prefix, so env vars need the prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `MARKET_DEBUG=true
MARKET_DATABASE_HOST=env-host
MARKET_DATABASE_PORT=3306
MARKET_SUBGRAPH_URL=https://env.subgraph/query
MARKET_GATEWAY_TOKEN=env-token
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// per-service local file overrides the shared one
	err = os.WriteFile(filepath.Join(envDir, ".env.api.local"), []byte("MARKET_GATEWAY_TOKEN=local-token\n"), 0600)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
subgraph:
  url: https://file.subgraph/query
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	t.Cleanup(func() {
		for _, key := range []string{"MARKET_DEBUG", "MARKET_DATABASE_HOST", "MARKET_DATABASE_PORT", "MARKET_SUBGRAPH_URL", "MARKET_GATEWAY_TOKEN"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "https://env.subgraph/query", cfg.Subgraph.URL)
	assert.Equal(t, "local-token", cfg.Gateway.Token)
}

func TestLoadSweeperConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
database:
  host: sweeper-host
session_sweeper:
  interval: 5m
  max_age: 48h
`
	err := os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadSweeperConfig(configPath, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sweeper-host", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.SessionSweeper.Interval)
	assert.Equal(t, 48*time.Hour, cfg.SessionSweeper.MaxAge)
	assert.Equal(t, uint64(5), cfg.SessionSweeper.MaxRetries)
}
