package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliveland/market-aggregator/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// PriceFeedConfig binds a pay token to the oracle aggregator quoting it in USD
type PriceFeedConfig struct {
	PayToken   string `mapstructure:"pay_token"`
	Aggregator string `mapstructure:"aggregator"`
}

// ChainConfig holds the marketplace deployment on an EVM chain
type ChainConfig struct {
	ChainID          domain.Chain      `mapstructure:"chain_id"`
	RPCURL           string            `mapstructure:"rpc_url"`
	Stablecoins      []string          `mapstructure:"stablecoins"` // 6-decimal pay tokens
	NativeToken      string            `mapstructure:"native_token"`
	ProxyAdmin       string            `mapstructure:"proxy_admin"`
	MarketplaceProxy string            `mapstructure:"marketplace_proxy"`
	PriceFeeds       []PriceFeedConfig `mapstructure:"price_feeds"`
}

// SubgraphConfig holds the marketplace subgraph endpoint
type SubgraphConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// BackendConfig holds the marketplace backend endpoint
type BackendConfig struct {
	Host      string        `mapstructure:"host"`
	RateLimit int           `mapstructure:"rate_limit"` // requests per minute
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
}

// GatewayConfig holds the content gateway used for ipfs:// pointers
type GatewayConfig struct {
	URL       string        `mapstructure:"url"`
	Token     string        `mapstructure:"token"`
	Fallbacks []string      `mapstructure:"fallbacks"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// PipelineConfig holds the paginated enrichment settings
type PipelineConfig struct {
	PageSize    int `mapstructure:"page_size"`
	Concurrency int `mapstructure:"concurrency"`
}

// CacheConfig holds the in-memory cache lifetimes
type CacheConfig struct {
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	MetadataTTL time.Duration `mapstructure:"metadata_ttl"`
}

// MetricsConfig holds the prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RateLimitConfig holds the rate limit of one upstream provider
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds the rate limiting proxy configuration
type RateLimiterConfig struct {
	MaxWorkers   int                        `mapstructure:"max_workers"`
	MaxQueueSize int                        `mapstructure:"max_queue_size"`
	Providers    map[string]RateLimitConfig `mapstructure:"providers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Chain       ChainConfig       `mapstructure:"chain"`
	Subgraph    SubgraphConfig    `mapstructure:"subgraph"`
	Backend     BackendConfig     `mapstructure:"backend"`
	Gateway     GatewayConfig     `mapstructure:"gateway"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`

	// BlocklistPath points to a JSON file of moderated collections per chain id
	BlocklistPath string `mapstructure:"blocklist_path"`
}

// SessionSweeperConfig holds the expiry settings of persisted session snapshots
type SessionSweeperConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	MaxAge     time.Duration `mapstructure:"max_age"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// SweeperConfig holds configuration for the sweeper service
type SweeperConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig       `mapstructure:"database"`
	SessionSweeper SessionSweeperConfig `mapstructure:"session_sweeper"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("chain.chain_id", int64(domain.ChainPolygonMainnet))
	v.SetDefault("subgraph.timeout", "15s")
	v.SetDefault("backend.rate_limit", 600)
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.retries", 2)
	v.SetDefault("gateway.timeout", "20s")
	v.SetDefault("pipeline.page_size", domain.DEFAULT_PAGE_SIZE)
	v.SetDefault("pipeline.concurrency", 8)
	v.SetDefault("cache.session_ttl", "30m")
	v.SetDefault("cache.metadata_ttl", "1h")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("rate_limiter.max_workers", 64)
	v.SetDefault("rate_limiter.max_queue_size", 4096)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper service
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("session_sweeper.interval", "15m")
	v.SetDefault("session_sweeper.max_age", "24h")
	v.SetDefault("session_sweeper.max_retries", 5)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config SweeperConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.SessionSweeper.MaxAge <= 0 {
		return nil, fmt.Errorf("session_sweeper.max_age must be positive")
	}

	return &config, nil
}

// Validate checks the settings the service cannot start without
func (c *APIConfig) Validate() error {
	if !domain.IsValidChain(c.Chain.ChainID) {
		return fmt.Errorf("unsupported chain id: %d", c.Chain.ChainID)
	}
	if c.Pipeline.PageSize <= 0 {
		return fmt.Errorf("pipeline.page_size must be positive")
	}
	if c.Pipeline.Concurrency <= 0 {
		return fmt.Errorf("pipeline.concurrency must be positive")
	}
	for _, feed := range c.Chain.PriceFeeds {
		if !domain.IsValidAddress(feed.Aggregator) {
			return fmt.Errorf("price feed for %s: invalid aggregator %q", feed.PayToken, feed.Aggregator)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("MARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"blocklist_path",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Chain
		"chain.chain_id",
		"chain.rpc_url",
		"chain.stablecoins",
		"chain.native_token",
		"chain.proxy_admin",
		"chain.marketplace_proxy",
		// Subgraph
		"subgraph.url",
		"subgraph.timeout",
		// Backend
		"backend.host",
		"backend.rate_limit",
		"backend.timeout",
		"backend.retries",
		// Gateway
		"gateway.url",
		"gateway.token",
		"gateway.fallbacks",
		"gateway.timeout",
		// Pipeline
		"pipeline.page_size",
		"pipeline.concurrency",
		// Cache
		"cache.session_ttl",
		"cache.metadata_ttl",
		// Metrics
		"metrics.enabled",
		"metrics.path",
		// Rate limiter
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
		// Session sweeper
		"session_sweeper.interval",
		"session_sweeper.max_age",
		"session_sweeper.max_retries",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	// Create candidates list
	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Address returns the listen address of the HTTP server
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
