package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/api/middleware"
	"github.com/aliveland/market-aggregator/internal/api/server"
	"github.com/aliveland/market-aggregator/internal/api/shared/executor"
	"github.com/aliveland/market-aggregator/internal/config"
	"github.com/aliveland/market-aggregator/internal/favorites"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/market"
	"github.com/aliveland/market-aggregator/internal/metadata"
	"github.com/aliveland/market-aggregator/internal/price"
	"github.com/aliveland/market-aggregator/internal/providers/backend"
	"github.com/aliveland/market-aggregator/internal/providers/ethereum"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
	"github.com/aliveland/market-aggregator/internal/ratelimit"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/registry"
	"github.com/aliveland/market-aggregator/internal/stats"
	"github.com/aliveland/market-aggregator/internal/store"
	"github.com/aliveland/market-aggregator/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting market aggregator API", zap.Int64("chain_id", int64(cfg.Chain.ChainID)))

	// Session snapshots survive restarts only when a database is configured
	var dataStore store.Store
	if cfg.Database.Host != "" {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)
		dataStore = store.NewPGStore(db)
	} else {
		logger.WarnCtx(ctx, "Database not configured, sessions are kept in memory only")
	}

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	subgraphHTTP := adapter.NewHTTPClient(cfg.Subgraph.Timeout)
	gatewayHTTP := adapter.NewHTTPClient(cfg.Gateway.Timeout)

	// Chain reads share the rpc provider budget
	rateLimiter, err := ratelimit.NewProxy(cfg.RateLimiter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() {
		if err := rateLimiter.Close(); err != nil {
			logger.Error(err, zap.String("component", "rate_limiter"))
		}
	}()

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial chain rpc", zap.Error(err))
	}
	defer ethClient.Close()
	reader := ethereum.NewThrottledReader(ethereum.NewContractReader(cfg.Chain.ChainID, ethClient), rateLimiter)

	// Initialize providers
	subgraphClient := subgraph.NewClient(subgraphHTTP, cfg.Subgraph.URL, jsonAdapter)
	backendClient := backend.NewClient(backend.Config{
		Host:      cfg.Backend.Host,
		Timeout:   cfg.Backend.Timeout,
		RateLimit: cfg.Backend.RateLimit,
		Retries:   cfg.Backend.Retries,
		UserAgent: "market-aggregator",
	})

	gateway := uri.NewGateway(cfg.Gateway.URL, cfg.Gateway.Token)
	resolver := uri.NewResolver(gatewayHTTP, gateway, cfg.Gateway.Fallbacks)
	fetcher := metadata.NewFetcher(gatewayHTTP, resolver, jsonAdapter, cfg.Cache.MetadataTTL)
	normalizer := price.NewNormalizer(cfg.Chain.Stablecoins)

	// Load collection blocklist
	blocklist := registry.EmptyBlocklist()
	if cfg.BlocklistPath != "" {
		blocklist, err = registry.NewBlocklistLoader(adapter.NewFileSystem(), jsonAdapter).Load(cfg.BlocklistPath, cfg.Chain.ChainID)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load blocklist",
				zap.Error(err),
				zap.String("path", cfg.BlocklistPath))
		}
		logger.InfoCtx(ctx, "Loaded blocklist", zap.String("path", cfg.BlocklistPath), zap.Int("collections", blocklist.Len()))
	} else {
		logger.WarnCtx(ctx, "Blocklist path not configured, all collections will be listed")
	}

	// Read model and services
	j := joiner.New(reader, subgraphClient, fetcher, gateway, normalizer, clock)

	quoteLoader := readmodel.NewQuoteLoader(reader, cfg.Chain, cfg.Pipeline.Concurrency)
	defer quoteLoader.Close()

	sessions := readmodel.NewSessions(readmodel.SessionsConfig{
		TTL:         cfg.Cache.SessionTTL,
		NativeToken: cfg.Chain.NativeToken,
		Gateway:     gateway,
	}, backendClient, quoteLoader, dataStore, clock)

	marketService := market.NewService(market.Config{
		PageSize:    cfg.Pipeline.PageSize,
		Concurrency: cfg.Pipeline.Concurrency,
		FeedTTL:     cfg.Cache.SessionTTL,
		Blocklist:   blocklist,
	}, subgraphClient, backendClient, j)
	defer marketService.Close()

	statsService := stats.NewService(subgraphClient, reader, fetcher, j, normalizer, clock, cfg.Pipeline.Concurrency)
	defer statsService.Close()

	exec := executor.NewExecutor(executor.Dependencies{
		Sessions:  sessions,
		Market:    marketService,
		Stats:     statsService,
		Toggler:   favorites.NewToggler(backendClient, sessions),
		Joiner:    j,
		Backend:   backendClient,
		Blocklist: blocklist,
	})

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	}, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
