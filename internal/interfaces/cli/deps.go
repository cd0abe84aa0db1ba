package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/application/compound"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/database/postgres"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/database/postgres/repositories"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/database/redis"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/logging"
	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/monitoring/prometheus"
)

// offlineService builds a compound service with no persistence backend.
// Drafting, editing, and describing molecules never touch the repository, so
// template and edit commands work without a database.
func offlineService(cmd *cobra.Command) (*compound.Service, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, err
	}
	return compound.NewService(nil, cliCtx.Logger), nil
}

// engineService builds the fully wired compound service: PostgreSQL
// repository, Redis cache and locks (best-effort), and the metrics endpoint
// when enabled. The returned cleanup releases every acquired resource.
func engineService(ctx context.Context, cmd *cobra.Command) (*compound.Service, func(), error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg := cliCtx.Config
	logger := cliCtx.Logger

	conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanups := []func(){func() { conn.Close() }}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	repo := repositories.NewMoleculeRepository(conn.Pool(), logger)
	opts := []compound.Option{}

	// Redis is an optimization; a failed connection degrades to direct
	// repository access.
	if client, redisErr := redis.NewClient(cfg.Redis, logger); redisErr != nil {
		logger.Warn("redis unavailable, continuing without cache", logging.Err(redisErr))
	} else {
		cleanups = append(cleanups, func() {
			if closeErr := client.Close(); closeErr != nil {
				logger.Warn("failed to close redis client", logging.Err(closeErr))
			}
		})
		cacheOpts := []redis.CacheOption{}
		if cfg.Redis.KeyPrefix != "" {
			cacheOpts = append(cacheOpts, redis.WithPrefix(cfg.Redis.KeyPrefix))
		}
		if cfg.Redis.DefaultTTL > 0 {
			cacheOpts = append(cacheOpts, redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
		}
		opts = append(opts,
			compound.WithCache(redis.NewRedisCache(client, logger, cacheOpts...)),
			compound.WithLockFactory(redis.NewLockFactory(client, logger)),
		)
	}

	if cfg.Metrics.Enabled {
		metrics, metricsCleanup, metricsErr := startMetrics(cfg.Metrics.Addr, cfg.Metrics.Path, logger)
		if metricsErr != nil {
			logger.Warn("metrics endpoint unavailable", logging.Err(metricsErr))
		} else {
			cleanups = append(cleanups, metricsCleanup)
			opts = append(opts, compound.WithMetrics(metrics))
		}
	}

	return compound.NewService(repo, logger, opts...), cleanup, nil
}

// startMetrics registers the engine metric families and serves the
// Prometheus exposition endpoint on its own listener.
func startMetrics(addr, path string, logger logging.Logger) (*prometheus.AppMetrics, func(), error) {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "reactionhub",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, collector.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Warn("metrics server stopped", logging.Err(serveErr))
		}
	}()

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("metrics server shutdown failed", logging.Err(shutdownErr))
		}
	}
	return prometheus.NewAppMetrics(collector), cleanup, nil
}
