package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riseyn/internal/api"
	"riseyn/internal/auth"
	"riseyn/internal/cache"
	"riseyn/internal/config"
	"riseyn/internal/db"
	"riseyn/internal/economy"
	"riseyn/internal/game"
	"riseyn/internal/leaderboard"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	poolOpts := db.DefaultPoolOptions
	if cfg.DBMaxConns > 0 {
		poolOpts.MaxConns = cfg.DBMaxConns
	}
	pool, err := db.ConnectWith(ctx, cfg.DatabaseURL, poolOpts)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Error("migrate failed", "err", err)
			os.Exit(1)
		}
		logger.Info("schema migrated")
	}

	npc, err := economy.ParseNPCStrategy(cfg.ShootoutNPC)
	if err != nil {
		logger.Error("invalid shootout npc", "err", err)
		os.Exit(1)
	}
	opts := []game.Option{game.WithNPCStrategy(npc)}

	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, leaderboards served from postgres", "err", err)
		} else {
			defer rdb.Close()
			opts = append(opts, game.WithScoreboard(leaderboard.NewService(rdb)))
		}
	}

	authClient := auth.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	if cfg.SupabaseJWTSecret != "" {
		authClient = authClient.WithLocalVerification(auth.NewJWTVerifier(cfg.SupabaseJWTSecret))
	}
	gameSvc := game.NewService(pool, logger, opts...)

	server := api.New(cfg, logger, authClient, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("rise api listening", "addr", cfg.Addr, "shootout_npc", npc)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
