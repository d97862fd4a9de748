package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riseyn/internal/cache"
	"riseyn/internal/config"
	"riseyn/internal/db"
	"riseyn/internal/game"
	"riseyn/internal/leaderboard"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	rdb, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	svc := game.NewService(pool, logger)
	boards := leaderboard.NewService(rdb)

	if cfg.RunOnce {
		if err := rebuild(ctx, svc, boards, cfg.LeaderboardSize, logger); err != nil {
			logger.Error("leaderboard rebuild failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.LeaderboardEvery)
	defer ticker.Stop()

	logger.Info("worker started", "rebuild_every", cfg.LeaderboardEvery.String(), "keep", cfg.LeaderboardSize)
	if err := rebuild(ctx, svc, boards, cfg.LeaderboardSize, logger); err != nil {
		logger.Error("leaderboard rebuild failed", "err", err)
	}
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			if err := rebuild(ctx, svc, boards, cfg.LeaderboardSize, logger); err != nil {
				logger.Error("leaderboard rebuild failed", "err", err)
			}
		}
	}
}

func rebuild(ctx context.Context, svc *game.Service, boards *leaderboard.Service, keep int, logger *slog.Logger) error {
	started := time.Now()
	standings, err := svc.Standings(ctx)
	if err != nil {
		return err
	}
	if err := boards.Rebuild(ctx, standings, keep); err != nil {
		return err
	}
	logger.Info("leaderboards rebuilt", "players", len(standings), "took", time.Since(started).String())
	return nil
}
