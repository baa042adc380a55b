package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larriantoniy/tg_order_bot/internal/adapters/eligibility"
	"github.com/larriantoniy/tg_order_bot/internal/adapters/fulfillment"
	"github.com/larriantoniy/tg_order_bot/internal/adapters/menu"
	"github.com/larriantoniy/tg_order_bot/internal/adapters/tg"
	"github.com/larriantoniy/tg_order_bot/internal/config"
	"github.com/larriantoniy/tg_order_bot/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"

	shutdownGrace = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := setupLogger(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	if cfg.AuthMode {
		cli, err := tg.NewClientFromJSON(cfg.ApiID, cfg.ApiHash, cfg.BaseDir, cfg.Session, logger, tg.ClientModeAuth)
		if err != nil {
			logger.Error("auth failed", "error", err)
			os.Exit(1)
		}
		cli.Close()
		logger.Info("session authorized", "session", cfg.Session)
		return
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run error", "error", err)
		os.Exit(1)
	}

	logger.Info("exit")
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	matcher, err := menu.LoadMatcher(ctx, config.NewJSONCatalogRepo(cfg.CatalogPath), logger.With("component", "menu"))
	if err != nil {
		return err
	}

	cli, err := tg.NewClientFromJSON(cfg.ApiID, cfg.ApiHash, cfg.BaseDir, cfg.Session, logger.With("session", cfg.Session), tg.ClientModeRuntime)
	if err != nil {
		return err
	}
	defer cli.Close()

	gates := eligibility.All{cli}
	if cfg.Redis.Addr != "" {
		rdb, err := eligibility.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		gates = append(gates, eligibility.NewRedisAllowlist(rdb, cfg.Redis.AllowlistKey, logger.With("component", "allowlist")))
		logger.Info("redis allowlist enabled", "addr", cfg.Redis.Addr, "key", cfg.Redis.AllowlistKey)
	}

	script := fulfillment.NewScript(cfg.Fulfillment.Bin, cfg.Fulfillment.Script, logger.With("component", "fulfillment"))
	submitter := useCases.NewSubmitter(logger.With("component", "submitter"), script)
	engine := useCases.NewEngine(logger.With("component", "engine"), cli, gates, matcher, submitter)

	runner := useCases.NewRunner(cli, engine, logger)
	err = runner.Run(ctx)

	// ответы по уже отправленным заказам должны успеть уйти до Close
	done := make(chan struct{})
	go func() {
		engine.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownGrace):
		logger.Warn("pending submissions did not finish before shutdown", "grace", shutdownGrace)
	}
	return err
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	switch env {
	case envDev:
		level = slog.LevelDebug
	case envProd:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
