package main

import (
	"context"
	"time"

	"linkdrop-bot/internal/bot"
	"linkdrop-bot/internal/config"
	"linkdrop-bot/internal/links"
	"linkdrop-bot/internal/logger"
	"linkdrop-bot/internal/metrics"
	"linkdrop-bot/internal/shutdown"
	"linkdrop-bot/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		logger.GetLogger().FatalErr(err, "Failed to load configuration")
	}

	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	log := logger.GetLogger()

	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		log.FatalErr(err, "Failed to open storage")
	}

	engine := links.NewEngine(store, links.ParsePolicy(cfg.Claims.Policy), cfg.Claims.MaxRangeSpan, log)

	metricsCtx, metricsCancel := context.WithCancel(context.Background())
	if cfg.Metrics.Enabled {
		metrics.MustRegister(prometheus.DefaultRegisterer)
		metrics.StartServer(metricsCtx, log, cfg.Metrics.Addr)
	}

	tgBot, err := bot.NewBot(cfg, store, engine, log)
	if err != nil {
		log.FatalErr(err, "Failed to create bot")
	}

	if err := tgBot.Start(); err != nil {
		log.FatalErr(err, "Failed to start bot")
	}
	log.Info("Bot started")

	manager := shutdown.NewManager(log, 15*time.Second)
	manager.Register(func(ctx context.Context) error {
		tgBot.Stop()
		return nil
	})
	manager.Register(func(ctx context.Context) error {
		metricsCancel()
		return nil
	})
	manager.Register(func(ctx context.Context) error {
		return store.Close()
	})

	manager.Wait()
	log.Info("Bot stopped")
}
