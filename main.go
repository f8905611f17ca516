package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tesilio/lassistant/internal/ai"
	"github.com/tesilio/lassistant/internal/airkorea"
	"github.com/tesilio/lassistant/internal/app"
	"github.com/tesilio/lassistant/internal/cache"
	"github.com/tesilio/lassistant/internal/config"
	"github.com/tesilio/lassistant/internal/digest"
	"github.com/tesilio/lassistant/internal/logger"
	"github.com/tesilio/lassistant/internal/news"
	"github.com/tesilio/lassistant/internal/scheduler"
	"github.com/tesilio/lassistant/internal/telegram"
	"github.com/tesilio/lassistant/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	location := cfg.Location()

	var store cache.Store
	if cfg.RedisAddr != "" {
		redisStore := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		defer redisStore.Close()
		store = redisStore
	} else {
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		store = memStore
	}

	aiClient := ai.NewClient(cfg.OpenAIAPIKey)

	composer := digest.NewComposer(
		weather.NewClient(cfg.DataGoServiceKey, location),
		airkorea.NewClient(cfg.DataGoServiceKey),
		news.NewClient(),
		digest.NewSummarizer(aiClient),
		digest.NewAdvisor(aiClient),
		store,
		digest.Options{
			CityLabel:            cfg.CityLabel,
			GridX:                cfg.GridX,
			GridY:                cfg.GridY,
			Station:              cfg.Station,
			Categories:           cfg.NewsCategories,
			HeadlinesPerCategory: cfg.HeadlinesPerCategory,
			CacheTTL:             cfg.DigestTTL,
			Location:             location,
		},
	)

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramWebhookURL, cfg.TelegramChatID, cfg.TelegramOwnerID, composer)
	if err != nil {
		slog.Error("failed to create telegram bot", "error", err.Error())
		os.Exit(1)
	}

	sched := scheduler.New(location, bot, cfg.WeatherDigestAt, cfg.NewsDigestAt)

	slog.Info("starting lassistant")
	if err := app.New(bot, sched, cfg.ServerPort).Run(ctx); err != nil {
		slog.Error("service stopped with error", "error", err.Error())
		os.Exit(1)
	}
	slog.Info("lassistant stopped gracefully")
}
