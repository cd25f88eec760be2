package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vtstv/EventBot/internal/adapters/discord"
	"github.com/vtstv/EventBot/internal/config"
	"github.com/vtstv/EventBot/internal/infrastructure/database"
	"github.com/vtstv/EventBot/internal/infrastructure/i18n"
	"github.com/vtstv/EventBot/internal/infrastructure/metrics"
	"github.com/vtstv/EventBot/internal/templates"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "eventbot",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database init failed", "error", err)
	}
	defer pool.Close()

	eventRepo := database.NewEventRepository(pool)
	participantRepo := database.NewParticipantRepository(pool)
	guildRepo := database.NewGuildSettingsRepository(pool)

	catalog, err := templates.Load(cfg.TemplatesDir, logger)
	if err != nil {
		logger.Fatal("template catalog failed", "error", err)
	}
	translator := i18n.NewTranslator(cfg.DefaultLocale, logger)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	if cfg.MetricsAddr != "" {
		go metrics.Serve(cfg.MetricsAddr, registry, logger)
	}

	bot, err := discord.NewBot(cfg, eventRepo, participantRepo, guildRepo, catalog, translator, m, logger)
	if err != nil {
		logger.Fatal("bot init failed", "error", err)
	}
	if err := bot.Start(); err != nil {
		logger.Fatal("bot stopped", "error", err)
	}
}
