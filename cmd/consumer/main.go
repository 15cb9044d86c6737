package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"analytics-srv/config"
	configES "analytics-srv/config/elasticsearch"
	configGemini "analytics-srv/config/gemini"
	configRedis "analytics-srv/config/redis"
	cacheRedis "analytics-srv/internal/cache/repository/redis"
	cacheUsecase "analytics-srv/internal/cache/usecase"
	"analytics-srv/internal/consumer"
	topicUsecase "analytics-srv/internal/topic/usecase"
	"analytics-srv/pkg/discord"
	"analytics-srv/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting topic absorption consumer...")

	// Elasticsearch
	esClient, err := configES.Connect(ctx, cfg.Elasticsearch)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Elasticsearch: %v", err)
		return
	}
	logger.Info(ctx, "Elasticsearch client initialized")

	// Redis (prompt cache)
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// Gemini
	geminiClient, err := configGemini.Connect(ctx, cfg.Gemini)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize Gemini client: %v", err)
		return
	}
	generator := cacheUsecase.Metered(
		cacheUsecase.NewCachedGenerator(geminiClient, cacheRedis.New(redisClient, logger), logger, cfg.Cache.PromptTTL, topicUsecase.ValidReply),
		"topics",
	)
	logger.Info(ctx, "Gemini client initialized")

	// Discord (optional)
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil
	}

	// Consumer server
	srv, err := consumer.New(consumer.Config{
		Logger:    logger,
		Config:    cfg,
		ESClient:  esClient,
		Generator: generator,
		Discord:   discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create consumer server: %v", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Consumer server error: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server stopped gracefully")
}
