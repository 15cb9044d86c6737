package main

import (
	"context"
	"fmt"

	"analytics-srv/config"
	configES "analytics-srv/config/elasticsearch"
	configGemini "analytics-srv/config/gemini"
	configKafka "analytics-srv/config/kafka"
	configRedis "analytics-srv/config/redis"
	"analytics-srv/internal/httpserver"
	"analytics-srv/pkg/discord"
	pkgKafka "analytics-srv/pkg/kafka"
	"analytics-srv/pkg/log"
)

// @title       Social Media Analytics API
// @description Analytics, topic clustering and assistant endpoints over the social media indices.
// @version     1
// @BasePath    /api/v1
func main() {
	// 1. Load configuration
	// Reads config from YAML file and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// 3. Initialize Elasticsearch
	esClient, err := configES.Connect(ctx, cfg.Elasticsearch)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Elasticsearch: ", err)
		return
	}
	logger.Infof(ctx, "Elasticsearch connected successfully to %v", cfg.Elasticsearch.Hosts)

	// 4. Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	// 5. Initialize Gemini (each domain puts it behind the prompt cache)
	geminiClient, err := configGemini.Connect(ctx, cfg.Gemini)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Gemini: ", err)
		return
	}
	logger.Infof(ctx, "Gemini initialized with model %s", cfg.Gemini.Model)

	// 6. Initialize Kafka producer (kafka absorb mode only)
	var producer pkgKafka.IProducer
	if cfg.Topics.AbsorbMode == config.AbsorbModeKafka {
		producer, err = configKafka.ConnectProducer(cfg.Kafka)
		if err != nil {
			logger.Error(ctx, "Failed to connect to Kafka: ", err)
			return
		}
		defer configKafka.DisconnectProducer()
		logger.Infof(ctx, "Kafka producer connected to %v", cfg.Kafka.Brokers)
	}

	// 7. Initialize Discord (optional)
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil
	}

	// 8. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server Configuration
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Config:      cfg,

		// Infrastructure clients
		ESClient:      esClient,
		RedisClient:   redisClient,
		Generator:     geminiClient,
		KafkaProducer: producer,

		// Monitoring & Notification Configuration
		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
