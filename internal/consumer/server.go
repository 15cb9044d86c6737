package consumer

import (
	"context"

	"analytics-srv/config"
	"analytics-srv/internal/cache"
	"analytics-srv/pkg/discord"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"
)

// ConsumerServer runs the background Kafka consumers.
type ConsumerServer struct {
	// Core Configuration
	l   log.Logger
	cfg *config.Config

	// Infrastructure clients
	esClient pkgES.IElasticsearch

	// Text generation (already wrapped by the prompt cache)
	generator cache.Generator

	// Monitoring & Notification
	discord discord.IDiscord
}

// Config holds all dependencies for the consumer server
type Config struct {
	// Core Configuration
	Logger log.Logger
	Config *config.Config

	// Infrastructure clients
	ESClient pkgES.IElasticsearch

	Generator cache.Generator

	// Monitoring & Notification
	Discord discord.IDiscord
}

// Run starts the consumer server and blocks until context is cancelled.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "Failed to start consumers: %v", err)
		if srv.discord != nil {
			_ = srv.discord.SendError(ctx, "analytics-srv consumer", "failed to start consumers", err)
		}
		return err
	}

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(ctx, "Shutdown signal received, stopping consumers...")

	srv.stopConsumers(ctx, consumers)

	srv.l.Info(ctx, "Consumer Server stopped gracefully")
	return nil
}
