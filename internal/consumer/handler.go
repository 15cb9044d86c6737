package consumer

import (
	"context"
	"fmt"

	postES "analytics-srv/internal/post/repository/elasticsearch"
	postUsecase "analytics-srv/internal/post/usecase"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	topicConsumer "analytics-srv/internal/topic/delivery/kafka/consumer"
	topicES "analytics-srv/internal/topic/repository/elasticsearch"
	topicUsecase "analytics-srv/internal/topic/usecase"
)

// domainConsumers holds references to all domain consumers for cleanup
type domainConsumers struct {
	topicConsumer topicConsumer.Consumer
}

// setupDomains initializes the repositories, usecases and consumers.
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	cfg := srv.cfg
	loc := cfg.Location()

	postUC := postUsecase.New(postES.New(srv.esClient, srv.l), srv.l, cfg.Store.Timeout)
	compiler := query.NewCompiler(
		scoring.New(cfg.Scoring.NewsPublishers),
		query.Clock{Location: loc},
		query.Config{ImportanceThreshold: cfg.Scoring.ImportanceThreshold},
	)

	// Jobs received here are absorbed in this process.
	topicUC := topicUsecase.New(
		srv.l,
		topicES.New(srv.esClient, srv.l, cfg.Topics.Index),
		postUC,
		compiler,
		srv.generator,
		nil,
		topicUsecase.Config{
			IssueLimit:     cfg.Topics.IssueLimit,
			SplitThreshold: cfg.Topics.SplitThreshold,
			AbsorbTimeout:  cfg.Topics.AbsorbTimeout,
		},
	)

	cons, err := topicConsumer.New(topicConsumer.Config{
		Logger:  srv.l,
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
		UseCase: topicUC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create topic consumer: %w", err)
	}

	srv.l.Infof(ctx, "Topic domain initialized")

	return &domainConsumers{topicConsumer: cons}, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.topicConsumer.ConsumeAbsorbJobs(ctx); err != nil {
		return fmt.Errorf("failed to start topic consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.topicConsumer != nil {
		if err := consumers.topicConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing topic consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}
