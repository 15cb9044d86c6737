package httpserver

import (
	"context"

	"analytics-srv/config"
	"analytics-srv/internal/cache"
	cacheRedis "analytics-srv/internal/cache/repository/redis"
	cacheUsecase "analytics-srv/internal/cache/usecase"
	postES "analytics-srv/internal/post/repository/elasticsearch"
	postUsecase "analytics-srv/internal/post/usecase"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	"analytics-srv/internal/topic"
	topicProducer "analytics-srv/internal/topic/delivery/kafka/producer"
	topicES "analytics-srv/internal/topic/repository/elasticsearch"
	topicUsecase "analytics-srv/internal/topic/usecase"
)

// promptGenerator puts the model behind the prompt cache and the text-gen metrics.
func (srv *HTTPServer) promptGenerator(purpose string, accept cache.Accept) cache.Generator {
	cached := cacheUsecase.NewCachedGenerator(srv.generator, srv.prompts, srv.l, srv.config.Cache.PromptTTL, accept)
	return cacheUsecase.Metered(cached, purpose)
}

// setupCoreDomains builds the domains other endpoints share: posts, cache,
// the query compiler and the topic manager.
func (srv *HTTPServer) setupCoreDomains(ctx context.Context) error {
	cfg := srv.config

	srv.postUC = postUsecase.New(postES.New(srv.esClient, srv.l), srv.l, cfg.Store.Timeout)
	srv.cacheUC = cacheUsecase.New(cacheRedis.New(srv.redisClient, srv.l), srv.l)
	srv.prompts = cacheRedis.New(srv.redisClient, srv.l)

	engine := scoring.New(cfg.Scoring.NewsPublishers)
	srv.compiler = query.NewCompiler(engine, query.Clock{Location: cfg.Location()}, query.Config{
		ImportanceThreshold: cfg.Scoring.ImportanceThreshold,
	})

	var dispatcher topic.Dispatcher
	if cfg.Topics.AbsorbMode == config.AbsorbModeKafka {
		dispatcher = topicProducer.New(srv.l, srv.kafkaProducer)
		srv.l.Infof(ctx, "Topic absorption dispatched to Kafka topic %s", cfg.Kafka.Topic)
	}
	srv.topicUC = topicUsecase.New(
		srv.l,
		topicES.New(srv.esClient, srv.l, cfg.Topics.Index),
		srv.postUC,
		srv.compiler,
		srv.promptGenerator("topics", topicUsecase.ValidReply),
		dispatcher,
		topicUsecase.Config{
			IssueLimit:     cfg.Topics.IssueLimit,
			SplitThreshold: cfg.Topics.SplitThreshold,
			AbsorbTimeout:  cfg.Topics.AbsorbTimeout,
		},
	)

	srv.l.Infof(ctx, "Core domains (Post, Cache, Topic) initialized with %d news publishers", len(engine.Publishers()))
	return nil
}
