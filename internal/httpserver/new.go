package httpserver

import (
	"errors"

	"analytics-srv/config"
	"analytics-srv/internal/cache"
	cacheRepo "analytics-srv/internal/cache/repository"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/topic"
	"analytics-srv/pkg/discord"
	pkgES "analytics-srv/pkg/elasticsearch"
	pkgKafka "analytics-srv/pkg/kafka"
	"analytics-srv/pkg/log"
	pkgRedis "analytics-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	config      *config.Config

	// Infrastructure clients
	esClient      pkgES.IElasticsearch
	redisClient   pkgRedis.IRedis
	generator     cache.Generator
	kafkaProducer pkgKafka.IProducer

	// Shared domains, set by setupCoreDomains
	postUC   post.UseCase
	cacheUC  cache.UseCase
	prompts  cacheRepo.Repository
	compiler *query.Compiler
	topicUC  topic.UseCase

	// Monitoring & Notification Configuration
	discord discord.IDiscord
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string
	Config      *config.Config

	// Infrastructure clients
	ESClient    pkgES.IElasticsearch
	RedisClient pkgRedis.IRedis
	Generator   cache.Generator
	// KafkaProducer is required when topics are absorbed through Kafka.
	KafkaProducer pkgKafka.IProducer

	// Monitoring & Notification Configuration
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		// Server Configuration
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.Config,

		// Infrastructure clients
		esClient:      cfg.ESClient,
		redisClient:   cfg.RedisClient,
		generator:     cfg.Generator,
		kafkaProducer: cfg.KafkaProducer,

		// Monitoring & Notification Configuration
		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	// Server Configuration
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}

	// Infrastructure clients
	if srv.esClient == nil {
		return errors.New("esClient is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.generator == nil {
		return errors.New("generator is required")
	}
	if srv.config.Topics.AbsorbMode == config.AbsorbModeKafka && srv.kafkaProducer == nil {
		return errors.New("kafkaProducer is required in kafka absorb mode")
	}

	// discord is optional
	return nil
}
