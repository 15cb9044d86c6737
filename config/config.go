package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Absorption transports.
const (
	AbsorbModeInProcess = "inprocess"
	AbsorbModeKafka     = "kafka"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Elasticsearch - Post indices, topic clusters, feedback
	Elasticsearch ElasticsearchConfig

	// Redis - Response and prompt cache
	Redis RedisConfig

	// Gemini - Text generation
	Gemini GeminiConfig

	// Kafka - Topic absorption jobs
	Kafka KafkaConfig

	// Domain tuning
	Cache     CacheConfig
	Store     StoreConfig
	Topics    TopicsConfig
	Assistant AssistantConfig
	Scoring   ScoringConfig
	Timezone  string

	InternalConfig InternalConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// ElasticsearchConfig is the configuration for the document store.
type ElasticsearchConfig struct {
	Hosts       []string
	Username    string
	Password    string
	UseSSL      bool
	VerifyCerts bool
	// CACerts is the path of a PEM bundle.
	CACerts string
	Timeout time.Duration
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeminiConfig is the configuration for Google Gemini. Either APIKey, or
// ProjectID with CredsLocation (service account), is required.
type GeminiConfig struct {
	APIKey            string
	ProjectID         string
	CredsLocation     string
	Location          string
	Model             string
	Temperature       float64
	Timeout           time.Duration
	RequestsPerMinute int
}

// KafkaConfig is the configuration for Kafka
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type CacheConfig struct {
	DefaultTTL time.Duration
	ShortTTL   time.Duration
	PromptTTL  time.Duration
}

type StoreConfig struct {
	Timeout       time.Duration
	KOLSampleSize int
}

type TopicsConfig struct {
	Index          string
	IssueLimit     int
	SplitThreshold int
	AbsorbMode     string
	AbsorbTimeout  time.Duration
}

type AssistantConfig struct {
	FeedbackIndex string
	MaxSize       int
	SampleHits    int
}

type ScoringConfig struct {
	NewsPublishers      []string
	ImportanceThreshold float64
}

type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// InternalConfig is the configuration for internal service authentication
type InternalConfig struct {
	// InternalKey is the shared secret for InternalAuth (Authorization header). Optional; leave empty to disable.
	InternalKey    string
	AllowedOrigins []string
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// Local development: .env is optional
	_ = godotenv.Load()

	// Set config file name and paths
	viper.SetConfigName("analytics-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/analytics/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bare names used by the deployment
	_ = viper.BindEnv("es.use_ssl", "USE_SSL")
	_ = viper.BindEnv("es.verify_certs", "VERIFY_CERTS")
	_ = viper.BindEnv("es.ca_certs", "CA_CERTS")
	_ = viper.BindEnv("gemini.model", "GEMINI_DEFAULT_MODEL", "GEMINI_MODEL")

	// Set defaults
	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Elasticsearch
	cfg.Elasticsearch.Hosts = listOf(viper.GetStringSlice("es.host"))
	cfg.Elasticsearch.Username = viper.GetString("es.username")
	cfg.Elasticsearch.Password = viper.GetString("es.password")
	cfg.Elasticsearch.UseSSL = viper.GetBool("es.use_ssl")
	cfg.Elasticsearch.VerifyCerts = viper.GetBool("es.verify_certs")
	cfg.Elasticsearch.CACerts = viper.GetString("es.ca_certs")
	cfg.Elasticsearch.Timeout = viper.GetDuration("es.timeout")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// Gemini
	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.ProjectID = viper.GetString("gemini.project_id")
	cfg.Gemini.CredsLocation = viper.GetString("gemini.creds_location")
	cfg.Gemini.Location = viper.GetString("gemini.location")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	cfg.Gemini.Temperature = viper.GetFloat64("gemini.temperature")
	cfg.Gemini.Timeout = viper.GetDuration("gemini.timeout")
	cfg.Gemini.RequestsPerMinute = viper.GetInt("gemini.requests_per_minute")

	// Kafka
	cfg.Kafka.Brokers = listOf(viper.GetStringSlice("kafka.brokers"))
	cfg.Kafka.Topic = viper.GetString("kafka.topic")
	cfg.Kafka.GroupID = viper.GetString("kafka.group_id")

	// Cache
	cfg.Cache.DefaultTTL = viper.GetDuration("cache.default_ttl")
	cfg.Cache.ShortTTL = viper.GetDuration("cache.short_ttl")
	cfg.Cache.PromptTTL = viper.GetDuration("cache.prompt_ttl")

	// Store
	cfg.Store.Timeout = viper.GetDuration("store.timeout")
	cfg.Store.KOLSampleSize = viper.GetInt("store.kol_sample_size")

	// Topics
	cfg.Topics.Index = viper.GetString("topics.index")
	cfg.Topics.IssueLimit = viper.GetInt("topics.issue_limit")
	cfg.Topics.SplitThreshold = viper.GetInt("topics.split_threshold")
	cfg.Topics.AbsorbMode = strings.ToLower(viper.GetString("topics.absorb_mode"))
	cfg.Topics.AbsorbTimeout = viper.GetDuration("topics.absorb_timeout")

	// Assistant
	cfg.Assistant.FeedbackIndex = viper.GetString("assistant.feedback_index")
	cfg.Assistant.MaxSize = viper.GetInt("assistant.max_size")
	cfg.Assistant.SampleHits = viper.GetInt("assistant.sample_hits")

	// Scoring
	cfg.Scoring.NewsPublishers = listOf(viper.GetStringSlice("scoring.news_publishers"))
	cfg.Scoring.ImportanceThreshold = viper.GetFloat64("scoring.importance_threshold")

	cfg.Timezone = viper.GetString("timezone")

	// Internal auth
	cfg.InternalConfig.InternalKey = viper.GetString("internal.internal_key")
	cfg.InternalConfig.AllowedOrigins = listOf(viper.GetStringSlice("internal.allowed_origins"))

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// listOf flattens comma separated entries, as env vars carry lists that way.
func listOf(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "release")

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	// 1. Elasticsearch
	viper.SetDefault("es.host", []string{"http://localhost:9200"})
	viper.SetDefault("es.use_ssl", false)
	viper.SetDefault("es.verify_certs", true)
	viper.SetDefault("es.timeout", 30*time.Second)

	// 2. Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// 3. Gemini
	viper.SetDefault("gemini.location", "us-central1")
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.temperature", 0.2)
	viper.SetDefault("gemini.timeout", 60*time.Second)
	viper.SetDefault("gemini.requests_per_minute", 60)

	// 4. Kafka (used when topics.absorb_mode is kafka)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "analytics.topic.absorb")
	viper.SetDefault("kafka.group_id", "analytics-topic-absorber")

	// 5. Cache
	viper.SetDefault("cache.default_ttl", 10*time.Minute)
	viper.SetDefault("cache.short_ttl", 2*time.Minute)
	viper.SetDefault("cache.prompt_ttl", 24*time.Hour)

	// 6. Store
	viper.SetDefault("store.timeout", 30*time.Second)
	viper.SetDefault("store.kol_sample_size", 1000)

	// 7. Topics
	viper.SetDefault("topics.index", "topic_clusters")
	viper.SetDefault("topics.issue_limit", 50)
	viper.SetDefault("topics.split_threshold", 100)
	viper.SetDefault("topics.absorb_mode", AbsorbModeInProcess)
	viper.SetDefault("topics.absorb_timeout", 5*time.Minute)

	// 8. Assistant
	viper.SetDefault("assistant.feedback_index", "ai_feedback")
	viper.SetDefault("assistant.max_size", 100)
	viper.SetDefault("assistant.sample_hits", 20)

	// 9. Scoring
	viper.SetDefault("scoring.news_publishers", defaultNewsPublishers)
	viper.SetDefault("scoring.importance_threshold", 50)

	viper.SetDefault("timezone", "UTC")
}

func validate(cfg *Config) error {
	if cfg.HTTPServer.Port == 0 {
		return fmt.Errorf("http_server.port is required")
	}

	if len(cfg.Elasticsearch.Hosts) == 0 {
		return fmt.Errorf("es.host is required")
	}

	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if cfg.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}

	if cfg.Gemini.APIKey == "" && (cfg.Gemini.ProjectID == "" || cfg.Gemini.CredsLocation == "") {
		return fmt.Errorf("gemini.api_key, or gemini.project_id with gemini.creds_location, is required")
	}

	switch cfg.Topics.AbsorbMode {
	case AbsorbModeInProcess:
	case AbsorbModeKafka:
		if len(cfg.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required when topics.absorb_mode is kafka")
		}
		if cfg.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required when topics.absorb_mode is kafka")
		}
	default:
		return fmt.Errorf("topics.absorb_mode must be %q or %q", AbsorbModeInProcess, AbsorbModeKafka)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	return nil
}
