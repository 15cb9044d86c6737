package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListOf(t *testing.T) {
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, listOf([]string{"a.com, b.com", " ", "c.com"}))
	assert.Nil(t, listOf(nil))
}

func validConfig() *Config {
	return &Config{
		HTTPServer:    HTTPServerConfig{Port: 8080},
		Elasticsearch: ElasticsearchConfig{Hosts: []string{"http://es:9200"}},
		Redis:         RedisConfig{Host: "redis", Port: 6379},
		Gemini:        GeminiConfig{APIKey: "k"},
		Topics:        TopicsConfig{AbsorbMode: AbsorbModeInProcess},
		Timezone:      "Asia/Jakarta",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "service account instead of key", mutate: func(c *Config) {
			c.Gemini = GeminiConfig{ProjectID: "p", CredsLocation: "/creds.json"}
		}},
		{name: "no store", mutate: func(c *Config) { c.Elasticsearch.Hosts = nil }, wantErr: true},
		{name: "no gemini credentials", mutate: func(c *Config) { c.Gemini = GeminiConfig{ProjectID: "p"} }, wantErr: true},
		{name: "unknown absorb mode", mutate: func(c *Config) { c.Topics.AbsorbMode = "queue" }, wantErr: true},
		{name: "kafka mode without brokers", mutate: func(c *Config) { c.Topics.AbsorbMode = AbsorbModeKafka }, wantErr: true},
		{name: "kafka mode", mutate: func(c *Config) {
			c.Topics.AbsorbMode = AbsorbModeKafka
			c.Kafka = KafkaConfig{Brokers: []string{"k:9092"}, Topic: "t"}
		}},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Base" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, (&Config{Timezone: "nowhere"}).Location())
	assert.Equal(t, "Asia/Jakarta", (&Config{Timezone: "Asia/Jakarta"}).Location().String())
}
