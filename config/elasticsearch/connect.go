package elasticsearch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"analytics-srv/config"
	"analytics-srv/pkg/elasticsearch"
)

var (
	instance elasticsearch.IElasticsearch
	once     sync.Once
	mu       sync.RWMutex
	initErr  error
)

// Connect initializes the document-store client using singleton pattern and pings it.
func Connect(ctx context.Context, cfg config.ElasticsearchConfig) (elasticsearch.IElasticsearch, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	if initErr != nil {
		once = sync.Once{}
		initErr = nil
	}

	var err error
	once.Do(func() {
		clientCfg := elasticsearch.Config{
			Addresses:   addresses(cfg.Hosts, cfg.UseSSL),
			Username:    cfg.Username,
			Password:    cfg.Password,
			VerifyCerts: cfg.VerifyCerts,
			Timeout:     cfg.Timeout,
		}
		if cfg.CACerts != "" {
			pem, e := os.ReadFile(cfg.CACerts)
			if e != nil {
				err = fmt.Errorf("failed to read CA certificates: %w", e)
				initErr = err
				return
			}
			clientCfg.CACert = pem
		}

		client, e := elasticsearch.New(clientCfg)
		if e != nil {
			err = fmt.Errorf("failed to initialize Elasticsearch client: %w", e)
			initErr = err
			return
		}

		if e := client.Ping(ctx); e != nil {
			err = fmt.Errorf("failed to ping Elasticsearch: %w", e)
			initErr = err
			return
		}

		instance = client
	})

	return instance, err
}

// GetClient returns the singleton client instance.
func GetClient() elasticsearch.IElasticsearch {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("Elasticsearch client not initialized. Call Connect() first")
	}
	return instance
}

// HealthCheck pings the store.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return fmt.Errorf("Elasticsearch client not initialized")
	}
	return instance.Ping(ctx)
}

// addresses adds a scheme to bare hosts.
func addresses(hosts []string, useSSL bool) []string {
	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if !strings.Contains(h, "://") {
			h = scheme + h
		}
		out = append(out, h)
	}
	return out
}
