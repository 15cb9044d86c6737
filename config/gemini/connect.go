package gemini

import (
	"context"
	"fmt"
	"sync"

	"analytics-srv/config"
	"analytics-srv/pkg/gemini"
)

var (
	instance gemini.IGemini
	once     sync.Once
	mu       sync.RWMutex
	initErr  error
)

// Connect initializes the Gemini client using singleton pattern.
func Connect(ctx context.Context, cfg config.GeminiConfig) (gemini.IGemini, error) {
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
		client, e := gemini.NewGemini(ctx, gemini.GeminiConfig{
			APIKey:            cfg.APIKey,
			ProjectID:         cfg.ProjectID,
			CredentialsFile:   cfg.CredsLocation,
			Location:          cfg.Location,
			Model:             cfg.Model,
			Temperature:       cfg.Temperature,
			Timeout:           cfg.Timeout,
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
		if e != nil {
			err = fmt.Errorf("failed to initialize Gemini client: %w", e)
			initErr = err
			return
		}
		instance = client
	})

	return instance, err
}

// GetClient returns the singleton Gemini client.
func GetClient() gemini.IGemini {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("Gemini client not initialized. Call Connect() first")
	}
	return instance
}
