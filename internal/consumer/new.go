package consumer

import (
	"fmt"
)

// New creates a new consumer server with dependency validation
func New(cfg Config) (*ConsumerServer, error) {
	srv := &ConsumerServer{
		l:         cfg.Logger,
		cfg:       cfg.Config,
		esClient:  cfg.ESClient,
		generator: cfg.Generator,
		discord:   cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided
func (srv *ConsumerServer) validate() error {
	if srv.l == nil {
		return fmt.Errorf("logger is required")
	}
	if srv.cfg == nil {
		return fmt.Errorf("config is required")
	}
	if len(srv.cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}
	if srv.esClient == nil {
		return fmt.Errorf("elasticsearch client is required")
	}
	if srv.generator == nil {
		return fmt.Errorf("generator is required")
	}
	return nil
}
