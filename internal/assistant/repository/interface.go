package repository

import (
	"context"

	"analytics-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// SaveFeedback indexes one feedback record and returns its id. The index
	// is created with the fixed feedback mapping on first write.
	SaveFeedback(ctx context.Context, fb model.AIFeedback) (string, error)
}
