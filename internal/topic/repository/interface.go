package repository

import (
	"context"

	"analytics-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// List returns the clusters of a project. With Issues set, only clusters
	// whose list_issue intersects Issues are returned.
	List(ctx context.Context, opt ListOptions) ([]model.TopicCluster, error)
	// Upsert merges each cluster by uuid: list_issue only grows, label and
	// description are overwritten when non-empty.
	Upsert(ctx context.Context, clusters []model.TopicCluster) (UpsertSummary, error)
}
