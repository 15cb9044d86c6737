package repository

import "context"

//go:generate mockery --name ESRepository
type ESRepository interface {
	Search(ctx context.Context, opt SearchOptions) ([]byte, error)
	Count(ctx context.Context, opt CountOptions) (int64, error)
}
