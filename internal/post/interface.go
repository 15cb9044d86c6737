package post

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	Search(ctx context.Context, input SearchInput) (SearchOutput, error)
	Count(ctx context.Context, input CountInput) (int64, error)
}
