package kol

import "context"

// UseCase builds the key-opinion-leader table of a filter.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Overview(ctx context.Context, input OverviewInput) (OverviewOutput, error)
}
