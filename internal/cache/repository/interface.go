package repository

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache: miss")

//go:generate mockery --name Repository
type Repository interface {
	Get(ctx context.Context, opt GetOptions) ([]byte, error)
	Save(ctx context.Context, opt SaveOptions) error
}
