package topic

import "context"

// UseCase clusters the raw issues of a project into named topics.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Clusters returns topic statistics for the filter, generating clusters on
	// first use and scheduling unmapped issues for absorption.
	Clusters(ctx context.Context, input ClustersInput) (ClustersOutput, error)
	// Absorb assigns unmapped issues to existing or new clusters. Idempotent.
	Absorb(ctx context.Context, input AbsorbInput) (AbsorbOutput, error)
	// Labels maps each known issue of the project to its unified label.
	Labels(ctx context.Context, project string, issues []string) (map[string]string, error)
}

// Dispatcher hands an absorption job to whatever runs it.
type Dispatcher interface {
	Dispatch(ctx context.Context, job AbsorbInput) error
}
