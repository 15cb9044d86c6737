package usecase

import (
	"context"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/query"
)

func (uc *implUseCase) TopicsCluster(ctx context.Context, input analytics.ClustersInput) (analytics.ClustersOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.ClustersOutput{}, err
	}
	size := input.ClusterSize
	if size <= 0 {
		size = 10
	}
	key := cache.BuildKey(analytics.EndpointTopicsCluster, f.CacheParams(), map[string]string{"cluster_size": intParam(size)})

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.ClustersOutput, error) {
		aggs := query.M{query.AggClusters: query.ClusterTerms(size)}
		out, err := uc.search(ctx, "TopicsCluster", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
		if err != nil {
			return analytics.ClustersOutput{}, err
		}
		total := out.Total()
		return analytics.ClustersOutput{
			Clusters:      decodeClusters(out.Agg(query.AggClusters), total),
			TotalMentions: total,
		}, nil
	})
}
