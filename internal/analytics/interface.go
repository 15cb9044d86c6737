package analytics

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	KeywordTrends(ctx context.Context, input FilterInput) (TrendsOutput, error)
	ContextOfDiscussion(ctx context.Context, input FilterInput) (ContextOutput, error)
	ListOfMentions(ctx context.Context, input MentionsInput) (MentionsOutput, error)
	AnalysisOverview(ctx context.Context, input FilterInput) (OverviewOutput, error)
	MentionSentimentBreakdown(ctx context.Context, input FilterInput) (BreakdownOutput, error)
	PresenceScore(ctx context.Context, input PresenceInput) (PresenceOutput, error)
	ShareOfVoice(ctx context.Context, input UsersInput) (UsersOutput, error)
	MostFollowers(ctx context.Context, input UsersInput) (UsersOutput, error)
	TrendingHashtags(ctx context.Context, input HashtagsInput) (HashtagsOutput, error)
	TrendingLinks(ctx context.Context, input FilterInput) (LinksOutput, error)
	PopularEmojis(ctx context.Context, input FilterInput) (EmojisOutput, error)
	TopicsCluster(ctx context.Context, input ClustersInput) (ClustersOutput, error)
}
