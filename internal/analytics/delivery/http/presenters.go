package http

import (
	"analytics-srv/internal/analytics"
	"analytics-srv/internal/model"
	"analytics-srv/internal/period"
	"analytics-srv/internal/scoring"
	"analytics-srv/pkg/paginator"
	"analytics-srv/pkg/util"
)

// =====================================================
// Request DTOs
// =====================================================

type filterReq struct {
	model.Filter
}

func (r filterReq) toInput() analytics.FilterInput {
	return analytics.FilterInput{Filter: r.Filter}
}

type mentionsReq struct {
	model.Filter
	SortType  string `json:"sort_type"`
	SortOrder string `json:"sort_order"`
	Page      int    `json:"page"`
	PageSize  int64  `json:"page_size"`
}

func (r mentionsReq) toInput() analytics.MentionsInput {
	return analytics.MentionsInput{
		Filter:    r.Filter,
		SortType:  r.SortType,
		SortOrder: r.SortOrder,
		Paginate:  paginator.PaginateQuery{Page: r.Page, Limit: r.PageSize},
	}
}

type presenceReq struct {
	model.Filter
	Interval           string `json:"interval"`
	CompareWithTopics  bool   `json:"compare_with_topics"`
	NumTopicsToCompare int    `json:"num_topics_to_compare" binding:"omitempty,min=1,max=20"`
}

func (r presenceReq) toInput() analytics.PresenceInput {
	return analytics.PresenceInput{
		Filter:             r.Filter,
		Interval:           r.Interval,
		CompareWithTopics:  r.CompareWithTopics,
		NumTopicsToCompare: r.NumTopicsToCompare,
	}
}

type usersReq struct {
	model.Filter
	Limit    int   `json:"limit" binding:"omitempty,min=1"`
	Page     int   `json:"page"`
	PageSize int64 `json:"page_size"`
}

func (r usersReq) toInput() analytics.UsersInput {
	return analytics.UsersInput{
		Filter:   r.Filter,
		Limit:    r.Limit,
		Paginate: paginator.PaginateQuery{Page: r.Page, Limit: r.PageSize},
	}
}

type hashtagsReq struct {
	model.Filter
	SortBy string `json:"sort_by"`
	Limit  int    `json:"limit" binding:"omitempty,min=1,max=100"`
}

func (r hashtagsReq) toInput() analytics.HashtagsInput {
	return analytics.HashtagsInput{Filter: r.Filter, SortBy: r.SortBy, Limit: r.Limit}
}

type clustersReq struct {
	model.Filter
	ClusterSize int `json:"cluster_size" binding:"omitempty,min=1,max=100"`
}

func (r clustersReq) toInput() analytics.ClustersInput {
	return analytics.ClustersInput{Filter: r.Filter, ClusterSize: r.ClusterSize}
}

// =====================================================
// Response DTOs
// =====================================================

type sentimentResp struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

func newSentimentResp(s analytics.SentimentCounts) sentimentResp {
	return sentimentResp{Positive: s.Positive, Negative: s.Negative, Neutral: s.Neutral}
}

type trendPointResp struct {
	Date     string  `json:"date"`
	Mentions int64   `json:"total_mentions"`
	Reach    float64 `json:"total_reach"`
	sentimentResp
}

type trendsResp struct {
	Series        []trendPointResp `json:"series"`
	TotalMentions int64            `json:"total_mentions"`
	TotalReach    float64          `json:"total_reach"`
}

func (h *handler) newTrendsResp(o analytics.TrendsOutput) trendsResp {
	resp := trendsResp{
		Series:        make([]trendPointResp, len(o.Series)),
		TotalMentions: o.TotalMentions,
		TotalReach:    o.TotalReach,
	}
	for i, p := range o.Series {
		resp.Series[i] = trendPointResp{
			Date:          p.Date,
			Mentions:      p.Mentions,
			Reach:         p.Reach,
			sentimentResp: newSentimentResp(p.SentimentCounts),
		}
	}
	return resp
}

type wordResp struct {
	Word              string        `json:"word"`
	Count             int64         `json:"count"`
	Score             float64       `json:"score"`
	DominantSentiment string        `json:"dominant_sentiment"`
	Sentiment         sentimentResp `json:"sentiment"`
}

func (h *handler) newContextResp(o analytics.ContextOutput) []wordResp {
	resp := make([]wordResp, len(o.Words))
	for i, w := range o.Words {
		resp[i] = wordResp{
			Word:              w.Word,
			Count:             w.Count,
			Score:             w.Score,
			DominantSentiment: w.Dominant,
			Sentiment:         newSentimentResp(w.Sentiment),
		}
	}
	return resp
}

type postResp struct {
	ID             string   `json:"id"`
	Channel        string   `json:"channel"`
	LinkPost       string   `json:"link_post"`
	LinkUser       string   `json:"link_user"`
	Username       string   `json:"username"`
	Caption        string   `json:"post_caption"`
	CreatedAt      string   `json:"post_created_at"`
	Sentiment      string   `json:"sentiment"`
	Issue          string   `json:"issue"`
	Hashtags       []string `json:"post_hashtags"`
	MediaLink      string   `json:"post_media_link"`
	UserImageURL   string   `json:"user_image_url"`
	UserFollowers  float64  `json:"user_followers"`
	Engagement     float64  `json:"engagement"`
	Likes          float64  `json:"likes"`
	Comments       float64  `json:"comments"`
	Shares         float64  `json:"shares"`
	Views          float64  `json:"views"`
	ReachScore     float64  `json:"reach_score"`
	ViralScore     float64  `json:"viral_score"`
	InfluenceScore float64  `json:"influence_score"`
}

func newPostResp(p model.Post) postResp {
	created := ""
	if !p.CreatedAt.IsZero() {
		created = util.DateTimeToStr(p.CreatedAt)
	}
	return postResp{
		ID:             p.ID,
		Channel:        p.Channel,
		LinkPost:       p.LinkPost,
		LinkUser:       p.LinkUser,
		Username:       p.Username,
		Caption:        p.Caption,
		CreatedAt:      created,
		Sentiment:      p.Sentiment,
		Issue:          p.Issue,
		Hashtags:       p.Hashtags,
		MediaLink:      p.MediaLink,
		UserImageURL:   p.UserImageURL,
		UserFollowers:  p.UserFollowers,
		Engagement:     p.Engagement(),
		Likes:          p.Likes,
		Comments:       p.Comments,
		Shares:         p.Shares,
		Views:          p.Views,
		ReachScore:     p.ReachScore,
		ViralScore:     p.ViralScore,
		InfluenceScore: util.Round2(scoring.ToUI(p.InfluenceScore)),
	}
}

type mentionsResp struct {
	Data       []postResp                  `json:"data"`
	Pagination paginator.PaginatorResponse `json:"pagination"`
}

func (h *handler) newMentionsResp(o analytics.MentionsOutput) mentionsResp {
	resp := mentionsResp{
		Data:       make([]postResp, len(o.Posts)),
		Pagination: o.Paginator.ToResponse(),
	}
	for i, p := range o.Posts {
		resp.Data[i] = newPostResp(p)
	}
	return resp
}

type metricResp struct {
	Value    float64  `json:"value"`
	Previous float64  `json:"previous"`
	Delta    float64  `json:"delta"`
	Growth   *float64 `json:"growth_percentage"`
	Display  string   `json:"display"`
}

func newMetricResp(m period.Metric) metricResp {
	var growth *float64
	if m.Pct != nil {
		g := util.Round2(*m.Pct)
		growth = &g
	}
	return metricResp{
		Value:    m.Value,
		Previous: m.Previous,
		Delta:    m.Delta,
		Growth:   growth,
		Display:  m.Display,
	}
}

type channelResp struct {
	Channel  string  `json:"channel"`
	Mentions int64   `json:"total_mentions"`
	Reach    float64 `json:"total_reach"`
}

type overviewResp struct {
	Period struct {
		StartDate     string `json:"start_date"`
		EndDate       string `json:"end_date"`
		PrevStartDate string `json:"previous_start_date"`
		PrevEndDate   string `json:"previous_end_date"`
	} `json:"period"`
	Mentions     metricResp            `json:"total_mentions"`
	Reach        metricResp            `json:"total_reach"`
	Interactions metricResp            `json:"total_interactions"`
	Authors      metricResp            `json:"unique_authors"`
	Positive     metricResp            `json:"positive_mentions"`
	Negative     metricResp            `json:"negative_mentions"`
	Neutral      metricResp            `json:"neutral_mentions"`
	Engagement   map[string]metricResp `json:"engagement"`
	Channels     []channelResp         `json:"channels"`
}

func (h *handler) newOverviewResp(o analytics.OverviewOutput) overviewResp {
	var resp overviewResp
	resp.Period.StartDate = o.StartDate
	resp.Period.EndDate = o.EndDate
	resp.Period.PrevStartDate = o.PrevStartDate
	resp.Period.PrevEndDate = o.PrevEndDate
	resp.Mentions = newMetricResp(o.Mentions)
	resp.Reach = newMetricResp(o.Reach)
	resp.Interactions = newMetricResp(o.Interactions)
	resp.Authors = newMetricResp(o.Authors)
	resp.Positive = newMetricResp(o.Positive)
	resp.Negative = newMetricResp(o.Negative)
	resp.Neutral = newMetricResp(o.Neutral)
	resp.Engagement = make(map[string]metricResp, len(o.Engagement))
	for k, m := range o.Engagement {
		resp.Engagement[k] = newMetricResp(m)
	}
	resp.Channels = make([]channelResp, len(o.Channels))
	for i, c := range o.Channels {
		resp.Channels[i] = channelResp{Channel: c.Channel, Mentions: c.Mentions, Reach: c.Reach}
	}
	return resp
}

type breakdownRowResp struct {
	Category string `json:"category"`
	Total    int64  `json:"total_mentions"`
	sentimentResp
}

type breakdownResp struct {
	Rows  []breakdownRowResp `json:"rows"`
	Total breakdownRowResp   `json:"total"`
}

func newBreakdownRow(r analytics.SentimentRow) breakdownRowResp {
	return breakdownRowResp{Category: r.Category, Total: r.Total, sentimentResp: newSentimentResp(r.Sentiment)}
}

func (h *handler) newBreakdownResp(o analytics.BreakdownOutput) breakdownResp {
	resp := breakdownResp{Rows: make([]breakdownRowResp, len(o.Rows)), Total: newBreakdownRow(o.Total)}
	for i, r := range o.Rows {
		resp.Rows[i] = newBreakdownRow(r)
	}
	return resp
}

type presencePointResp struct {
	Date     string  `json:"date"`
	Mentions int64   `json:"total_mentions"`
	Score    float64 `json:"presence_score"`
}

type topicPresenceResp struct {
	Topic    string              `json:"topic"`
	Mentions int64               `json:"total_mentions"`
	Score    float64             `json:"presence_score"`
	Series   []presencePointResp `json:"series"`
}

type presenceResp struct {
	Interval string              `json:"interval"`
	Score    float64             `json:"presence_score"`
	Series   []presencePointResp `json:"series"`
	Topics   []topicPresenceResp `json:"topics,omitempty"`
}

func newPresenceSeries(s []analytics.PresencePoint) []presencePointResp {
	out := make([]presencePointResp, len(s))
	for i, p := range s {
		out[i] = presencePointResp{Date: p.Date, Mentions: p.Mentions, Score: p.Presence}
	}
	return out
}

func (h *handler) newPresenceResp(o analytics.PresenceOutput) presenceResp {
	resp := presenceResp{
		Interval: o.Interval,
		Score:    o.Presence,
		Series:   newPresenceSeries(o.Series),
	}
	for _, t := range o.Topics {
		resp.Topics = append(resp.Topics, topicPresenceResp{
			Topic:    t.Topic,
			Mentions: t.Mentions,
			Score:    t.Presence,
			Series:   newPresenceSeries(t.Series),
		})
	}
	return resp
}

type userResp struct {
	Username     string  `json:"username"`
	Channel      string  `json:"channel"`
	LinkUser     string  `json:"link_user"`
	ImageURL     string  `json:"user_image_url"`
	Mentions     int64   `json:"total_mentions"`
	ShareOfVoice float64 `json:"share_of_voice"`
	Reach        float64 `json:"total_reach"`
	Followers    float64 `json:"user_followers"`
	Subscribers  float64 `json:"subscriber"`
	Connections  float64 `json:"user_connections"`
	Influence    float64 `json:"influence_score"`
}

type usersResp struct {
	Data          []userResp                  `json:"data"`
	TotalMentions int64                       `json:"total_mentions"`
	Pagination    paginator.PaginatorResponse `json:"pagination"`
}

func (h *handler) newUsersResp(o analytics.UsersOutput) usersResp {
	resp := usersResp{
		Data:          make([]userResp, len(o.Users)),
		TotalMentions: o.TotalMentions,
		Pagination:    o.Paginator.ToResponse(),
	}
	for i, u := range o.Users {
		resp.Data[i] = userResp{
			Username:     u.Username,
			Channel:      u.Channel,
			LinkUser:     u.LinkUser,
			ImageURL:     u.ImageURL,
			Mentions:     u.Mentions,
			ShareOfVoice: u.ShareOfVoice,
			Reach:        u.Reach,
			Followers:    u.Followers,
			Subscribers:  u.Subscribers,
			Connections:  u.Connections,
			Influence:    u.Influence,
		}
	}
	return resp
}

type hashtagResp struct {
	Hashtag             string        `json:"hashtag"`
	Mentions            int64         `json:"total_mentions"`
	DominantSentiment   string        `json:"dominant_sentiment"`
	SentimentPercentage float64       `json:"dominant_sentiment_percentage"`
	Sentiment           sentimentResp `json:"sentiment"`
}

func (h *handler) newHashtagsResp(o analytics.HashtagsOutput) []hashtagResp {
	resp := make([]hashtagResp, len(o.Hashtags))
	for i, t := range o.Hashtags {
		resp[i] = hashtagResp{
			Hashtag:             t.Hashtag,
			Mentions:            t.Mentions,
			DominantSentiment:   t.Dominant,
			SentimentPercentage: t.SentimentPercentage,
			Sentiment:           newSentimentResp(t.Sentiment),
		}
	}
	return resp
}

type linkResp struct {
	Link  string `json:"link"`
	Count int64  `json:"total_mentions"`
}

func (h *handler) newLinksResp(o analytics.LinksOutput) []linkResp {
	resp := make([]linkResp, len(o.Links))
	for i, l := range o.Links {
		resp[i] = linkResp{Link: l.Link, Count: l.Count}
	}
	return resp
}

type emojiResp struct {
	Emoji     string `json:"emoji"`
	Codepoint string `json:"codepoint"`
	Count     int64  `json:"total_mentions"`
}

func (h *handler) newEmojisResp(o analytics.EmojisOutput) []emojiResp {
	resp := make([]emojiResp, len(o.Emojis))
	for i, e := range o.Emojis {
		resp[i] = emojiResp{Emoji: e.Emoji, Codepoint: e.Codepoint, Count: e.Count}
	}
	return resp
}

type clusterResp struct {
	Cluster           string        `json:"cluster"`
	Mentions          int64         `json:"total_mentions"`
	Reach             float64       `json:"total_reach"`
	Viral             float64       `json:"total_viral"`
	ShareOfVoice      float64       `json:"share_of_voice"`
	DominantSentiment string        `json:"dominant_sentiment"`
	Sentiment         sentimentResp `json:"sentiment"`
}

type clustersResp struct {
	Clusters      []clusterResp `json:"clusters"`
	TotalMentions int64         `json:"total_mentions"`
}

func (h *handler) newClustersResp(o analytics.ClustersOutput) clustersResp {
	resp := clustersResp{Clusters: make([]clusterResp, len(o.Clusters)), TotalMentions: o.TotalMentions}
	for i, c := range o.Clusters {
		resp.Clusters[i] = clusterResp{
			Cluster:           c.Cluster,
			Mentions:          c.Mentions,
			Reach:             c.Reach,
			Viral:             c.Viral,
			ShareOfVoice:      c.ShareOfVoice,
			DominantSentiment: c.Dominant,
			Sentiment:         newSentimentResp(c.Sentiment),
		}
	}
	return resp
}
