package http

import (
	"analytics-srv/internal/kol"
	"analytics-srv/internal/model"
)

type overviewReq struct {
	model.Filter
	OwnerID     string `json:"owner_id"`
	ProjectName string `json:"project_name"`
	Limit       int    `json:"limit" binding:"omitempty,min=1,max=100"`
}

func (r overviewReq) toInput() kol.OverviewInput {
	return kol.OverviewInput{
		Filter:      r.Filter,
		OwnerID:     r.OwnerID,
		ProjectName: r.ProjectName,
		Limit:       r.Limit,
	}
}

type rowResp struct {
	LinkUser          string   `json:"link_user"`
	Username          string   `json:"username"`
	Channel           string   `json:"channel"`
	UserImageURL      string   `json:"user_image_url"`
	UserFollowers     float64  `json:"user_followers"`
	TotalPosts        int64    `json:"total_posts"`
	TotalReach        float64  `json:"total_reach"`
	TotalViral        float64  `json:"total_viral"`
	InfluenceScore    float64  `json:"influence_score"`
	UnifiedIssues     []string `json:"unified_issue"`
	SentimentPositive int64    `json:"sentiment_positive"`
	SentimentNegative int64    `json:"sentiment_negative"`
	SentimentNeutral  int64    `json:"sentiment_neutral"`
	IsNegativeDriver  bool     `json:"is_negative_driver"`
	ShareOfVoice      float64  `json:"share_of_voice"`
}

type overviewResp struct {
	Data    []rowResp `json:"data"`
	Sampled int       `json:"sampled_posts"`
}

func (h *handler) newOverviewResp(o kol.OverviewOutput) overviewResp {
	resp := overviewResp{Data: make([]rowResp, len(o.Rows)), Sampled: o.Sampled}
	for i, r := range o.Rows {
		issues := r.Issues
		if issues == nil {
			issues = []string{}
		}
		resp.Data[i] = rowResp{
			LinkUser:          r.LinkUser,
			Username:          r.Username,
			Channel:           r.Channel,
			UserImageURL:      r.ImageURL,
			UserFollowers:     r.Followers,
			TotalPosts:        r.Posts,
			TotalReach:        r.Reach,
			TotalViral:        r.Viral,
			InfluenceScore:    r.Influence,
			UnifiedIssues:     issues,
			SentimentPositive: r.Sentiment.Positive,
			SentimentNegative: r.Sentiment.Negative,
			SentimentNeutral:  r.Sentiment.Neutral,
			IsNegativeDriver:  r.NegativeDriver,
			ShareOfVoice:      r.ShareOfVoice,
		}
	}
	return resp
}
