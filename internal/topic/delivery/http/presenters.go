package http

import (
	"analytics-srv/internal/model"
	"analytics-srv/internal/topic"
)

type topicsReq struct {
	model.Filter
	ProjectName string `json:"project_name" binding:"required"`
}

func (r topicsReq) toInput() topic.ClustersInput {
	return topic.ClustersInput{Filter: r.Filter, ProjectName: r.ProjectName}
}

type topicResp struct {
	Topic             string          `json:"unified_issue"`
	Description       string          `json:"description"`
	ClusterIDs        []string        `json:"uuids"`
	Issues            []string        `json:"list_issue"`
	Posts             int64           `json:"total_posts"`
	Reach             float64         `json:"total_reach"`
	ShareOfVoice      float64         `json:"share_of_voice"`
	DominantSentiment string          `json:"dominant_sentiment"`
	Sentiment         topic.Sentiment `json:"sentiment"`
}

type topicsResp struct {
	Topics     []topicResp `json:"topics"`
	TotalPosts int64       `json:"total_posts"`
	Pending    int         `json:"pending"`
	Generated  bool        `json:"generated"`
}

func (h *handler) newTopicsResp(o topic.ClustersOutput) topicsResp {
	resp := topicsResp{
		Topics:     make([]topicResp, len(o.Topics)),
		TotalPosts: o.TotalPosts,
		Pending:    o.Pending,
		Generated:  o.Cold,
	}
	for i, t := range o.Topics {
		resp.Topics[i] = topicResp{
			Topic:             t.Topic,
			Description:       t.Description,
			ClusterIDs:        t.ClusterIDs,
			Issues:            t.Issues,
			Posts:             t.Posts,
			Reach:             t.Reach,
			ShareOfVoice:      t.ShareOfVoice,
			DominantSentiment: t.Sentiment.Dominant(),
			Sentiment:         t.Sentiment,
		}
	}
	return resp
}
