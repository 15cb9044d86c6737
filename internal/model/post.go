package model

import "time"

// Post is one social post as read from a channel index.
type Post struct {
	ID             string    `json:"id"`
	Index          string    `json:"index,omitempty"`
	Channel        string    `json:"channel"`
	LinkPost       string    `json:"link_post"`
	LinkUser       string    `json:"link_user,omitempty"`
	Username       string    `json:"username"`
	Caption        string    `json:"post_caption"`
	CreatedAt      time.Time `json:"post_created_at"`
	Sentiment      string    `json:"sentiment,omitempty"`
	Issue          string    `json:"issue,omitempty"`
	Region         string    `json:"region,omitempty"`
	Language       string    `json:"language,omitempty"`
	Hashtags       []string  `json:"post_hashtags,omitempty"`
	MediaLink      string    `json:"post_media_link,omitempty"`
	UserImageURL   string    `json:"user_image_url,omitempty"`
	UserFollowers  float64   `json:"user_followers"`
	Likes          float64   `json:"likes"`
	Comments       float64   `json:"comments"`
	Shares         float64   `json:"shares"`
	Retweets       float64   `json:"retweets"`
	Reposts        float64   `json:"reposts"`
	Replies        float64   `json:"replies"`
	Favorites      float64   `json:"favorites"`
	Votes          float64   `json:"votes"`
	Views          float64   `json:"views"`
	ReachScore     float64   `json:"reach_score"`
	ViralScore     float64   `json:"viral_score"`
	InfluenceScore float64   `json:"influence_score"`
}

// Engagement is the unified interactions count of the post.
func (p Post) Engagement() float64 {
	return p.Likes + p.Comments + p.Shares + p.Retweets + p.Replies + p.Favorites + p.Votes
}
