package post

import (
	"testing"
	"time"

	"analytics-srv/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestDecodeHitIsTolerant(t *testing.T) {
	hit := gjson.Parse(`{
		"_id": "1",
		"_index": "tiktok_data",
		"_source": {
			"username": "@a",
			"likes": "100",
			"comments": null,
			"post_created_at": "2025-04-01 10:00:00",
			"sentiment": "Positive",
			"post_hashtags": ["fyp", ""],
			"post_media_link": ["", "https://img"]
		}
	}`)
	engine := scoring.New(nil)
	p := DecodeHit(hit, engine, time.UTC)

	assert.Equal(t, "tiktok", p.Channel)
	assert.Equal(t, "https://www.tiktok.com/@a", p.LinkUser)
	assert.Equal(t, 100.0, p.Likes)
	assert.Equal(t, 0.0, p.Comments)
	assert.Equal(t, "positive", p.Sentiment)
	assert.Equal(t, []string{"fyp"}, p.Hashtags)
	assert.Equal(t, "https://img", p.MediaLink)
	assert.Equal(t, 2025, p.CreatedAt.Year())
	assert.Equal(t, engine.ScoreFor("tiktok", scoring.MapDoc{"likes": 100.0}), p.InfluenceScore)
}

func TestDecodeHitEmpty(t *testing.T) {
	p := DecodeHit(gjson.Parse(`{}`), nil, nil)
	assert.Equal(t, "", p.Channel)
	assert.True(t, p.CreatedAt.IsZero())
}
