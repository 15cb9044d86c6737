package post

import (
	"encoding/json"
	"strings"
	"time"

	"analytics-srv/internal/model"
	"analytics-srv/internal/scoring"
	"analytics-srv/pkg/util"

	"github.com/tidwall/gjson"
)

// DecodeHit reads one search hit. Missing or malformed fields decode as zero
// values; the influence score is recomputed with the client-side formula.
func DecodeHit(hit gjson.Result, engine *scoring.Engine, loc *time.Location) model.Post {
	src := hit.Get("_source")
	p := model.Post{
		ID:            hit.Get("_id").String(),
		Index:         hit.Get("_index").String(),
		LinkPost:      src.Get("link_post").String(),
		Username:      src.Get("username").String(),
		Caption:       src.Get("post_caption").String(),
		CreatedAt:     util.ParseTime(src.Get("post_created_at").String(), loc),
		Sentiment:     strings.ToLower(src.Get("sentiment").String()),
		Issue:         src.Get("issue").String(),
		Region:        src.Get("region").String(),
		Language:      src.Get("language").String(),
		MediaLink:     firstString(src.Get("post_media_link")),
		UserImageURL:  src.Get("user_image_url").String(),
		UserFollowers: src.Get("user_followers").Float(),
		Likes:         src.Get("likes").Float(),
		Comments:      src.Get("comments").Float(),
		Shares:        src.Get("shares").Float(),
		Retweets:      src.Get("retweets").Float(),
		Reposts:       src.Get("reposts").Float(),
		Replies:       src.Get("replies").Float(),
		Favorites:     src.Get("favorites").Float(),
		Votes:         src.Get("votes").Float(),
		Views:         src.Get("views").Float(),
		ReachScore:    src.Get("reach_score").Float(),
		ViralScore:    src.Get("viral_score").Float(),
	}
	for _, h := range src.Get("post_hashtags").Array() {
		if s := h.String(); s != "" {
			p.Hashtags = append(p.Hashtags, s)
		}
	}

	doc := SourceDoc(hit)
	p.Channel = scoring.Channel(doc)
	p.LinkUser = model.UserURL(p.Channel, p.Username)
	if engine != nil {
		p.InfluenceScore = engine.Score(doc)
	}
	return p
}

// SourceDoc turns the _source of hit (plus its _index) into a scoring document.
func SourceDoc(hit gjson.Result) scoring.MapDoc {
	doc := scoring.MapDoc{}
	if src := hit.Get("_source"); src.IsObject() {
		_ = json.Unmarshal([]byte(src.Raw), &doc)
	}
	if idx := hit.Get("_index").String(); idx != "" {
		doc["_index"] = idx
	}
	return doc
}

func firstString(r gjson.Result) string {
	if r.IsArray() {
		for _, x := range r.Array() {
			if s := x.String(); s != "" {
				return s
			}
		}
		return ""
	}
	return r.String()
}
