package scoring

import "analytics-srv/internal/model"

// LogNormMax is M in logNorm(v, M) = log(1+v)/log(1+M).
const LogNormMax = 500.0

// MaxScore is the upper bound of the native influence scale.
const MaxScore = 10.0

const (
	fLikes     = "likes"
	fComments  = "comments"
	fReplies   = "replies"
	fRetweets  = "retweets"
	fShares    = "shares"
	fReposts   = "reposts"
	fFavorites = "favorites"
	fVotes     = "votes"
	fViews     = "views"

	fLinkPost  = "link_post"
	fMediaLink = "post_media_link"
	fQuotes    = "list_quotes"
)

var instagramWithViews = add(
	w(0.6, add(w(0.5, hat(fLikes)), w(0.3, hat(fComments)))),
	w(0.4, w(0.2, hat(fViews))),
)

// defaultFormula covers channels without a dedicated formula (facebook, threads).
var defaultFormula = w(0.6, add(w(0.6, hat(fLikes)), w(0.4, hat(fComments))))

var formulas = map[string]Expr{
	model.ChannelTwitter: add(
		w(0.7, add(w(0.4, hat(fLikes)), w(0.3, hat(fReplies)), w(0.3, hat(fRetweets)))),
		w(0.3, hat(fViews)),
	),
	model.ChannelLinkedIn: add(
		w(0.6, add(w(0.5, hat(fLikes)), w(0.3, hat(fComments)))),
		w(0.4, w(0.2, hat(fReposts))),
	),
	model.ChannelTikTok: add(
		w(0.7, add(w(0.4, hat(fLikes)), w(0.3, hat(fComments)), w(0.1, hat(fFavorites)))),
		w(0.3, w(0.2, hat(fShares))),
	),
	model.ChannelInstagram: pick{cond: field(fViews), then: instagramWithViews, otherwise: defaultFormula},
	model.ChannelReddit: add(
		w(0.6, w(0.6, hat(fVotes))),
		w(0.4, w(0.4, hat(fComments))),
	),
	model.ChannelYouTube: add(
		w(0.6, add(w(0.4, hat(fLikes)), w(0.2, hat(fComments)))),
		w(0.4, w(0.4, hat(fViews))),
	),
	model.ChannelNews: add(
		w(0.8, publisher(fLinkPost)),
		w(0.1, contains{fMediaLink, "http"}),
		w(0.1, contains{fQuotes, "quotes"}),
	),
}

// Formula returns the raw (pre-scale) formula of channel.
func Formula(channel string) Expr {
	if f, ok := formulas[channel]; ok {
		return f
	}
	return defaultFormula
}

// Final returns min(10, formula × 10) for channel.
func Final(channel string) Expr {
	return minOf{num(MaxScore), product{Formula(channel), num(10)}}
}

// ScriptedChannels lists the channels with a dedicated branch in the script, in emission order.
var ScriptedChannels = []string{
	model.ChannelTwitter,
	model.ChannelLinkedIn,
	model.ChannelTikTok,
	model.ChannelInstagram,
	model.ChannelReddit,
	model.ChannelYouTube,
	model.ChannelNews,
}

// ToUI converts a native score in [0,10] to the 0–100 presentation scale.
func ToUI(score float64) float64 { return score * 10 }

// FromUI converts a 0–100 presentation value to the native scale.
func FromUI(ui float64) float64 { return ui / 10 }
