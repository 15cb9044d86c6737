package model

import "strings"

// Channels.
const (
	ChannelTwitter   = "twitter"
	ChannelTikTok    = "tiktok"
	ChannelInstagram = "instagram"
	ChannelYouTube   = "youtube"
	ChannelLinkedIn  = "linkedin"
	ChannelReddit    = "reddit"
	ChannelFacebook  = "facebook"
	ChannelThreads   = "threads"
	ChannelNews      = "news"

	// ChannelMediaAlias is accepted on ingress as news.
	ChannelMediaAlias = "media"

	// IndexSuffix turns a channel into its index name.
	IndexSuffix = "_data"
)

// AllChannels lists every channel in index order.
var AllChannels = []string{
	ChannelTwitter,
	ChannelTikTok,
	ChannelInstagram,
	ChannelYouTube,
	ChannelLinkedIn,
	ChannelReddit,
	ChannelFacebook,
	ChannelThreads,
	ChannelNews,
}

// NormalizeChannel lowercases c and resolves the media alias.
func NormalizeChannel(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == ChannelMediaAlias {
		return ChannelNews
	}
	return c
}

// IsChannel reports whether c is a known (normalized) channel.
func IsChannel(c string) bool {
	for _, ch := range AllChannels {
		if ch == c {
			return true
		}
	}
	return false
}

// IndexName returns the store index of channel.
func IndexName(channel string) string {
	return channel + IndexSuffix
}

// UserURL builds the canonical profile URL of a user on channel.
// News and unknown channels return the username verbatim.
func UserURL(channel, username string) string {
	name := strings.TrimPrefix(strings.TrimSpace(username), "@")
	switch NormalizeChannel(channel) {
	case ChannelTwitter:
		return "https://x.com/" + name
	case ChannelInstagram:
		return "https://www.instagram.com/" + name
	case ChannelTikTok:
		return "https://www.tiktok.com/@" + name
	case ChannelLinkedIn:
		return "https://www.linkedin.com/in/" + name
	case ChannelReddit:
		return "https://www.reddit.com/" + name
	default:
		return username
	}
}
