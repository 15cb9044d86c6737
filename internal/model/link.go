package model

import (
	"net/url"
	"strings"
)

// NormalizeLink reduces a post URL to the part that identifies a trending
// link: YouTube and LinkedIn keep only the origin, Reddit keeps two path
// segments below its "r/" prefix and every other site keeps one. It is idempotent.
func NormalizeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if !strings.Contains(raw, "://") {
			if u2, err2 := url.Parse("https://" + raw); err2 == nil && u2.Host != "" {
				u = u2
			} else {
				return raw
			}
		} else {
			return raw
		}
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := strings.ToLower(u.Host)
	origin := scheme + "://" + host

	keep := 1
	switch {
	case hostIs(host, "youtube.com"), hostIs(host, "youtu.be"), hostIs(host, "linkedin.com"):
		keep = 0
	case hostIs(host, "reddit.com"):
		keep = 3
	}
	if keep == 0 {
		return origin
	}

	segs := make([]string, 0, keep)
	for _, s := range strings.Split(u.Path, "/") {
		if s == "" {
			continue
		}
		segs = append(segs, s)
		if len(segs) == keep {
			break
		}
	}
	if len(segs) == 0 {
		return origin
	}
	return origin + "/" + strings.Join(segs, "/")
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
