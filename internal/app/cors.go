package app

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"

	"github.com/raw2ready/backend/internal/middleware"
)

// corsConfig allows every origin when patterns is empty. Otherwise an origin
// must match one pattern; patterns may be full origins ("https://app.io"),
// bare hosts, "*.domain" or "host:*".
func corsConfig(patterns []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
	}
	if len(patterns) == 0 {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}

	hosts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		hosts = append(hosts, originHost(p))
	}
	c.AllowCredentials = true
	c.AllowOriginFunc = func(origin string) bool {
		host := originHost(origin)
		for _, pattern := range hosts {
			if hostMatches(pattern, host) {
				return true
			}
		}
		return false
	}
	return c
}

// originHost returns the lower-cased "host[:port]" of an origin, or the
// input itself when it carries no scheme.
func originHost(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return u.Host
	}
	return strings.TrimSuffix(origin, "/")
}

func hostMatches(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
