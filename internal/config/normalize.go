package config

import "strings"

func normalizeAppConfig(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.RedisURL = normalizeRedisRawURL(cfg.RedisURL)
	cfg.Paths.Logs = strings.TrimSpace(cfg.Paths.Logs)
	if cfg.RateLimit.PerSecond <= 0 {
		cfg.RateLimit.PerSecond = defaultRateLimitPerSecond
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Polling.Slides.Interval <= 0 {
		cfg.Polling.Slides.Interval = defaultSlidesInterval
	}
	if cfg.Polling.Video.Interval <= 0 {
		cfg.Polling.Video.Interval = defaultVideoInterval
	}
	cfg.Endpoints.OpenAI = trimURL(cfg.Endpoints.OpenAI)
	cfg.Endpoints.Google = trimURL(cfg.Endpoints.Google)
	cfg.Endpoints.Anthropic = trimURL(cfg.Endpoints.Anthropic)
	cfg.Endpoints.Manus = trimURL(cfg.Endpoints.Manus)
	cfg.Endpoints.MiniMax = trimURL(cfg.Endpoints.MiniMax)
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func trimURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
