package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"

	defaultRequestTimeout = 60 * time.Second

	defaultSlidesInterval    = 5 * time.Second
	defaultSlidesMaxAttempts = 60
	defaultVideoInterval     = 10 * time.Second
	defaultVideoMaxAttempts  = 60

	defaultVideoModel       = "MiniMax-Hailuo-02"
	defaultVideoResolution  = "768P"
	defaultShortMaxSeconds  = 50
	defaultShortClipSeconds = 6
	defaultLongClipSeconds  = 10

	defaultVideoBodyBudget = 1500
	defaultVideoPromptMax  = 2000

	defaultRateLimitPerSecond = 10
)
