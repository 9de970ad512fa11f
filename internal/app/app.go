package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/config"
	"github.com/raw2ready/backend/internal/middleware"
	"github.com/raw2ready/backend/internal/modules/processing/prompt"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	pkgredis "github.com/raw2ready/backend/internal/pkg/redis"
)

const redisConnectTimeout = 5 * time.Second

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	redis  *pkgredis.Client
	logger *zap.Logger
}

// New wires config, the optional Redis client and routes. Redis is only
// dialled when rate limiting is enabled.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var rc *pkgredis.Client
	if cfg.RateLimit.Enable {
		if cfg.RedisURL == "" {
			return nil, errors.New("rate_limit.enable requires redis_url")
		}
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()
		var err error
		rc, err = pkgredis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if rc != nil {
		router.Use(middleware.RateLimit(rc.Raw(), cfg.RateLimit.PerSecond))
	}

	app := &App{cfg: cfg, router: router, redis: rc, logger: logger}
	app.registerRoutes()

	logger.Info("providers configured",
		zap.Strings("providers", credentials(cfg).Configured()),
		zap.Bool("rate_limit", rc != nil),
	)
	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the Redis connection pool.
func (a *App) Shutdown() {
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Warn("redis close failed", zap.Error(err))
	}
}

func credentials(cfg *config.AppConfig) provider.Credentials {
	return provider.Credentials{
		OpenAI:    cfg.Credentials.OpenAI,
		Google:    cfg.Credentials.Google,
		Anthropic: cfg.Credentials.Anthropic,
		Manus:     cfg.Credentials.Manus,
		MiniMax:   cfg.Credentials.MiniMax,
	}
}

func settings(cfg *config.AppConfig) provider.Settings {
	s := provider.DefaultSettings()
	s.Endpoints = provider.Endpoints{
		OpenAI:    cfg.Endpoints.OpenAI,
		Google:    cfg.Endpoints.Google,
		Anthropic: cfg.Endpoints.Anthropic,
		Manus:     cfg.Endpoints.Manus,
		MiniMax:   cfg.Endpoints.MiniMax,
	}
	s.RequestTimeout = cfg.RequestTimeout
	s.SlidesPoll = provider.PollConfig(cfg.Polling.Slides)
	s.VideoPoll = provider.PollConfig(cfg.Polling.Video)
	s.Video = provider.VideoSettings{
		Model:            cfg.Video.Model,
		Resolution:       cfg.Video.Resolution,
		ShortMaxSeconds:  cfg.Video.ShortMaxSeconds,
		ShortClipSeconds: cfg.Video.ShortClipSeconds,
		LongClipSeconds:  cfg.Video.LongClipSeconds,
	}
	return s
}

func videoLimits(cfg *config.AppConfig) prompt.VideoLimits {
	limits := prompt.DefaultVideoLimits()
	if cfg.Video.PromptBodyBudget > 0 {
		limits.BodyBudget = cfg.Video.PromptBodyBudget
	}
	if cfg.Video.PromptMaxLength > 0 {
		limits.MaxLength = cfg.Video.PromptMaxLength
	}
	return limits
}
