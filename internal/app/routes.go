package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raw2ready/backend/internal/modules/analysis"
	"github.com/raw2ready/backend/internal/modules/presentation"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	"github.com/raw2ready/backend/internal/modules/system/health"
	"github.com/raw2ready/backend/internal/modules/video"
	"github.com/raw2ready/backend/internal/pkg/pptx"
	"github.com/raw2ready/backend/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	creds := credentials(a.cfg)
	s := settings(a.cfg)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	var cache health.Pinger
	if a.redis != nil {
		cache = a.redis
	}
	health.RegisterRoutes(r.Group(""), creds, cache)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	analysisSvc := analysis.NewService(provider.DefaultRegistry(), creds, provider.NewFactory(s, a.logger), a.logger)
	analysis.NewHandler(analysisSvc).RegisterRoutes(api)

	presentationSvc := presentation.NewService(creds, presentation.ManusSlides(s, a.logger), pptx.New(), a.logger)
	presentation.NewHandler(presentationSvc).RegisterRoutes(api)

	videoSvc := video.NewService(creds, s, videoLimits(a.cfg), a.logger)
	video.NewHandler(videoSvc).RegisterRoutes(api)
}
