package analysis

import (
	"github.com/gin-gonic/gin"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/models", h.models)
}

func (h *Handler) analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) models(c *gin.Context) {
	response.OK(c, gin.H{"models": h.svc.Models()})
}
