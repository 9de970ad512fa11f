package video

import (
	"github.com/gin-gonic/gin"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/video/generate", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	var req models.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	task, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		if task != nil {
			response.ErrorWithData(c, err, task)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, task)
}
