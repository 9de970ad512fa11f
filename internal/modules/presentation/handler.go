package presentation

import (
	"github.com/gin-gonic/gin"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/pkg/response"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/presentation")
	g.POST("/generate", h.generate)
	g.POST("/edit", h.edit)
	g.POST("/export-pptx", h.export)
}

func (h *Handler) generate(c *gin.Context) {
	var req models.PresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, deck)
}

func (h *Handler) edit(c *gin.Context) {
	var req models.PresentationEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.Edit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, deck)
}

func (h *Handler) export(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	name, body, err := h.svc.Export(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, name, pptxContentType, body)
}
