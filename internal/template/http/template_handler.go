// Package http provides HTTP handlers for template management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/sharelink/internal/httputil"
	"github.com/allisson/sharelink/internal/template/http/dto"
	templateUseCase "github.com/allisson/sharelink/internal/template/usecase"
	customValidation "github.com/allisson/sharelink/internal/validation"
)

// TemplateHandler handles HTTP requests for template management.
type TemplateHandler struct {
	templateUseCase templateUseCase.TemplateUseCase
	logger          *slog.Logger
}

// NewTemplateHandler creates a new template handler with required dependencies.
func NewTemplateHandler(
	templateUseCase templateUseCase.TemplateUseCase,
	logger *slog.Logger,
) *TemplateHandler {
	return &TemplateHandler{
		templateUseCase: templateUseCase,
		logger:          logger,
	}
}

// SaveHandler creates a template or replaces the one with the same name.
// PUT /v1/templates - Returns 201 Created for a new template, 200 OK when replaced.
func (h *TemplateHandler) SaveHandler(c *gin.Context) {
	var req dto.SaveTemplateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	template, wasUpdate, err := h.templateUseCase.Save(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	status := http.StatusCreated
	if wasUpdate {
		status = http.StatusOK
	}
	c.JSON(status, dto.MapTemplateToResponse(template))
}

// GetHandler retrieves a template by name.
// GET /v1/templates/:name
func (h *TemplateHandler) GetHandler(c *gin.Context) {
	template, err := h.templateUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTemplateToResponse(template))
}
