// Package http provides HTTP handlers for recipient management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/httputil"
	"github.com/allisson/sharelink/internal/user/http/dto"
	"github.com/allisson/sharelink/internal/user/usecase"
	appValidation "github.com/allisson/sharelink/internal/validation"
)

// RecipientHandler handles recipient HTTP requests.
type RecipientHandler struct {
	recipientUseCase usecase.RecipientUseCase
	logger           *slog.Logger
}

// NewRecipientHandler creates a new RecipientHandler.
func NewRecipientHandler(recipientUseCase usecase.RecipientUseCase, logger *slog.Logger) *RecipientHandler {
	return &RecipientHandler{
		recipientUseCase: recipientUseCase,
		logger:           logger,
	}
}

// CreateHandler registers a recipient.
// POST /v1/recipients - Returns 201 Created.
func (h *RecipientHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	recipient, err := h.recipientUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecipientToResponse(recipient))
}

// GetHandler retrieves a recipient by id.
// GET /v1/recipients/:id
func (h *RecipientHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid recipient id"), h.logger)
		return
	}

	recipient, err := h.recipientUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecipientToResponse(recipient))
}

// ListHandler retrieves a page of recipients.
// GET /v1/recipients?offset=0&limit=50
func (h *RecipientHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	recipients, err := h.recipientUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecipientsToListResponse(recipients))
}
