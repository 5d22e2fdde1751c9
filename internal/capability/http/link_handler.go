package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/capability/http/dto"
	capabilityUseCase "github.com/allisson/sharelink/internal/capability/usecase"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/httputil"
)

// LinkHandler handles share link issuance for operators.
type LinkHandler struct {
	issuerUseCase capabilityUseCase.IssuerUseCase
	logger        *slog.Logger
}

// NewLinkHandler creates a new link handler with required dependencies.
func NewLinkHandler(
	issuerUseCase capabilityUseCase.IssuerUseCase,
	logger *slog.Logger,
) *LinkHandler {
	return &LinkHandler{
		issuerUseCase: issuerUseCase,
		logger:        logger,
	}
}

// IssueLinksHandler issues one link per recipient for a template.
// POST /v1/templates/:name/links
func (h *LinkHandler) IssueLinksHandler(c *gin.Context) {
	links, err := h.issuerUseCase.IssueLinks(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapLinksToListResponse(links))
}

// IssueLinkHandler issues a link for a single recipient.
// POST /v1/templates/:name/links/:recipientId
func (h *LinkHandler) IssueLinkHandler(c *gin.Context) {
	recipientID, err := uuid.Parse(c.Param("recipientId"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid recipient id"), h.logger)
		return
	}

	link, err := h.issuerUseCase.IssueLink(c.Request.Context(), c.Param("name"), recipientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapLinkToResponse(link))
}
