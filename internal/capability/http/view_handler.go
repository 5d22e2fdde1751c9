// Package http provides HTTP handlers for token presentation and link issuance.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/sharelink/internal/auth/http"
	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	"github.com/allisson/sharelink/internal/capability/http/dto"
	capabilityUseCase "github.com/allisson/sharelink/internal/capability/usecase"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/httputil"
	customValidation "github.com/allisson/sharelink/internal/validation"
)

// PasswordHeader carries the template password on document requests.
const PasswordHeader = "X-Link-Password"

// tokenQueryParam is the query parameter holding the capability token.
const tokenQueryParam = "q"

// ViewHandler handles token presentations from viewers.
type ViewHandler struct {
	gateUseCase capabilityUseCase.GateUseCase
	logger      *slog.Logger
}

// NewViewHandler creates a new view handler with required dependencies.
func NewViewHandler(
	gateUseCase capabilityUseCase.GateUseCase,
	logger *slog.Logger,
) *ViewHandler {
	return &ViewHandler{
		gateUseCase: gateUseCase,
		logger:      logger,
	}
}

// ViewDirectHandler presents a token without a target.
// GET /v1/views?q=<token>
func (h *ViewHandler) ViewDirectHandler(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.gateUseCase.ViewDirect(ctx, capabilityUseCase.Presentation{
		Token:  c.Query(tokenQueryParam),
		Viewer: viewerFromContext(ctx),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapViewToResponse(view))
}

// ViewRecipientHandler presents a token for a specific recipient.
// GET /v1/views/recipients/:id?q=<token>
func (h *ViewHandler) ViewRecipientHandler(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.gateUseCase.ViewClaimChecked(ctx, capabilityUseCase.Presentation{
		Token:    c.Query(tokenQueryParam),
		TargetID: c.Param("id"),
		Viewer:   viewerFromContext(ctx),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapViewToResponse(view))
}

// DocumentHandler renders the document for a recipient.
// GET /v1/views/recipients/:id/document?q=<token> with the password in X-Link-Password.
func (h *ViewHandler) DocumentHandler(c *gin.Context) {
	ctx := c.Request.Context()
	_, artifact, err := h.gateUseCase.RenderDocument(ctx, capabilityUseCase.Presentation{
		Token:    c.Query(tokenQueryParam),
		TargetID: c.Param("id"),
		Password: c.GetHeader(PasswordHeader),
		Viewer:   viewerFromContext(ctx),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}

// ValidatePasswordHandler checks a template password for a token.
// POST /v1/views/password
func (h *ViewHandler) ValidatePasswordHandler(c *gin.Context) {
	var req dto.ValidatePasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()
	view, err := h.gateUseCase.ValidatePassword(ctx, req.ToPresentation(viewerFromContext(ctx)))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapViewToResponse(view))
}

// PresentationCountHandler returns how many times a token has been presented.
// GET /v1/presentations?q=<token>
func (h *ViewHandler) PresentationCountHandler(c *gin.Context) {
	token := c.Query(tokenQueryParam)
	if token == "" {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "q is required"), h.logger)
		return
	}

	hits, err := h.gateUseCase.PresentationCount(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.PresentationCountResponse{Hits: hits})
}

// viewerFromContext returns the authenticated operator as a viewer, or nil for anonymous requests.
func viewerFromContext(ctx context.Context) *capabilityDomain.Viewer {
	operator, ok := authHTTP.GetOperator(ctx)
	if !ok {
		return nil
	}
	return &capabilityDomain.Viewer{ID: operator.ViewerID(), Name: operator.Name}
}
