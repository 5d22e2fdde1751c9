package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/sharelink/internal/auth/domain"
	authService "github.com/allisson/sharelink/internal/auth/service"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware requires a valid operator API key in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer key from the Authorization header (case-insensitive)
// 2. Hashes the key using tokenService.HashToken()
// 3. Looks the hash up in the operator keyring in constant time
// 4. Stores the authenticated operator in the request context
//
// Missing, malformed or unknown keys → 401 Unauthorized.
func AuthenticationMiddleware(
	keyring *authDomain.Keyring,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		operator, err := authenticate(authHeader, keyring, tokenService)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithOperator(c.Request.Context(), operator))

		logger.Debug("authentication successful", slog.String("operator", operator.Name))

		c.Next()
	}
}

// OptionalAuthenticationMiddleware authenticates the operator when an Authorization header is
// present and lets anonymous requests through. A header carrying an invalid key is rejected.
func OptionalAuthenticationMiddleware(
	keyring *authDomain.Keyring,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		operator, err := authenticate(authHeader, keyring, tokenService)
		if err != nil {
			logger.Debug("optional authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithOperator(c.Request.Context(), operator))
		c.Next()
	}
}

func authenticate(
	authHeader string,
	keyring *authDomain.Keyring,
	tokenService authService.TokenService,
) (*authDomain.Operator, error) {
	if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "malformed authorization header")
	}

	plainKey := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if plainKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "empty bearer token")
	}

	return keyring.Authenticate(tokenService.HashToken(plainKey))
}
