package app

import (
	"fmt"

	authDomain "github.com/allisson/sharelink/internal/auth/domain"
	authHTTP "github.com/allisson/sharelink/internal/auth/http"
	authService "github.com/allisson/sharelink/internal/auth/service"
)

// TokenService returns the service hashing operator API keys.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// PasswordService returns the Argon2id password service used for template passwords.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// Keyring returns the operator keyring parsed from OPERATOR_API_KEYS.
func (c *Container) Keyring() (*authDomain.Keyring, error) {
	var err error
	c.keyringInit.Do(func() {
		c.keyring, err = c.initKeyring()
		if err != nil {
			c.initErrors["keyring"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyring"]; exists {
		return nil, storedErr
	}
	return c.keyring, nil
}

// ViewRateLimiter returns the per-IP limiter for viewer endpoints, or nil when disabled.
func (c *Container) ViewRateLimiter() *authHTTP.IPRateLimiter {
	c.viewRateLimiterInit.Do(func() {
		if !c.config.RateLimitViewEnabled {
			return
		}
		c.viewRateLimiter = authHTTP.NewIPRateLimiter(
			c.config.RateLimitViewRequestsPerSec,
			c.config.RateLimitViewBurst,
			c.Logger(),
		)
	})
	return c.viewRateLimiter
}

func (c *Container) initKeyring() (*authDomain.Keyring, error) {
	keyring, err := authDomain.ParseKeyring(c.config.OperatorAPIKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operator keys: %w", err)
	}
	if keyring.Len() == 0 {
		c.Logger().Warn("no operator API keys configured, management endpoints will reject every request")
	}
	return keyring, nil
}
