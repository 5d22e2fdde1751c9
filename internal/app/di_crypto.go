package app

import (
	"context"
	"fmt"
	"log/slog"

	capabilityService "github.com/allisson/sharelink/internal/capability/service"
	capabilityUseCase "github.com/allisson/sharelink/internal/capability/usecase"
	cryptoDomain "github.com/allisson/sharelink/internal/crypto/domain"
	cryptoService "github.com/allisson/sharelink/internal/crypto/service"
)

// KMSService returns the KMS service used to unwrap the token key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// TokenKey returns the deployment token key. Loading fails when TOKEN_KEY is missing or invalid.
func (c *Container) TokenKey() (*cryptoDomain.TokenKey, error) {
	var err error
	c.tokenKeyInit.Do(func() {
		c.tokenKey, err = c.initTokenKey()
		if err != nil {
			c.initErrors["tokenKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenKey"]; exists {
		return nil, storedErr
	}
	return c.tokenKey, nil
}

// TokenCipher returns the cipher sealing and opening capability tokens.
func (c *Container) TokenCipher() (capabilityUseCase.TokenCipher, error) {
	var err error
	c.tokenCipherInit.Do(func() {
		c.tokenCipher, err = c.initTokenCipher()
		if err != nil {
			c.initErrors["tokenCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCipher"]; exists {
		return nil, storedErr
	}
	return c.tokenCipher, nil
}

func (c *Container) initTokenKey() (*cryptoDomain.TokenKey, error) {
	ctx := context.Background()

	var keeper cryptoDomain.KMSKeeper
	if c.config.KMSKeyURI != "" {
		var err error
		keeper, err = c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open kms keeper: %w", err)
		}
		defer func() { _ = keeper.Close() }()
	}

	tokenKey, err := cryptoDomain.LoadTokenKey(ctx, c.config.TokenKey, c.config.TokenKeyAlgorithm, keeper)
	if err != nil {
		return nil, fmt.Errorf("failed to load token key: %w", err)
	}

	c.Logger().Info("token key loaded",
		slog.String("algorithm", string(tokenKey.Algorithm)),
		slog.Bool("kms", keeper != nil),
	)
	return tokenKey, nil
}

func (c *Container) initTokenCipher() (capabilityUseCase.TokenCipher, error) {
	tokenKey, err := c.TokenKey()
	if err != nil {
		return nil, err
	}

	aead, err := cryptoService.NewTokenAEAD(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token aead: %w", err)
	}
	return capabilityService.NewTokenCipher(aead), nil
}
