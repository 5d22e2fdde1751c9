package app

import (
	"fmt"

	"github.com/allisson/sharelink/internal/database"
	templateRepository "github.com/allisson/sharelink/internal/template/repository"
	templateUseCase "github.com/allisson/sharelink/internal/template/usecase"
	userRepository "github.com/allisson/sharelink/internal/user/repository"
	userUseCase "github.com/allisson/sharelink/internal/user/usecase"
)

// TemplateRepository returns the template repository for the configured driver.
func (c *Container) TemplateRepository() (templateUseCase.TemplateRepository, error) {
	var err error
	c.templateRepositoryInit.Do(func() {
		c.templateRepository, err = c.initTemplateRepository()
		if err != nil {
			c.initErrors["templateRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["templateRepository"]; exists {
		return nil, storedErr
	}
	return c.templateRepository, nil
}

// TemplateUseCase returns the template use case.
func (c *Container) TemplateUseCase() (templateUseCase.TemplateUseCase, error) {
	var err error
	c.templateUseCaseInit.Do(func() {
		c.templateUseCase, err = c.initTemplateUseCase()
		if err != nil {
			c.initErrors["templateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["templateUseCase"]; exists {
		return nil, storedErr
	}
	return c.templateUseCase, nil
}

// RecipientRepository returns the recipient repository for the configured driver.
func (c *Container) RecipientRepository() (userUseCase.RecipientRepository, error) {
	var err error
	c.recipientRepositoryInit.Do(func() {
		c.recipientRepository, err = c.initRecipientRepository()
		if err != nil {
			c.initErrors["recipientRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recipientRepository"]; exists {
		return nil, storedErr
	}
	return c.recipientRepository, nil
}

// RecipientUseCase returns the recipient use case.
func (c *Container) RecipientUseCase() (userUseCase.RecipientUseCase, error) {
	var err error
	c.recipientUseCaseInit.Do(func() {
		c.recipientUseCase, err = c.initRecipientUseCase()
		if err != nil {
			c.initErrors["recipientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recipientUseCase"]; exists {
		return nil, storedErr
	}
	return c.recipientUseCase, nil
}

func (c *Container) initTemplateRepository() (templateUseCase.TemplateRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for template repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return templateRepository.NewPostgreSQLTemplateRepository(db), nil
	case database.DriverMySQL:
		return templateRepository.NewMySQLTemplateRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initTemplateUseCase() (templateUseCase.TemplateUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for template use case: %w", err)
	}

	repo, err := c.TemplateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get template repository for template use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for template use case: %w", err)
	}

	return templateUseCase.NewTemplateUseCase(txManager, repo, passwordService), nil
}

func (c *Container) initRecipientRepository() (userUseCase.RecipientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for recipient repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return userRepository.NewPostgreSQLRecipientRepository(db), nil
	case database.DriverMySQL:
		return userRepository.NewMySQLRecipientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initRecipientUseCase() (userUseCase.RecipientUseCase, error) {
	repo, err := c.RecipientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient repository for recipient use case: %w", err)
	}
	return userUseCase.NewRecipientUseCase(repo), nil
}
