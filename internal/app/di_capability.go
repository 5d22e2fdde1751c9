package app

import (
	"fmt"

	capabilityHTTP "github.com/allisson/sharelink/internal/capability/http"
	capabilityRepository "github.com/allisson/sharelink/internal/capability/repository"
	capabilityUseCase "github.com/allisson/sharelink/internal/capability/usecase"
	"github.com/allisson/sharelink/internal/database"
	"github.com/allisson/sharelink/internal/http"
	"github.com/allisson/sharelink/internal/render"
	templateHTTP "github.com/allisson/sharelink/internal/template/http"
	userHTTP "github.com/allisson/sharelink/internal/user/http"
)

// SessionLedger returns the presentation ledger for the configured driver.
func (c *Container) SessionLedger() (capabilityUseCase.SessionLedger, error) {
	var err error
	c.sessionLedgerInit.Do(func() {
		c.sessionLedger, err = c.initSessionLedger()
		if err != nil {
			c.initErrors["sessionLedger"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionLedger"]; exists {
		return nil, storedErr
	}
	return c.sessionLedger, nil
}

// GateUseCase returns the presentation gate wrapped with business metrics.
func (c *Container) GateUseCase() (capabilityUseCase.GateUseCase, error) {
	var err error
	c.gateUseCaseInit.Do(func() {
		c.gateUseCase, err = c.initGateUseCase()
		if err != nil {
			c.initErrors["gateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gateUseCase"]; exists {
		return nil, storedErr
	}
	return c.gateUseCase, nil
}

// IssuerUseCase returns the link issuer wrapped with business metrics.
func (c *Container) IssuerUseCase() (capabilityUseCase.IssuerUseCase, error) {
	var err error
	c.issuerUseCaseInit.Do(func() {
		c.issuerUseCase, err = c.initIssuerUseCase()
		if err != nil {
			c.initErrors["issuerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["issuerUseCase"]; exists {
		return nil, storedErr
	}
	return c.issuerUseCase, nil
}

func (c *Container) initSessionLedger() (capabilityUseCase.SessionLedger, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for session ledger: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return capabilityRepository.NewPostgreSQLSessionRepository(db), nil
	case database.DriverMySQL:
		return capabilityRepository.NewMySQLSessionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initGateUseCase() (capabilityUseCase.GateUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for gate use case: %w", err)
	}

	cipher, err := c.TokenCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get token cipher for gate use case: %w", err)
	}

	templates, err := c.TemplateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get template use case for gate use case: %w", err)
	}

	recipients, err := c.RecipientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient use case for gate use case: %w", err)
	}

	ledger, err := c.SessionLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to get session ledger for gate use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for gate use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for gate use case: %w", err)
	}

	gate := capabilityUseCase.NewGateUseCase(
		txManager,
		cipher,
		templates,
		recipients,
		ledger,
		passwordService,
		render.NewJSONRenderer(),
		c.config.PresentationTimeout,
		c.Logger(),
	)
	return capabilityUseCase.NewGateUseCaseWithMetrics(gate, businessMetrics), nil
}

func (c *Container) initIssuerUseCase() (capabilityUseCase.IssuerUseCase, error) {
	cipher, err := c.TokenCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get token cipher for issuer use case: %w", err)
	}

	templates, err := c.TemplateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get template use case for issuer use case: %w", err)
	}

	recipients, err := c.RecipientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient use case for issuer use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for issuer use case: %w", err)
	}

	issuer := capabilityUseCase.NewIssuerUseCase(cipher, templates, recipients, c.config.PublicBaseURL)
	return capabilityUseCase.NewIssuerUseCaseWithMetrics(issuer, businessMetrics), nil
}

// httpHandlers builds the handlers mounted by the public router.
func (c *Container) httpHandlers() (http.Handlers, error) {
	logger := c.Logger()

	templates, err := c.TemplateUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get template use case for handlers: %w", err)
	}

	recipients, err := c.RecipientUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get recipient use case for handlers: %w", err)
	}

	gate, err := c.GateUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get gate use case for handlers: %w", err)
	}

	issuer, err := c.IssuerUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get issuer use case for handlers: %w", err)
	}

	return http.Handlers{
		Template:  templateHTTP.NewTemplateHandler(templates, logger),
		Recipient: userHTTP.NewRecipientHandler(recipients, logger),
		Link:      capabilityHTTP.NewLinkHandler(issuer, logger),
		View:      capabilityHTTP.NewViewHandler(gate, logger),
	}, nil
}
