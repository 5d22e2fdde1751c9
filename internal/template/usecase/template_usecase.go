package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authService "github.com/allisson/sharelink/internal/auth/service"
	"github.com/allisson/sharelink/internal/database"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	appValidation "github.com/allisson/sharelink/internal/validation"
)

type templateUseCase struct {
	txManager       database.TxManager
	templateRepo    TemplateRepository
	passwordService authService.PasswordService
}

func (uc *templateUseCase) validateSaveInput(input SaveTemplateInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Layout,
			validation.Required.Error("layout is required"),
			appValidation.JSONObject,
		),
		validation.Field(&input.MaxHits,
			validation.Required.Error("max_hits is required"),
			validation.Min(1).Error("max_hits must be at least 1"),
		),
		validation.Field(&input.Password,
			validation.Length(0, 128).Error("password must be at most 128 characters"),
		),
		validation.Field(&input.TTLSeconds,
			validation.Min(int64(0)).Error("ttl_seconds must not be negative"),
			validation.Max(templateDomain.MaxTTLSeconds).Error("ttl_seconds must be at most ten years"),
		),
		validation.Field(&input.RequiredFields,
			validation.Length(0, 32).Error("at most 32 required fields are allowed"),
			appValidation.UniqueStrings,
			validation.Each(appValidation.FieldName),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Save upserts the template and replaces its required fields atomically.
func (uc *templateUseCase) Save(
	ctx context.Context,
	input SaveTemplateInput,
) (*templateDomain.Template, bool, error) {
	if err := uc.validateSaveInput(input); err != nil {
		return nil, false, err
	}

	var passwordHash string
	if input.Password != "" {
		hash, err := uc.passwordService.Hash(input.Password)
		if err != nil {
			return nil, false, err
		}
		passwordHash = hash
	}

	now := time.Now().UTC()
	fields := input.RequiredFields
	if fields == nil {
		fields = []string{}
	}

	template := &templateDomain.Template{
		ID:             uuid.Must(uuid.NewV7()),
		Name:           strings.TrimSpace(input.Name),
		Layout:         input.Layout,
		MaxHits:        input.MaxHits,
		PasswordHash:   passwordHash,
		TTLSeconds:     input.TTLSeconds,
		RequiredFields: fields,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var wasUpdate bool
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		updated, err := uc.templateRepo.Upsert(ctx, template)
		if err != nil {
			return err
		}
		wasUpdate = updated

		if wasUpdate {
			if err := uc.templateRepo.DeleteRequiredFields(ctx, template.ID); err != nil {
				return err
			}
		}

		for i, name := range fields {
			if err := uc.templateRepo.CreateRequiredField(ctx, template.ID, i, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return template, wasUpdate, nil
}

// Get retrieves a template by name with its required fields.
func (uc *templateUseCase) Get(ctx context.Context, name string) (*templateDomain.Template, error) {
	template, err := uc.templateRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return uc.withRequiredFields(ctx, template)
}

// GetByID retrieves a template by id with its required fields.
func (uc *templateUseCase) GetByID(
	ctx context.Context,
	templateID uuid.UUID,
) (*templateDomain.Template, error) {
	template, err := uc.templateRepo.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return uc.withRequiredFields(ctx, template)
}

func (uc *templateUseCase) withRequiredFields(
	ctx context.Context,
	template *templateDomain.Template,
) (*templateDomain.Template, error) {
	fields, err := uc.templateRepo.ListRequiredFields(ctx, template.ID)
	if err != nil {
		return nil, err
	}
	template.RequiredFields = fields
	return template, nil
}

// NewTemplateUseCase creates a new TemplateUseCase.
func NewTemplateUseCase(
	txManager database.TxManager,
	templateRepo TemplateRepository,
	passwordService authService.PasswordService,
) TemplateUseCase {
	return &templateUseCase{
		txManager:       txManager,
		templateRepo:    templateRepo,
		passwordService: passwordService,
	}
}
