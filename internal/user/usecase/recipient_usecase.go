package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/user/domain"
	appValidation "github.com/allisson/sharelink/internal/validation"
)

// maxAttributes bounds the renderer fields a single recipient may carry.
const maxAttributes = 64

type recipientUseCase struct {
	recipientRepo RecipientRepository
}

func (uc *recipientUseCase) validateCreateInput(input CreateRecipientInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Attributes,
			validation.Length(0, maxAttributes).Error("at most 64 attributes are allowed"),
			validation.Each(validation.Length(0, 1024).Error("attribute values must be at most 1024 characters")),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	for key := range input.Attributes {
		if err := appValidation.FieldName.Validate(key); err != nil {
			return appValidation.WrapValidationError(validation.Errors{"attributes": err})
		}
	}
	return nil
}

// Create validates and stores a new recipient.
func (uc *recipientUseCase) Create(
	ctx context.Context,
	input CreateRecipientInput,
) (*domain.Recipient, error) {
	if err := uc.validateCreateInput(input); err != nil {
		return nil, err
	}

	attributes := input.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}

	now := time.Now().UTC()
	recipient := &domain.Recipient{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(strings.ToLower(input.Email)),
		Attributes: attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.recipientRepo.Create(ctx, recipient); err != nil {
		return nil, err
	}
	return recipient, nil
}

// Get retrieves a recipient by id.
func (uc *recipientUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	return uc.recipientRepo.Get(ctx, id)
}

// List retrieves a page of recipients.
func (uc *recipientUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Recipient, error) {
	return uc.recipientRepo.List(ctx, offset, limit)
}

// NewRecipientUseCase creates a new RecipientUseCase.
func NewRecipientUseCase(recipientRepo RecipientRepository) RecipientUseCase {
	return &recipientUseCase{recipientRepo: recipientRepo}
}
