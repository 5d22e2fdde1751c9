package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	capabilityService "github.com/allisson/sharelink/internal/capability/service"
	"github.com/allisson/sharelink/internal/capability/usecase"
	"github.com/allisson/sharelink/internal/capability/usecase/mocks"
	cryptoService "github.com/allisson/sharelink/internal/crypto/service"
	databaseMocks "github.com/allisson/sharelink/internal/database/mocks"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/render"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	userDomain "github.com/allisson/sharelink/internal/user/domain"
)

var fixedNow = time.Unix(1_700_000_000, 0)

type stubPasswordService struct{}

func (stubPasswordService) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (stubPasswordService) Compare(plain, hash string) bool   { return hash == "hashed:"+plain }

// memoryLedger counts presentations per token hash.
type memoryLedger struct {
	mu       sync.Mutex
	sessions []*capabilityDomain.Session
	hits     map[string]int64
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{hits: map[string]int64{}}
}

func (l *memoryLedger) Record(_ context.Context, session *capabilityDomain.Session) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions = append(l.sessions, session)
	l.hits[session.TokenHash]++
	return l.hits[session.TokenHash], nil
}

func (l *memoryLedger) CountByTokenHash(_ context.Context, tokenHash string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var count int64
	for _, s := range l.sessions {
		if s.TokenHash == tokenHash {
			count++
		}
	}
	return count, nil
}

// blockingLedger waits for the context to end.
type blockingLedger struct{}

func (blockingLedger) Record(ctx context.Context, _ *capabilityDomain.Session) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func (blockingLedger) CountByTokenHash(ctx context.Context, _ string) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

type gateFixture struct {
	gate       usecase.GateUseCase
	cipher     *capabilityService.TokenCipher
	templates  *mocks.MockTemplateStore
	recipients *mocks.MockRecipientStore
	ledger     *memoryLedger
	template   *templateDomain.Template
	recipient  *userDomain.Recipient
	logs       *bytes.Buffer
}

func newGateFixture(t *testing.T, ledger usecase.SessionLedger, timeout time.Duration) *gateFixture {
	t.Helper()

	aead, err := cryptoService.NewAESGCM(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)
	cipher := capabilityService.NewTokenCipher(aead, capabilityService.WithClock(func() time.Time { return fixedNow }))

	template := &templateDomain.Template{
		ID:             uuid.Must(uuid.NewV7()),
		Name:           "certificate",
		Layout:         json.RawMessage(`{"schemas":[[{"name":"name","type":"text"}]]}`),
		MaxHits:        3,
		TTLSeconds:     3600,
		RequiredFields: []string{"userId"},
	}
	recipient := &userDomain.Recipient{
		ID:    uuid.Must(uuid.NewV7()),
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}

	templates := &mocks.MockTemplateStore{}
	templates.On("GetByID", mock.Anything, template.ID).Return(template, nil).Maybe()
	recipients := &mocks.MockRecipientStore{}
	recipients.On("Get", mock.Anything, recipient.ID).Return(recipient, nil).Maybe()

	txManager := databaseMocks.NewMockTxManager()
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Maybe()

	memLedger, _ := ledger.(*memoryLedger)
	if ledger == nil {
		memLedger = newMemoryLedger()
		ledger = memLedger
	}

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))

	gate := usecase.NewGateUseCase(
		txManager,
		cipher,
		templates,
		recipients,
		ledger,
		stubPasswordService{},
		render.NewJSONRenderer(),
		timeout,
		logger,
	)

	return &gateFixture{
		gate:       gate,
		cipher:     cipher,
		templates:  templates,
		recipients: recipients,
		ledger:     memLedger,
		template:   template,
		recipient:  recipient,
		logs:       logs,
	}
}

func (f *gateFixture) issue(t *testing.T, ttl int64) string {
	t.Helper()
	token, _, err := f.cipher.Issue(capabilityDomain.Payload{
		ResourceID:  f.template.ID.String(),
		ClaimNames:  []string{"userId"},
		ClaimValues: []string{f.recipient.ID.String()},
	}, ttl)
	require.NoError(t, err)
	return token
}

func TestGateUseCase_HitLimit(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t, nil, time.Second)
	token := f.issue(t, 3600)

	for i := int64(1); i <= 3; i++ {
		view, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		require.NoError(t, err, "presentation %d", i)
		assert.Equal(t, i, view.Hits)
		assert.Equal(t, 3, view.MaxHits)
	}

	_, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
	assert.ErrorIs(t, err, capabilityDomain.ErrHitLimitExceeded)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Contains(t, err.Error(), "hit limit exceeded")

	count, err := f.gate.PresentationCount(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestGateUseCase_HitLimitIsPerToken(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t, nil, time.Second)
	f.template.MaxHits = 1

	first := f.issue(t, 3600)
	second := f.issue(t, 3600)

	_, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: first})
	require.NoError(t, err)
	_, err = f.gate.ViewDirect(ctx, usecase.Presentation{Token: second})
	require.NoError(t, err)
	_, err = f.gate.ViewDirect(ctx, usecase.Presentation{Token: first})
	assert.ErrorIs(t, err, capabilityDomain.ErrHitLimitExceeded)
}

func TestGateUseCase_ViewDirectDescriptor(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t, nil, time.Second)
	f.template.PasswordHash = "hashed:1234"
	token := f.issue(t, 60)
	viewer := &capabilityDomain.Viewer{ID: "operator:alice", Name: "alice"}

	view, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: token, Viewer: viewer})
	require.NoError(t, err)

	assert.Equal(t, f.template.ID.String(), view.ResourceID)
	assert.True(t, view.HasPassword)
	assert.True(t, fixedNow.Add(60*time.Second).Equal(view.ExpiresAt))
	assert.Equal(t, time.UTC, view.ExpiresAt.Location())
	assert.Same(t, viewer, view.Viewer)
	assert.Nil(t, view.Recipient)

	require.Len(t, f.ledger.sessions, 1)
	session := f.ledger.sessions[0]
	assert.Equal(t, capabilityService.HashToken(token), session.TokenHash)
	require.NotNil(t, session.ViewerID)
	assert.Equal(t, "operator:alice", *session.ViewerID)
	assert.NotContains(t, session.TokenHash, token)
}

func TestGateUseCase_ViewClaimChecked(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_GrantedRecipient", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token := f.issue(t, 3600)

		view, err := f.gate.ViewClaimChecked(ctx, usecase.Presentation{
			Token:    token,
			TargetID: f.recipient.ID.String(),
		})
		require.NoError(t, err)
		require.NotNil(t, view.Recipient)
		assert.Equal(t, f.recipient.ID, view.Recipient.ID)
		assert.Equal(t, "Ada Lovelace", view.Recipient.Name)
	})

	t.Run("Error_OtherRecipient", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token := f.issue(t, 3600)

		_, err := f.gate.ViewClaimChecked(ctx, usecase.Presentation{
			Token:    token,
			TargetID: uuid.Must(uuid.NewV7()).String(),
		})
		assert.ErrorIs(t, err, capabilityDomain.ErrInvalidClaim)
		assert.Len(t, f.ledger.sessions, 1)
	})

	t.Run("Error_NoRequiredFieldGranted", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		f.template.RequiredFields = []string{"certificateId"}
		token := f.issue(t, 3600)

		_, err := f.gate.ViewClaimChecked(ctx, usecase.Presentation{
			Token:    token,
			TargetID: f.recipient.ID.String(),
		})
		assert.ErrorIs(t, err, capabilityDomain.ErrInvalidClaim)
	})

	t.Run("Error_LiteralClaims", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token, _, err := f.cipher.Issue(capabilityDomain.Payload{
			ResourceID:  f.template.ID.String(),
			ClaimNames:  []string{"userId"},
			ClaimValues: []string{"u1"},
		}, 3600)
		require.NoError(t, err)

		// u1 passes the claim check but is not a known recipient id.
		_, err = f.gate.ViewClaimChecked(ctx, usecase.Presentation{Token: token, TargetID: "u1"})
		assert.ErrorIs(t, err, capabilityDomain.ErrResourceNotFound)

		_, err = f.gate.ViewClaimChecked(ctx, usecase.Presentation{Token: token, TargetID: "u2"})
		assert.ErrorIs(t, err, capabilityDomain.ErrInvalidClaim)
	})

	t.Run("Error_RecipientDeleted", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token := f.issue(t, 3600)
		f.recipients.ExpectedCalls = nil
		f.recipients.On("Get", mock.Anything, f.recipient.ID).Return(nil, userDomain.ErrRecipientNotFound)

		_, err := f.gate.ViewClaimChecked(ctx, usecase.Presentation{
			Token:    token,
			TargetID: f.recipient.ID.String(),
		})
		assert.ErrorIs(t, err, capabilityDomain.ErrResourceNotFound)
	})
}

func TestGateUseCase_ValidatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("CorrectPasswordRecordsPresentation", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		f.template.PasswordHash = "hashed:1234"
		token := f.issue(t, 3600)

		view, err := f.gate.ValidatePassword(ctx, usecase.Presentation{Token: token, Password: "1234"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.Hits)
		assert.True(t, view.HasPassword)
	})

	t.Run("WrongPasswordStillConsumesHits", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		f.template.PasswordHash = "hashed:1234"
		token := f.issue(t, 3600)

		_, err := f.gate.ValidatePassword(ctx, usecase.Presentation{Token: token, Password: "0000"})
		assert.ErrorIs(t, err, capabilityDomain.ErrPasswordMismatch)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)

		view, err := f.gate.ValidatePassword(ctx, usecase.Presentation{Token: token, Password: "1234"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), view.Hits)

		_, err = f.gate.ValidatePassword(ctx, usecase.Presentation{Token: token, Password: "12345"})
		assert.ErrorIs(t, err, capabilityDomain.ErrPasswordMismatch)

		_, err = f.gate.ValidatePassword(ctx, usecase.Presentation{Token: token, Password: "1234"})
		assert.ErrorIs(t, err, capabilityDomain.ErrHitLimitExceeded)
	})

	t.Run("NoPasswordConfigured", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token := f.issue(t, 3600)

		view, err := f.gate.ValidatePassword(ctx, usecase.Presentation{Token: token, Password: "anything"})
		require.NoError(t, err)
		assert.False(t, view.HasPassword)
	})
}

func TestGateUseCase_TokenRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("Expired_NotRecorded", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token := f.issue(t, 0)

		_, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		assert.ErrorIs(t, err, capabilityDomain.ErrTokenExpired)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Empty(t, f.ledger.sessions)
	})

	t.Run("Malformed", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)

		_, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: "not-a-token"})
		assert.ErrorIs(t, err, capabilityDomain.ErrMalformedToken)
		assert.Empty(t, f.ledger.sessions)
	})

	t.Run("Tampered_LoggedWithHash", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		other, err := cryptoService.NewAESGCM(bytes.Repeat([]byte{0x24}, 32))
		require.NoError(t, err)
		foreign, _, err := capabilityService.NewTokenCipher(other).Issue(capabilityDomain.Payload{
			ResourceID: f.template.ID.String(),
		}, 3600)
		require.NoError(t, err)

		_, err = f.gate.ViewDirect(ctx, usecase.Presentation{Token: foreign})
		assert.ErrorIs(t, err, capabilityDomain.ErrTamperedToken)
		assert.Empty(t, f.ledger.sessions)

		logs := f.logs.String()
		assert.Contains(t, logs, "tampered token presented")
		assert.Contains(t, logs, capabilityService.HashToken(foreign))
		assert.NotContains(t, logs, foreign)
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token, _, err := f.cipher.Issue(capabilityDomain.Payload{ResourceID: uuid.Must(uuid.NewV7()).String()}, 3600)
		require.NoError(t, err)
		f.templates.On("GetByID", mock.Anything, mock.Anything).Return(nil, templateDomain.ErrTemplateNotFound)

		_, err = f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		assert.ErrorIs(t, err, capabilityDomain.ErrResourceNotFound)
		assert.Empty(t, f.ledger.sessions)
	})

	t.Run("NonUUIDResource", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token, _, err := f.cipher.Issue(capabilityDomain.Payload{ResourceID: "legacy-42"}, 3600)
		require.NoError(t, err)

		_, err = f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		assert.ErrorIs(t, err, capabilityDomain.ErrResourceNotFound)
	})
}

func TestGateUseCase_InfrastructureFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("TemplateStoreDown", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token, _, err := f.cipher.Issue(capabilityDomain.Payload{ResourceID: uuid.Must(uuid.NewV7()).String()}, 3600)
		require.NoError(t, err)
		f.templates.On("GetByID", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err = f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NotErrorIs(t, err, capabilityDomain.ErrResourceNotFound)
	})

	t.Run("LedgerTimeout", func(t *testing.T) {
		f := newGateFixture(t, blockingLedger{}, 20*time.Millisecond)
		token := f.issue(t, 3600)

		_, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("LedgerError", func(t *testing.T) {
		ledger := &mocks.MockSessionLedger{}
		ledger.On("Record", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock"))
		f := newGateFixture(t, ledger, time.Second)
		token := f.issue(t, 3600)

		_, err := f.gate.ViewDirect(ctx, usecase.Presentation{Token: token})
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("CountTimeout", func(t *testing.T) {
		f := newGateFixture(t, blockingLedger{}, 20*time.Millisecond)

		_, err := f.gate.PresentationCount(ctx, "token")
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestGateUseCase_RenderDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		f.recipient.Attributes = map[string]string{"course": "Engines"}
		token := f.issue(t, 3600)

		view, artifact, err := f.gate.RenderDocument(ctx, usecase.Presentation{
			Token:    token,
			TargetID: f.recipient.ID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.Hits)
		assert.Equal(t, render.ContentTypeJSON, artifact.ContentType)
		assert.Contains(t, string(artifact.Body), `"course":"Engines"`)
		assert.Contains(t, string(artifact.Body), `"name":"Ada Lovelace"`)
	})

	t.Run("Error_PasswordRequired", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		f.template.PasswordHash = "hashed:1234"
		token := f.issue(t, 3600)

		_, _, err := f.gate.RenderDocument(ctx, usecase.Presentation{
			Token:    token,
			TargetID: f.recipient.ID.String(),
		})
		assert.ErrorIs(t, err, capabilityDomain.ErrPasswordMismatch)

		_, artifact, err := f.gate.RenderDocument(ctx, usecase.Presentation{
			Token:    token,
			TargetID: f.recipient.ID.String(),
			Password: "1234",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, artifact.Body)
	})

	t.Run("Error_ClaimChecked", func(t *testing.T) {
		f := newGateFixture(t, nil, time.Second)
		token := f.issue(t, 3600)

		_, _, err := f.gate.RenderDocument(ctx, usecase.Presentation{
			Token:    token,
			TargetID: uuid.Must(uuid.NewV7()).String(),
		})
		assert.ErrorIs(t, err, capabilityDomain.ErrInvalidClaim)
	})
}

func TestGateUseCase_ConcurrentPresentations(t *testing.T) {
	f := newGateFixture(t, nil, time.Second)
	token := f.issue(t, 3600)

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.gate.ViewDirect(context.Background(), usecase.Presentation{Token: token}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, f.template.MaxHits, succeeded)
}
