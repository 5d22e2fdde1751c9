package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	userDomain "github.com/allisson/sharelink/internal/user/domain"
)

// recipientPageSize is the batch size used when walking every recipient.
const recipientPageSize = 100

type issuerUseCase struct {
	cipher     TokenCipher
	templates  TemplateStore
	recipients RecipientStore
	baseURL    string
}

// IssueLinks issues one link per recipient, in recipient id order.
func (i *issuerUseCase) IssueLinks(ctx context.Context, templateName string) ([]*capabilityDomain.Link, error) {
	template, err := i.templates.Get(ctx, templateName)
	if err != nil {
		return nil, err
	}

	links := make([]*capabilityDomain.Link, 0)
	for offset := 0; ; offset += recipientPageSize {
		page, err := i.recipients.List(ctx, offset, recipientPageSize)
		if err != nil {
			return nil, err
		}

		for _, recipient := range page {
			link, err := i.issue(template, recipient)
			if err != nil {
				return nil, err
			}
			links = append(links, link)
		}

		if len(page) < recipientPageSize {
			return links, nil
		}
	}
}

// IssueLink issues a link for one recipient.
func (i *issuerUseCase) IssueLink(
	ctx context.Context,
	templateName string,
	recipientID uuid.UUID,
) (*capabilityDomain.Link, error) {
	template, err := i.templates.Get(ctx, templateName)
	if err != nil {
		return nil, err
	}

	recipient, err := i.recipients.Get(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return i.issue(template, recipient)
}

// issue grants the recipient id under every required field of the template.
func (i *issuerUseCase) issue(
	template *templateDomain.Template,
	recipient *userDomain.Recipient,
) (*capabilityDomain.Link, error) {
	recipientID := recipient.ID.String()

	values := make([]string, len(template.RequiredFields))
	for idx := range values {
		values[idx] = recipientID
	}

	payload := capabilityDomain.Payload{
		ResourceID:  template.ID.String(),
		ClaimNames:  template.RequiredFields,
		ClaimValues: values,
	}

	token, exp, err := i.cipher.Issue(payload, template.TTLSeconds)
	if err != nil {
		return nil, err
	}

	return &capabilityDomain.Link{
		TemplateID:    template.ID,
		RecipientID:   recipient.ID,
		RecipientName: recipient.Name,
		URL:           i.linkURL(recipientID, token),
		Token:         token,
		ExpiresAt:     time.Unix(exp, 0).UTC(),
	}, nil
}

// linkURL builds <base>/view/<recipientId>?q=<token>.
func (i *issuerUseCase) linkURL(recipientID, token string) string {
	query := url.Values{"q": []string{token}}
	return i.baseURL + "/view/" + url.PathEscape(recipientID) + "?" + query.Encode()
}

// NewIssuerUseCase creates a new IssuerUseCase producing links under baseURL.
func NewIssuerUseCase(
	cipher TokenCipher,
	templates TemplateStore,
	recipients RecipientStore,
	baseURL string,
) IssuerUseCase {
	return &issuerUseCase{
		cipher:     cipher,
		templates:  templates,
		recipients: recipients,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}
