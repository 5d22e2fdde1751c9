package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	capabilityUseCase "github.com/allisson/sharelink/internal/capability/usecase"
)

type linkOutput struct {
	RecipientID   string `json:"recipient_id"`
	RecipientName string `json:"recipient_name"`
	URL           string `json:"url"`
	ExpiresAt     string `json:"expires_at"`
}

// RunIssueLinks issues share links for a template. With an empty recipientID a link is issued
// for every recipient, otherwise only for the given one.
func RunIssueLinks(
	ctx context.Context,
	issuer capabilityUseCase.IssuerUseCase,
	logger *slog.Logger,
	writer io.Writer,
	templateName string,
	recipientID string,
	format string,
) error {
	if templateName == "" {
		return fmt.Errorf("template name is required")
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	var links []*capabilityDomain.Link
	if recipientID == "" {
		issued, err := issuer.IssueLinks(ctx, templateName)
		if err != nil {
			return fmt.Errorf("failed to issue links: %w", err)
		}
		links = issued
	} else {
		id, err := uuid.Parse(recipientID)
		if err != nil {
			return fmt.Errorf("invalid recipient id %q: %w", recipientID, err)
		}
		link, err := issuer.IssueLink(ctx, templateName, id)
		if err != nil {
			return fmt.Errorf("failed to issue link: %w", err)
		}
		links = []*capabilityDomain.Link{link}
	}

	out := make([]linkOutput, 0, len(links))
	for _, link := range links {
		out = append(out, linkOutput{
			RecipientID:   link.RecipientID.String(),
			RecipientName: link.RecipientName,
			URL:           link.URL,
			ExpiresAt:     link.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}

	if format == FormatJSON {
		if err := writeJSON(writer, out); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "RECIPIENT\tNAME\tEXPIRES AT\tURL")
		for _, l := range out {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.RecipientID, l.RecipientName, l.ExpiresAt, l.URL)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	logger.Info("links issued",
		slog.String("template", templateName),
		slog.Int("count", len(links)),
	)
	return nil
}
