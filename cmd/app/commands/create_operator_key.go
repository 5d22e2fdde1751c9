package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	authService "github.com/allisson/sharelink/internal/auth/service"
)

type operatorKeyOutput struct {
	Name         string `json:"name"`
	APIKey       string `json:"api_key"`
	KeyringEntry string `json:"keyring_entry"`
}

// RunCreateOperatorKey generates a new operator API key. The plain key is printed once;
// only its hash is meant to be stored, as an OPERATOR_API_KEYS entry.
func RunCreateOperatorKey(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("operator name is required")
	}
	if strings.ContainsAny(name, ":,") {
		return fmt.Errorf("invalid operator name %q: must not contain ':' or ','", name)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	plainKey, keyHash, err := tokenService.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate operator key: %w", err)
	}

	out := operatorKeyOutput{
		Name:         name,
		APIKey:       plainKey,
		KeyringEntry: name + ":" + keyHash,
	}

	if format == FormatJSON {
		if err := writeJSON(writer, out); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Operator: %s\n", out.Name)
		_, _ = fmt.Fprintf(writer, "API key: %s\n", out.APIKey)
		_, _ = fmt.Fprintln(writer, "\nThe API key is shown only once. Append this entry to OPERATOR_API_KEYS:")
		_, _ = fmt.Fprintln(writer, out.KeyringEntry)
	}

	logger.Info("operator key created", slog.String("operator", name))
	return nil
}
