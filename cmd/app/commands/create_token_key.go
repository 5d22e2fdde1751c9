package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/sharelink/internal/crypto/domain"
	cryptoService "github.com/allisson/sharelink/internal/crypto/service"
)

// RunCreateTokenKey generates a random 32-byte token key and prints the environment variables
// configuring it.
//
// Without kmsKeyURI the key is printed as hex. With kmsKeyURI it is encrypted by the KMS keeper
// and printed as base64 ciphertext, which the server unwraps at startup. The plaintext key is
// zeroed before returning.
func RunCreateTokenKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	algorithm string,
	kmsKeyURI string,
) error {
	alg, err := cryptoDomain.ParseAlgorithm(algorithm)
	if err != nil {
		return fmt.Errorf("invalid algorithm %q: %w", algorithm, err)
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate token key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	encoded := hex.EncodeToString(key)
	if kmsKeyURI != "" {
		keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
			}
		}()

		ciphertext, err := keeper.Encrypt(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to encrypt token key with KMS: %w", err)
		}
		encoded = base64.StdEncoding.EncodeToString(ciphertext)
	}

	_, _ = fmt.Fprintln(writer, "# Token key configuration")
	_, _ = fmt.Fprintln(writer, "# Every instance sharing tokens must use the same values.")
	_, _ = fmt.Fprintf(writer, "TOKEN_KEY_ALGORITHM=\"%s\"\n", alg)
	_, _ = fmt.Fprintf(writer, "TOKEN_KEY=\"%s\"\n", encoded)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}

	logger.Info("token key generated",
		slog.String("algorithm", string(alg)),
		slog.Bool("kms", kmsKeyURI != ""),
	)
	return nil
}
