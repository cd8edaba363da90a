package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/paylink/terminal/internal/crypto/domain"
	cryptoService "github.com/paylink/terminal/internal/crypto/service"
)

// minSecretBytes is the shortest secret generate-secret will produce.
const minSecretBytes = 32

// RunGenerateSecret prints a fresh SIGNING_SECRET and ENCRYPTION_SECRET pair
// made of length random bytes each.
//
// Without kmsKeyURI the secrets are printed as base64url text and used as is.
// With kmsKeyURI each secret is encrypted by the KMS key and printed as base64
// ciphertext, together with the SECRETS_KMS_KEY_URI line the server needs to
// unwrap them. Raw key material is zeroed before returning.
func RunGenerateSecret(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	out io.Writer,
	length int,
	kmsKeyURI string,
) error {
	if length < minSecretBytes {
		return fmt.Errorf("--bytes must be at least %d", minSecretBytes)
	}

	signing, err := randomSecret(length)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(signing)

	encryption, err := randomSecret(length)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(encryption)

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(out, "# Link secrets (plaintext). Store them in your secrets manager.")
		_, _ = fmt.Fprintf(out, "SIGNING_SECRET=%q\n", base64.RawURLEncoding.EncodeToString(signing))
		_, _ = fmt.Fprintf(out, "ENCRYPTION_SECRET=%q\n", base64.RawURLEncoding.EncodeToString(encryption))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close kms keeper", slog.Any("error", closeErr))
		}
	}()

	wrappedSigning, err := cryptoService.WrapSecret(ctx, keeper, signing)
	if err != nil {
		return fmt.Errorf("failed to wrap signing secret: %w", err)
	}
	wrappedEncryption, err := cryptoService.WrapSecret(ctx, keeper, encryption)
	if err != nil {
		return fmt.Errorf("failed to wrap encryption secret: %w", err)
	}

	_, _ = fmt.Fprintln(out, "# Link secrets (KMS ciphertext).")
	_, _ = fmt.Fprintf(out, "SECRETS_KMS_KEY_URI=%q\n", kmsKeyURI)
	_, _ = fmt.Fprintf(out, "SIGNING_SECRET=%q\n", wrappedSigning)
	_, _ = fmt.Fprintf(out, "ENCRYPTION_SECRET=%q\n", wrappedEncryption)
	return nil
}

func randomSecret(length int) ([]byte, error) {
	secret := make([]byte, length)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return secret, nil
}
