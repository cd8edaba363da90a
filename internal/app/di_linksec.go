package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/paylink/terminal/internal/crypto/domain"
	cryptoService "github.com/paylink/terminal/internal/crypto/service"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	linksecService "github.com/paylink/terminal/internal/linksec/service"
	linksecUseCase "github.com/paylink/terminal/internal/linksec/usecase"
)

type linksecComponents struct {
	kmsService   cryptoService.KMSService
	aeadManager  cryptoService.AEADManager
	keyring      *linksecService.Keyring
	signer       linksecService.Signer
	vault        linksecService.Vault
	linkIssuer   linksecUseCase.LinkIssuer
	linkVerifier linksecUseCase.LinkVerifier

	kmsServiceInit   sync.Once
	aeadManagerInit  sync.Once
	keyringInit      sync.Once
	signerInit       sync.Once
	vaultInit        sync.Once
	linkIssuerInit   sync.Once
	linkVerifierInit sync.Once
}

// KMSService returns the gocloud.dev keeper factory.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// AEADManager returns the cipher factory used by the PII vault.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// Keyring returns the signing and encryption keys. When SECRETS_KMS_KEY_URI is
// set both configured secrets are KMS ciphertexts and are unwrapped here.
func (c *Container) Keyring() (*linksecService.Keyring, error) {
	var err error
	c.keyringInit.Do(func() {
		c.keyring, err = c.initKeyring(context.Background())
		if err != nil {
			c.setInitError("keyring", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("keyring"); storedErr != nil {
		return nil, storedErr
	}
	return c.keyring, nil
}

// Signer returns the HMAC signer keyed with the signing key.
func (c *Container) Signer() (linksecService.Signer, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initSigner()
		if err != nil {
			c.setInitError("signer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("signer"); storedErr != nil {
		return nil, storedErr
	}
	return c.signer, nil
}

// Vault returns the PII vault sealing with TOKEN_ALGORITHM.
func (c *Container) Vault() (linksecService.Vault, error) {
	var err error
	c.vaultInit.Do(func() {
		c.vault, err = c.initVault()
		if err != nil {
			c.setInitError("vault", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("vault"); storedErr != nil {
		return nil, storedErr
	}
	return c.vault, nil
}

// LinkIssuer returns the link issuer, instrumented when metrics are enabled.
func (c *Container) LinkIssuer() (linksecUseCase.LinkIssuer, error) {
	var err error
	c.linkIssuerInit.Do(func() {
		c.linkIssuer, err = c.initLinkIssuer()
		if err != nil {
			c.setInitError("linkIssuer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("linkIssuer"); storedErr != nil {
		return nil, storedErr
	}
	return c.linkIssuer, nil
}

// LinkVerifier returns the link verifier, instrumented when metrics are enabled.
func (c *Container) LinkVerifier() (linksecUseCase.LinkVerifier, error) {
	var err error
	c.linkVerifierInit.Do(func() {
		c.linkVerifier, err = c.initLinkVerifier()
		if err != nil {
			c.setInitError("linkVerifier", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("linkVerifier"); storedErr != nil {
		return nil, storedErr
	}
	return c.linkVerifier, nil
}

func (c *Container) initKeyring(ctx context.Context) (*linksecService.Keyring, error) {
	signingSecret := []byte(c.config.SigningSecret)
	encryptionSecret := []byte(c.config.EncryptionSecret)

	if c.config.SecretsKMSKeyURI != "" {
		var err error
		signingSecret, encryptionSecret, err = c.unwrapSecrets(ctx)
		if err != nil {
			return nil, err
		}
		defer cryptoDomain.Zero(signingSecret)
		defer cryptoDomain.Zero(encryptionSecret)
	}

	keyring, err := linksecService.NewKeyring(signingSecret, encryptionSecret, c.config.AllowSharedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to build keyring: %w", err)
	}
	return keyring, nil
}

func (c *Container) unwrapSecrets(ctx context.Context) (signing, encryption []byte, err error) {
	keeper, err := c.KMSService().OpenKeeper(ctx, c.config.SecretsKMSKeyURI)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			c.Logger().Warn("failed to close kms keeper", slog.Any("error", closeErr))
		}
	}()

	signing, err = cryptoService.UnwrapSecret(ctx, keeper, c.config.SigningSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unwrap signing secret: %w", err)
	}
	encryption, err = cryptoService.UnwrapSecret(ctx, keeper, c.config.EncryptionSecret)
	if err != nil {
		cryptoDomain.Zero(signing)
		return nil, nil, fmt.Errorf("failed to unwrap encryption secret: %w", err)
	}

	c.Logger().Info("link secrets unwrapped with kms")
	return signing, encryption, nil
}

func (c *Container) initSigner() (linksecService.Signer, error) {
	keyring, err := c.Keyring()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring for signer: %w", err)
	}
	return linksecService.NewSigner(keyring.SigningKey)
}

func (c *Container) initVault() (linksecService.Vault, error) {
	keyring, err := c.Keyring()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring for vault: %w", err)
	}

	alg, err := cryptoDomain.ParseAlgorithm(c.config.TokenAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token algorithm: %w", err)
	}

	return linksecService.NewVault(keyring.EncryptionKey, alg, c.AEADManager())
}

func (c *Container) initLinkIssuer() (linksecUseCase.LinkIssuer, error) {
	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for link issuer: %w", err)
	}

	vault, err := c.Vault()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault for link issuer: %w", err)
	}

	issuer := linksecUseCase.NewLinkIssuer(
		linksecUseCase.IssuerConfig{
			BaseURL:         c.config.BaseURL,
			QRCodeBaseURL:   c.config.QRCodeBaseURL,
			WebhookAuthMode: linksecDomain.WebhookAuthMode(c.config.WebhookAuthMode),
			WebhookSecret:   c.config.WebhookSecret,
		},
		signer,
		vault,
		linksecService.NewOrderIDGenerator(),
		nil,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for link issuer: %w", err)
		}
		return linksecUseCase.NewLinkIssuerWithMetrics(issuer, businessMetrics), nil
	}

	return issuer, nil
}

func (c *Container) initLinkVerifier() (linksecUseCase.LinkVerifier, error) {
	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for link verifier: %w", err)
	}

	vault, err := c.Vault()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault for link verifier: %w", err)
	}

	verifier := linksecUseCase.NewLinkVerifier(
		linksecUseCase.VerifierConfig{
			PaymentLinkLifetime: c.config.PayLinkLifetime,
			ReceiptLifetime:     c.config.ReceiptLifetime,
			ClockSkew:           c.config.ClockSkew,
			WebhookAuthMode:     linksecDomain.WebhookAuthMode(c.config.WebhookAuthMode),
			WebhookSecret:       c.config.WebhookSecret,
		},
		signer,
		vault,
		nil,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for link verifier: %w", err)
		}
		return linksecUseCase.NewLinkVerifierWithMetrics(verifier, businessMetrics), nil
	}

	return verifier, nil
}
