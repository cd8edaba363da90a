package service

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/paylink/terminal/internal/crypto/domain"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

// sharedSecretInfo labels the HKDF expansion used when one secret serves both roles.
const sharedSecretInfo = "paylink-pii-encryption-v1"

// Keyring holds the MAC key and the AEAD key of the link-security subsystem.
type Keyring struct {
	SigningKey    []byte
	EncryptionKey []byte
}

// NewKeyring builds the keyring from the configured secrets.
//
// The signing key is the signing secret itself. The encryption key is SHA-256
// of the encryption secret, which normalises any length into a 32-byte key and
// adds no brute-force resistance. Identical secrets are refused with
// ErrSharedSecret unless allowShared is set; in that case the encryption key is
// derived with HKDF-SHA256 under a dedicated label so the two keys still differ.
func NewKeyring(signingSecret, encryptionSecret []byte, allowShared bool) (*Keyring, error) {
	if len(signingSecret) == 0 || len(encryptionSecret) == 0 {
		return nil, linksecDomain.ErrEmptySecret
	}

	if !bytes.Equal(signingSecret, encryptionSecret) {
		digest := sha256.Sum256(encryptionSecret)
		return &Keyring{
			SigningKey:    append([]byte(nil), signingSecret...),
			EncryptionKey: digest[:],
		}, nil
	}

	if !allowShared {
		return nil, linksecDomain.ErrSharedSecret
	}

	encryptionKey, err := deriveKey(signingSecret, sharedSecretInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	return &Keyring{
		SigningKey:    append([]byte(nil), signingSecret...),
		EncryptionKey: encryptionKey,
	}, nil
}

// Close zeroes the key material.
func (k *Keyring) Close() {
	cryptoDomain.Zero(k.SigningKey)
	cryptoDomain.Zero(k.EncryptionKey)
}

func deriveKey(secret []byte, info string) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(info))
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
