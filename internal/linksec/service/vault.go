package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	cryptoDomain "github.com/paylink/terminal/internal/crypto/domain"
	cryptoService "github.com/paylink/terminal/internal/crypto/service"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

var tokenEncoding = base64.RawURLEncoding

type aeadVault struct {
	version string
	ciphers map[string]cryptoService.AEAD
}

// NewVault creates a PII vault sealing with alg under key. Tokens of every
// supported version can be opened regardless of the sealing algorithm.
func NewVault(
	key []byte,
	alg cryptoDomain.Algorithm,
	aeadManager cryptoService.AEADManager,
) (Vault, error) {
	version, err := versionFor(alg)
	if err != nil {
		return nil, err
	}

	aesCipher, err := aeadManager.CreateCipher(key, cryptoDomain.AESGCM)
	if err != nil {
		return nil, fmt.Errorf("failed to create aes-gcm cipher: %w", err)
	}
	chachaCipher, err := aeadManager.CreateCipher(key, cryptoDomain.ChaCha20)
	if err != nil {
		return nil, fmt.Errorf("failed to create chacha20-poly1305 cipher: %w", err)
	}

	return &aeadVault{
		version: version,
		ciphers: map[string]cryptoService.AEAD{
			linksecDomain.TokenVersionAESGCM:   aesCipher,
			linksecDomain.TokenVersionChaCha20: chachaCipher,
		},
	}, nil
}

func versionFor(alg cryptoDomain.Algorithm) (string, error) {
	switch alg {
	case cryptoDomain.AESGCM:
		return linksecDomain.TokenVersionAESGCM, nil
	case cryptoDomain.ChaCha20:
		return linksecDomain.TokenVersionChaCha20, nil
	default:
		return "", cryptoDomain.ErrUnsupportedAlgorithm
	}
}

// Encrypt serialises record to JSON and seals it. The version tag is bound as AAD.
func (v *aeadVault) Encrypt(record linksecDomain.PIIRecord) (string, error) {
	plaintext, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pii record: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	ciphertext, nonce, err := v.ciphers[v.version].Encrypt(plaintext, []byte(v.version))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt pii record: %w", err)
	}

	packed := make([]byte, 0, len(nonce)+len(ciphertext))
	packed = append(packed, nonce...)
	packed = append(packed, ciphertext...)

	return v.version + "." + tokenEncoding.EncodeToString(packed), nil
}

// Decrypt opens token. Tokens without a version tag are read as AES-GCM with no AAD.
func (v *aeadVault) Decrypt(token string) (linksecDomain.PIIRecord, error) {
	var record linksecDomain.PIIRecord
	if token == "" {
		return record, linksecDomain.ErrInvalidToken
	}

	version, body, found := strings.Cut(token, ".")
	aad := []byte(version)
	if !found {
		version, body, aad = linksecDomain.TokenVersionAESGCM, token, nil
	}

	cipher, ok := v.ciphers[version]
	if !ok {
		return record, linksecDomain.ErrInvalidToken
	}

	packed, err := tokenEncoding.DecodeString(body)
	if err != nil {
		return record, linksecDomain.ErrInvalidToken
	}
	if len(packed) < cipher.NonceSize()+cipher.Overhead() {
		return record, linksecDomain.ErrInvalidToken
	}

	nonce, ciphertext := packed[:cipher.NonceSize()], packed[cipher.NonceSize():]
	plaintext, err := cipher.Decrypt(ciphertext, nonce, aad)
	if err != nil {
		return record, linksecDomain.ErrInvalidToken
	}
	defer cryptoDomain.Zero(plaintext)

	if err := json.Unmarshal(plaintext, &record); err != nil {
		return linksecDomain.PIIRecord{}, linksecDomain.ErrInvalidToken
	}
	return record, nil
}
