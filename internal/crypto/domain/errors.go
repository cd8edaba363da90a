package domain

import (
	"github.com/paylink/terminal/internal/errors"
)

// Cryptographic operation errors. They wrap the standard errors from
// internal/errors so the HTTP layer can map them without knowing about crypto.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a symmetric key that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates AEAD authentication failed. The cause (wrong key,
	// tampered ciphertext, truncated data) is deliberately not distinguished.
	ErrDecryptionFailed = errors.Wrap(errors.ErrForbidden, "decryption failed")

	// ErrKMSEncryptUnsupported indicates the opened keeper cannot encrypt.
	ErrKMSEncryptUnsupported = errors.New("kms keeper does not support encryption")
)
