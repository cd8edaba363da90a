// Package domain defines the cryptographic primitives shared by the link-security
// subsystem: algorithm identifiers, key sizes, and KMS keeper contracts.
package domain

// Algorithm identifies the AEAD cipher used to seal PII tokens.
type Algorithm string

const (
	// AESGCM is AES-256-GCM. Tokens sealed with it carry the "v1" version tag.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305. Tokens sealed with it carry the "v2" version tag.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the size in bytes of every symmetric key (AES-256, ChaCha20).
	KeySize = 32

	// NonceSize is the AEAD nonce length used by both supported ciphers.
	NonceSize = 12

	// TagSize is the AEAD authentication tag length used by both supported ciphers.
	TagSize = 16
)

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
