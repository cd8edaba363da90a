// Package service implements the link-security primitives: the purpose-separated
// HMAC signer, the AEAD PII vault, key derivation, and order id generation.
package service

import (
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

// Signer produces and verifies domain-separated MACs over text payloads.
type Signer interface {
	// Sign returns the lowercase hex HMAC-SHA256 of "{purpose}-{payload}".
	Sign(purpose linksecDomain.Purpose, payload string) (string, error)

	// Verify recomputes the MAC and compares it with candidateHex in constant time.
	Verify(purpose linksecDomain.Purpose, payload, candidateHex string) bool
}

// Vault seals PII records into compact URL-safe tokens and opens them again.
type Vault interface {
	// Encrypt returns "<version>.<base64url(nonce||ciphertext||tag)>".
	Encrypt(record linksecDomain.PIIRecord) (string, error)

	// Decrypt returns the record or ErrInvalidToken. It never returns a partially trusted record.
	Decrypt(token string) (linksecDomain.PIIRecord, error)
}

// OrderIDGenerator generates random order identifiers.
type OrderIDGenerator interface {
	Generate(length int) (string, error)
}
