package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

type hmacSigner struct {
	key []byte
}

// NewSigner creates an HMAC-SHA256 signer keyed with key. An empty key is
// rejected instead of silently signing with a degenerate key.
func NewSigner(key []byte) (Signer, error) {
	if len(key) == 0 {
		return nil, linksecDomain.ErrEmptySecret
	}
	return &hmacSigner{key: append([]byte(nil), key...)}, nil
}

func (s *hmacSigner) mac(purpose linksecDomain.Purpose, payload string) []byte {
	m := hmac.New(sha256.New, s.key)
	m.Write([]byte(purpose.String()))
	m.Write([]byte{'-'})
	m.Write([]byte(payload))
	return m.Sum(nil)
}

// Sign computes the hex MAC of "{purpose}-{payload}". Deterministic.
func (s *hmacSigner) Sign(purpose linksecDomain.Purpose, payload string) (string, error) {
	if !purpose.Valid() {
		return "", linksecDomain.ErrUnknownPurpose
	}
	return hex.EncodeToString(s.mac(purpose, payload)), nil
}

// Verify reports whether candidateHex is the MAC of payload under purpose.
func (s *hmacSigner) Verify(purpose linksecDomain.Purpose, payload, candidateHex string) bool {
	if !purpose.Valid() || candidateHex == "" {
		return false
	}

	candidate, err := hex.DecodeString(candidateHex)
	if err != nil || len(candidate) != sha256.Size {
		return false
	}

	return hmac.Equal(candidate, s.mac(purpose, payload))
}
