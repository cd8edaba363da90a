package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const alphanumericChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type alphanumericGenerator struct{}

// NewOrderIDGenerator creates a generator drawing from the 62 symbols [A-Za-z0-9]
// with crypto/rand.
func NewOrderIDGenerator() OrderIDGenerator {
	return &alphanumericGenerator{}
}

// Generate returns a random alphanumeric string of the given length (1..255).
func (g *alphanumericGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", errors.New("length must be at least 1")
	}
	if length > 255 {
		return "", errors.New("length must not exceed 255")
	}

	id := make([]byte, length)
	charsLen := big.NewInt(int64(len(alphanumericChars)))

	for i := range id {
		n, err := rand.Int(rand.Reader, charsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		id[i] = alphanumericChars[n.Int64()]
	}

	return string(id), nil
}
