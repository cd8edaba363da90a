package domain

import "context"

// KMSKeeper is the subset of *secrets.Keeper used to unwrap configured secrets.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSEncrypter is implemented by keepers that can also wrap new secrets.
type KMSEncrypter interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
}
