package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrSealBroken = errors.New("sealed blob cannot be opened")

// Sealed encrypts blobs before handing them to the wrapped storage, so a
// session token never rests in plain text.
type Sealed struct {
	inner BlobStorage
	key   [32]byte
}

// NewSealed derives the box key from secret.
func NewSealed(inner BlobStorage, secret string) (*Sealed, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("session secret must be at least 16 characters")
	}

	s := &Sealed{inner: inner}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("hris-console session blob"))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return s, nil
}

func (s *Sealed) Load(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < nonceSize {
		return nil, ErrSealBroken
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	blob, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrSealBroken
	}
	return blob, nil
}

func (s *Sealed) Save(ctx context.Context, key string, blob []byte) error {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], blob, &nonce, &s.key)
	return s.inner.Save(ctx, key, sealed)
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
