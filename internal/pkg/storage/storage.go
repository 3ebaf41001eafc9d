package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

// BlobStorage keeps small opaque blobs by key.
type BlobStorage interface {
	// Load returns ErrNotFound when nothing is stored under key
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the blob under key
	Save(ctx context.Context, key string, blob []byte) error

	// Delete removes the blob, deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
