package interfaces

import (
	"context"
	"io"
)

// BlobStore stores portrait files. Keys are generated unique names, so
// concurrent uploads never collide; the store is append/delete only.
type BlobStore interface {
	// Save writes the blob under key and returns the public path it is
	// served from.
	Save(ctx context.Context, key string, contents io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}
