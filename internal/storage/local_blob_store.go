// Package storage implements blob persistence for portrait uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
)

// Compile-time check
var _ interfaces.BlobStore = (*LocalBlobStore)(nil)

// LocalBlobStore keeps blobs on the local filesystem under a base directory
// and serves them from a public URL prefix.
type LocalBlobStore struct {
	baseDir   string
	urlPrefix string
	logger    *zap.Logger
}

// NewLocalBlobStore creates a filesystem blob store. Files land under baseDir
// and are addressed as urlPrefix + "/" + key.
func NewLocalBlobStore(baseDir, urlPrefix string, logger *zap.Logger) *LocalBlobStore {
	return &LocalBlobStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logger.Named("LocalBlobStore"),
	}
}

// Save writes the blob under key, creating parent directories as needed.
func (s *LocalBlobStore) Save(ctx context.Context, key string, contents io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := io.Copy(f, contents); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close blob file: %w", err)
	}

	s.logger.Debug("Blob saved", zap.String("key", key))
	return s.urlPrefix + "/" + key, nil
}

// Delete removes the blob for key. Deleting a missing blob is not an error.
func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Debug("Blob deleted", zap.String("key", key))
	return nil
}

// resolve maps a key to an absolute path, rejecting traversal outside baseDir.
func (s *LocalBlobStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
