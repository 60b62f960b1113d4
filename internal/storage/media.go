package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore persists uploaded media bytes and returns an opaque public
// reference. The rest of the system only stores and deletes references;
// it never interprets the bytes.
type MediaStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// LocalStore keeps media on disk under a single directory. References are
// PublicPrefix + "/" + generated name; the directory is served statically
// under the same prefix.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:          dir,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}, nil
}

// Dir returns the directory backing the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the content under a fresh name, keeping the original extension.
func (s *LocalStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	return s.publicPrefix + "/" + name, nil
}

// Delete removes the file a reference points at. A missing file is not an
// error; the reference may already have been cleaned up.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	name := path.Base(ref)
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("invalid media reference %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}
