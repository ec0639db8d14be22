package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage stores uploaded player photos and returns their public URL. The
// rest of the service only ever keeps the returned URL string.
type Storage interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
}

// LocalStorage writes photos into a directory that the HTTP server exposes
// under /uploads/.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a LocalStorage. Call Init before first use.
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: baseURL}
}

// Init creates the upload directory. Kept out of the constructor so the
// filesystem side effect happens at bootstrap, not on first use.
func (s *LocalStorage) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}
	return nil
}

// Dir returns the directory photos are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes the photo under a generated name and returns its public URL.
func (s *LocalStorage) Save(ctx context.Context, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write photo file %s: %w", path, err)
	}

	return s.baseURL + "/uploads/" + name, nil
}
