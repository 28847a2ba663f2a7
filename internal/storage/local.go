package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores media under a directory on disk; the HTTP server serves
// that directory at the public URL
type Local struct {
	dir     string
	baseURL string
}

// NewLocal creates the directory if needed
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Local{dir: dir, baseURL: baseURL}, nil
}

// Dir returns the root directory
func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(l.dir, filepath.FromSlash(clean)), nil
}

func (l *Local) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (*Blob, error) {
	p, err := l.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object dir: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create object: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(p)
		return nil, fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close object: %w", err)
	}

	return &Blob{Key: key, URL: joinURL(l.baseURL, key)}, nil
}

// Delete removes the file; a missing file is not an error
func (l *Local) Delete(ctx context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (l *Local) Presign(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	return nil, ErrPresignUnsupported
}

func (l *Local) KeyFromURL(url string) (string, bool) {
	return trimBase(l.baseURL, url)
}
