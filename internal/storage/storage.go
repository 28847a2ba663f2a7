// Package storage writes uploaded media files to blob storage.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrPresignUnsupported is returned by backends that cannot issue
// direct-upload URLs
var ErrPresignUnsupported = errors.New("presigned uploads are not supported by this storage backend")

// Blob is a stored object
type Blob struct {
	Key string
	URL string
}

// PresignedUpload is a short-lived URL a client can PUT a file to
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// Storage is implemented by the S3 and local disk backends
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (*Blob, error)
	Delete(ctx context.Context, key string) error
	Presign(ctx context.Context, key, contentType string) (*PresignedUpload, error)
	// KeyFromURL recovers the object key from a URL this backend produced
	KeyFromURL(url string) (string, bool)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func trimBase(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
