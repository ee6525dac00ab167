package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yigit/clubsphere/internal/pkg/logger"
)

// Buckets
const (
	BucketAvatars    = "avatars"
	BucketClubLogos  = "club-logos"
	BucketClubCovers = "club-covers"
)

// ObjectStore stores uploaded objects under a bucket and serves them by URL
type ObjectStore interface {
	// Upload writes r to bucket/objectPath and returns its public URL
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error)
	// PublicURL returns the URL an uploaded object is served from
	PublicURL(bucket, objectPath string) string
	// Delete removes an object. Missing objects are not an error.
	Delete(ctx context.Context, bucket, objectPath string) error
}

// LocalStorage keeps objects on the local filesystem, one directory per bucket.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the base directory and returns a store serving
// objects under baseURL (for example http://host/uploads).
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath is the directory served under the public URL prefix
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func (ls *LocalStorage) resolve(bucket, objectPath string) (string, error) {
	clean := path.Clean("/" + objectPath)
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || clean == "/" {
		return "", fmt.Errorf("invalid object location %q/%q", bucket, objectPath)
	}
	return filepath.Join(ls.basePath, bucket, filepath.FromSlash(clean)), nil
}

// Upload writes the object, replacing any previous content at the same path.
func (ls *LocalStorage) Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error) {
	dstPath, err := ls.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create bucket directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to flush file content: %w", err)
	}
	if err := os.Rename(tmp.Name(), dstPath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	url := ls.PublicURL(bucket, objectPath)
	logger.Info().Str("bucket", bucket).Str("object", objectPath).Str("url", url).Msg("File saved successfully")
	return url, nil
}

// PublicURL returns the URL an object is served from
func (ls *LocalStorage) PublicURL(bucket, objectPath string) string {
	return ls.baseURL + "/" + bucket + "/" + strings.TrimLeft(path.Clean("/"+objectPath), "/")
}

// Delete removes an object from storage
func (ls *LocalStorage) Delete(_ context.Context, bucket, objectPath string) error {
	physicalPath, err := ls.resolve(bucket, objectPath)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
