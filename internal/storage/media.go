// Package storage implements the media upload adapter over an S3-compatible
// object store.
package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/config"
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadResult describes a successfully stored media object.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Size     int64  `json:"size"`
}

// MediaStore stores and removes media objects. Every failure surfaces as a
// typed error; callers never receive a nil result without an error.
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type mediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMediaStore connects to the configured object store and ensures the media
// bucket exists.
func NewMediaStore(cfg *config.Config) (MediaStore, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check media bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MediaBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create media bucket: %w", err)
		}
	}

	publicURL := cfg.MediaPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MediaUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MediaEndpoint, cfg.MediaBucket)
	}

	return &mediaStore{
		client:    client,
		bucket:    cfg.MediaBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload pushes a locally-staged file into the bucket and returns its stable
// URL. The staging file is removed only after the remote write succeeds, so a
// failed upload never consumes the source.
func (m *mediaStore) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	if localPath == "" {
		return nil, models.NewValidationError("file path is required")
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, models.NewValidationError("file does not exist: " + localPath)
	}

	ext := filepath.Ext(localPath)
	publicID := uuid.New().String() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := m.client.FPutObject(ctx, m.bucket, publicID, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("failed to upload media object: %w", err))
	}

	if err := os.Remove(localPath); err != nil {
		// The object is already stored; a leftover staging file is not fatal.
		fmt.Fprintf(os.Stderr, "warning: failed to remove staged file %s: %v\n", localPath, err)
	}

	return &UploadResult{
		URL:      m.publicURL + "/" + publicID,
		PublicID: publicID,
		Size:     info.Size(),
	}, nil
}

// Destroy removes an object by public ID. Empty IDs are tolerated so callers
// can pass through IDs extracted from possibly-absent URLs.
func (m *mediaStore) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return models.NewInternalError(fmt.Errorf("failed to delete media object %s: %w", publicID, err))
	}
	return nil
}

// ExtractPublicID recovers the object name from a stored media URL. Returns
// an empty string for URLs that do not look like media-store URLs.
func ExtractPublicID(url string) string {
	if url == "" {
		return ""
	}
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return ""
	}
	return url[idx+1:]
}
