// Package storage persists uploaded binary blobs behind one contract, backed
// by the local filesystem or an S3 bucket. Every stored blob gets a freshly
// generated name with the original extension kept; the original filename is
// never reused, so collisions and path traversal are off the table.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/duallane/go-shop-api/internal/config"
)

// ErrGrantsUnsupported is returned when a presigned upload grant is requested
// against a backend that cannot issue one. This is a configuration error, not
// a degraded no-op.
var ErrGrantsUnsupported = errors.New("upload grants require the s3 storage backend")

// UploadGrant lets a client PUT a blob directly to remote storage within a
// bounded validity window, without the bytes passing through this process.
type UploadGrant struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

type Store interface {
	// Store writes the blob and returns its public locator.
	Store(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	CreateUploadGrant(ctx context.Context, fileName, contentType string) (*UploadGrant, error)
}

func New(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendLocal:
		return newLocalStore(cfg.UploadsDir), nil
	case config.StorageBackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		log.Info("s3 storage ready", "bucket", cfg.Bucket, "region", cfg.Region)
		return newS3Store(client, s3.NewPresignClient(client), cfg.Bucket, cfg.Region), nil
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.Backend)
	}
}
