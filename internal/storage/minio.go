package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/eleclys/Chatroom/internal/config"
)

// BlobStore holds the room's uploaded files in a single MinIO bucket.
// Object keys are the derived upload names; file records point at these
// keys, and clients fetch the blobs through URL.
type BlobStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewBlobStore connects to MinIO with the endpoint and credentials from
// cfg and creates the upload bucket if it is missing.
func NewBlobStore(cfg *config.Config) (*BlobStore, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.MinIOUseSSL {
		scheme = "https"
	}

	return &BlobStore{
		client:  client,
		bucket:  cfg.MinIOBucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, cfg.MinIOEndpoint, cfg.MinIOBucket),
	}, nil
}

// Upload writes one uploaded file under the given key.
func (b *BlobStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := b.client.PutObject(ctx, b.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// URL returns the address clients fetch the object from. It is carried
// in the file-uploaded announcement so sessions can link the blob
// directly.
func (b *BlobStore) URL(key string) string {
	return b.baseURL + "/" + key
}

// Delete removes the object behind a deleted file record.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	return b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
}
