package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds connection settings for an S3-compatible object store.
type MinioConfig struct {
	Endpoint  string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"STORAGE_ACCESS_KEY"`
	SecretKey string `envconfig:"STORAGE_SECRET_KEY"`
	Bucket    string `envconfig:"STORAGE_BUCKET" default:"images"`
	UseSSL    bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// MinioStore is a Store backed by an S3-compatible server.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the configured endpoint and ensures the bucket
// exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string, allowOverwrite bool) error {
	if !allowOverwrite {
		// S3 has no native put-if-absent; a stat races with concurrent
		// uploads, but keys are freshly generated UUIDs so a collision is
		// effectively impossible.
		_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		if err == nil {
			return ErrKeyExists
		}
		if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" && resp.StatusCode != 404 {
			return fmt.Errorf("failed to stat object %q: %w", key, err)
		}
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object %q: %w", key, err)
	}
	return signed.String(), nil
}

func (s *MinioStore) PublicURL(key string) string {
	endpoint := *s.client.EndpointURL()
	endpoint.Path = "/" + s.bucket + "/" + key
	return endpoint.String()
}
