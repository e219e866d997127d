package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/storage"
	"github.com/minio/minio-go/v7"
)

// Client обёртка над minio.Client для работы с S3
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

// NewClient создаёт новый S3 клиент
func NewClient(client *minio.Client, bucket string, log *slog.Logger) storage.IS3Client {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// PutFile загружает файл в бакет. Существующий объект перезаписывается
func (c *Client) PutFile(ctx context.Context, path string, data []byte, contentType string) error {
	info, err := c.client.PutObject(ctx, c.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", path, err)
	}

	c.log.DebugContext(ctx, "object uploaded",
		"bucket", c.bucket,
		"path", path,
		"size", info.Size,
	)
	return nil
}

// GetPresignedURL ссылка на скачивание, действует expires
func (c *Client) GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = 5 * time.Minute // дефолтный TTL
	}

	url, err := c.client.PresignedGetObject(ctx, c.bucket, path, expires, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s: %w", path, err)
	}

	return url.String(), nil
}
