package storage

import (
	"context"
	"time"
)

// IS3Client хранилище полных отчётов по прогнозам (MinIO или другое S3-совместимое)
type IS3Client interface {
	PutFile(ctx context.Context, path string, data []byte, contentType string) error
	// GetPresignedURL временная ссылка на скачивание объекта
	GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}
