package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config хранилище полных отчётов. Без HOST экспорт отчётов недоступен
type Config struct {
	Host       string `envconfig:"HOST"`       // localhost:9000
	AccessKey  string `envconfig:"ACCESS_KEY"` // minioadmin
	SecretKey  string `envconfig:"SECRET_KEY"` // minioadmin
	Bucket     string `envconfig:"BUCKET" default:"reports"`
	UseSSL     bool   `envconfig:"USE_SSL" default:"false"` // false для локальной разработки
	AutoCreate bool   `envconfig:"AUTO_CREATE_BUCKET" default:"true"`
}

// Enabled true, если хранилище настроено
func (c *Config) Enabled() bool {
	return c != nil && c.Host != ""
}

// NewClient создаёт новый MinIO клиент и проверяет бакет
func (c *Config) NewClient(ctx context.Context) (*minio.Client, error) {
	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if !c.AutoCreate {
			return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
		}
		if err := client.MakeBucket(checkCtx, c.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", c.Bucket, err)
		}
	}

	return client, nil
}
