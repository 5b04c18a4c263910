package importer

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pribylovaa/go-govjobs/internal/config"
)

// S3Source - источник NDJSON-выгрузок в MinIO/S3.
type S3Source struct {
	bucket string
	client *mclient.Client
}

// NewS3Source создаёт клиент MinIO.
// Схема в endpoint определяет Secure; отсутствие бакета - ошибка (fail-fast).
func NewS3Source(ctx context.Context, cfg config.S3Config) (*S3Source, error) {
	const op = "importer/NewS3Source"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &S3Source{bucket: cfg.Bucket, client: client}, nil
}

// Open открывает объект key на чтение. Отсутствие объекта проявляется
// при первом чтении или сразу через StatObject.
func (s *S3Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	const op = "importer/S3Source/Open"

	if _, err := s.client.StatObject(ctx, s.bucket, key, mclient.StatObjectOptions{}); err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil, fmt.Errorf("%s: object %q not found", op, key)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, mclient.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return obj, nil
}

// List возвращает ключи объектов с префиксом prefix.
func (s *S3Source) List(ctx context.Context, prefix string) ([]string, error) {
	const op = "importer/S3Source/List"

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, mclient.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, obj.Err)
		}
		keys = append(keys, obj.Key)
	}

	return keys, nil
}
