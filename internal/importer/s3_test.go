package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-govjobs/internal/config"
)

// Интеграционные тесты S3Source: поднимают MinIO через testcontainers-go.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/importer -v -race -count=1

const (
	minioUser     = "root"
	minioPassword = "rootpass"
	minioBucket   = "govjobs-imports"
)

// startMinio поднимает MinIO и возвращает конфиг и admin-клиент.
func startMinio(t *testing.T) (config.S3Config, *mclient.Client) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image: "docker.io/minio/minio:latest",
		Env: map[string]string{
			"MINIO_ROOT_USER":     minioUser,
			"MINIO_ROOT_PASSWORD": minioPassword,
		},
		Cmd:          []string{"server", "/data"},
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor:   wait.ForListeningPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	admin, err := mclient.New(host+":"+port.Port(), &mclient.Options{
		Creds: credentials.NewStaticV4(minioUser, minioPassword, ""),
	})
	require.NoError(t, err)

	cfg := config.S3Config{
		Endpoint:     fmt.Sprintf("http://%s:%s", host, port.Port()),
		RootUser:     minioUser,
		RootPassword: minioPassword,
		Bucket:       minioBucket,
	}

	return cfg, admin
}

func TestIntegration_S3Source(t *testing.T) {
	cfg, admin := startMinio(t)
	ctx := context.Background()

	_, err := NewS3Source(ctx, cfg)
	require.Error(t, err, "бакета ещё нет")

	require.NoError(t, admin.MakeBucket(ctx, minioBucket, mclient.MakeBucketOptions{Region: "us-east-1"}))

	body := []byte(`{"type":"job","title":"From S3"}` + "\n" + `{"broken"` + "\n")
	_, err = admin.PutObject(ctx, minioBucket, "exports/2024-03.ndjson", bytes.NewReader(body), int64(len(body)),
		mclient.PutObjectOptions{ContentType: "application/x-ndjson"})
	require.NoError(t, err)

	src, err := NewS3Source(ctx, cfg)
	require.NoError(t, err)

	keys, err := src.List(ctx, "exports/")
	require.NoError(t, err)
	require.Equal(t, []string{"exports/2024-03.ndjson"}, keys)

	rc, err := src.Open(ctx, keys[0])
	require.NoError(t, err)
	defer rc.Close()

	items, bad, err := ReadNDJSON(rc)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "From S3", items[0].Title)
	require.Len(t, bad, 1)

	_, err = src.Open(ctx, "exports/missing.ndjson")
	require.Error(t, err)

	_, _ = io.Copy(io.Discard, rc)
}
