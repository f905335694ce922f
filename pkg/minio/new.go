package minio

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxIdleConns        = 100
	maxIdleConnsPerHost = 100
	idleConnTimeout     = 90 * time.Second
)

// MinIO is the read side of the attachment store.
type MinIO interface {
	// Connect verifies the endpoint by listing buckets.
	Connect(ctx context.Context) error
	// HealthCheck verifies the connection is still healthy.
	HealthCheck(ctx context.Context) error
	// PresignedGetURL returns a time-limited download URL for an object.
	// When filename is set the URL forces it as the download name.
	PresignedGetURL(ctx context.Context, bucketName, objectName, filename string, expiry time.Duration) (string, error)
	Close() error
}

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

type implMinIO struct {
	minioClient *minio.Client
	config      Config
	mu          sync.RWMutex
	connected   bool
}

// NewMinIO creates a MinIO client. It does not touch the network until Connect.
func NewMinIO(cfg Config) (MinIO, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}

	return &implMinIO{
		minioClient: client,
		config:      cfg,
	}, nil
}
