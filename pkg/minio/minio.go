package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

func (m *implMinIO) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.minioClient.ListBuckets(ctx); err != nil {
		m.connected = false
		return handleMinIOError(err, "connect")
	}

	m.connected = true
	return nil
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return newStorageError(ErrCodeConnection, "health_check", "not connected", nil)
	}
	if _, err := m.minioClient.ListBuckets(ctx); err != nil {
		return handleMinIOError(err, "health_check")
	}
	return nil
}

func (m *implMinIO) PresignedGetURL(ctx context.Context, bucketName, objectName, filename string, expiry time.Duration) (string, error) {
	if err := validateBucketName(bucketName); err != nil {
		return "", err
	}
	if err := validateObjectName(objectName); err != nil {
		return "", err
	}
	if expiry <= 0 || expiry > maxPresignExpiry {
		return "", invalidInput("expiry must be between 1s and 7 days")
	}

	var params url.Values
	if filename != "" {
		params = url.Values{}
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}

	u, err := m.minioClient.PresignedGetObject(ctx, bucketName, objectName, expiry, params)
	if err != nil {
		return "", handleMinIOError(err, "presigned_get_object")
	}
	return u.String(), nil
}

// Close marks the client disconnected. The underlying pool needs no shutdown.
func (m *implMinIO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	return nil
}

func handleMinIOError(err error, operation string) *StorageError {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "":
		return newStorageError(ErrCodeConnection, operation, "storage connection failed", err)
	case "NoSuchBucket":
		return newStorageError(ErrCodeBucketNotFound, operation, "bucket not found: "+resp.BucketName, err)
	case "NoSuchKey":
		return newStorageError(ErrCodeObjectNotFound, operation, "object not found: "+resp.Key, err)
	case "AccessDenied":
		return newStorageError(ErrCodePermission, operation, "access denied", err)
	default:
		return newStorageError(ErrCodeConnection, operation, "operation failed: "+resp.Code, err)
	}
}
