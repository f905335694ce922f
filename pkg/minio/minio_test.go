package minio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) MinIO {
	t.Helper()
	m, err := NewMinIO(Config{
		Endpoint:  "localhost:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Region:    "us-east-1",
	})
	require.NoError(t, err)
	return m
}

func TestNewMinIO_Validate(t *testing.T) {
	tcs := map[string]Config{
		"no endpoint":   {AccessKey: "a", SecretKey: "s", Region: "r"},
		"no access key": {Endpoint: "localhost", SecretKey: "s", Region: "r"},
		"no secret key": {Endpoint: "localhost", AccessKey: "a", Region: "r"},
		"no region":     {Endpoint: "localhost", AccessKey: "a", SecretKey: "s"},
	}

	for name, cfg := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := NewMinIO(cfg)
			var se *StorageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, ErrCodeInvalidInput, se.Code)
		})
	}
}

func TestPresignedGetURL(t *testing.T) {
	m := newTestClient(t)

	u, err := m.PresignedGetURL(context.Background(), "attachments", "conversations/1/a.png", "a.png", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/attachments/conversations/1/a.png?"))
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "response-content-disposition=")
}

func TestPresignedGetURL_InvalidInput(t *testing.T) {
	m := newTestClient(t)
	ctx := context.Background()

	tcs := map[string]struct {
		bucket string
		object string
		expiry time.Duration
	}{
		"short bucket":     {bucket: "ab", object: "x", expiry: time.Hour},
		"uppercase bucket": {bucket: "Attachments", object: "x", expiry: time.Hour},
		"empty object":     {bucket: "attachments", expiry: time.Hour},
		"absolute object":  {bucket: "attachments", object: "/x", expiry: time.Hour},
		"zero expiry":      {bucket: "attachments", object: "x"},
		"expiry too long":  {bucket: "attachments", object: "x", expiry: 8 * 24 * time.Hour},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := m.PresignedGetURL(ctx, tc.bucket, tc.object, "", tc.expiry)
			var se *StorageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, ErrCodeInvalidInput, se.Code)
		})
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	err := newTestClient(t).HealthCheck(context.Background())
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, ErrCodeConnection, se.Code)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))

	wrapped := fmt.Errorf("presign: %w", invalidInput("bad"))
	assert.Equal(t, ErrCodeInvalidInput, CodeOf(wrapped))
}
