package minio

import (
	"strings"
	"time"
)

const maxPresignExpiry = 7 * 24 * time.Hour

func validateConfig(cfg *Config) error {
	if cfg.Endpoint == "" {
		return invalidInput("endpoint is required")
	}
	if cfg.AccessKey == "" {
		return invalidInput("access key is required")
	}
	if cfg.SecretKey == "" {
		return invalidInput("secret key is required")
	}
	if cfg.Region == "" {
		return invalidInput("region is required")
	}

	if !strings.Contains(cfg.Endpoint, ":") {
		cfg.Endpoint = cfg.Endpoint + ":9000"
	}

	return nil
}

func validateBucketName(bucketName string) error {
	if len(bucketName) < 3 || len(bucketName) > 63 {
		return invalidInput("bucket name must be between 3 and 63 characters")
	}
	if strings.ToLower(bucketName) != bucketName {
		return invalidInput("bucket name must be lowercase")
	}
	return nil
}

func validateObjectName(objectName string) error {
	if objectName == "" {
		return invalidInput("object name is required")
	}
	if strings.HasPrefix(objectName, "/") {
		return invalidInput("object name cannot start with '/'")
	}
	if len(objectName) > 1024 {
		return invalidInput("object name cannot exceed 1024 characters")
	}
	return nil
}
