package minio

import (
	"errors"
	"fmt"
)

// Error codes carried by StorageError.
const (
	ErrCodeConnection     = "CONNECTION_ERROR"
	ErrCodeBucketNotFound = "BUCKET_NOT_FOUND"
	ErrCodeObjectNotFound = "OBJECT_NOT_FOUND"
	ErrCodePermission     = "PERMISSION_DENIED"
	ErrCodeInvalidInput   = "INVALID_INPUT"
)

// StorageError is returned by every MinIO operation.
type StorageError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Operation string `json:"operation,omitempty"`
	Cause     error  `json:"-"`
}

func (e *StorageError) Error() string {
	msg := e.Message
	if e.Operation != "" {
		msg = e.Operation + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func newStorageError(code, operation, message string, cause error) *StorageError {
	return &StorageError{Code: code, Message: message, Operation: operation, Cause: cause}
}

func invalidInput(message string) *StorageError {
	return newStorageError(ErrCodeInvalidInput, "", message, nil)
}

// CodeOf returns the code of the first StorageError in err's chain, or "".
func CodeOf(err error) string {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
