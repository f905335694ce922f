package response

import (
	"chat-realtime/pkg/errors"
)

type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

type ErrorMapping map[error]*errors.HTTPError
