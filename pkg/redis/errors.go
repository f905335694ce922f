package redis

import "errors"

var (
	ErrHostRequired    = errors.New("redis: host is required")
	ErrInvalidPort     = errors.New("redis: invalid port")
	ErrChannelRequired = errors.New("redis: channel is required")
)
