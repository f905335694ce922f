package postgres

import "errors"

var (
	ErrInvalidID  = errors.New("invalid id")
	ErrInvalidIDs = errors.New("invalid ids")
)
