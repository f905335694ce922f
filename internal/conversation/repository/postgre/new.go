package postgre

import (
	"database/sql"

	"chat-realtime/internal/conversation/repository"
	pkgLog "chat-realtime/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var _ repository.Repository = &implRepository{}

// New returns a Postgres-backed conversation repository.
func New(l pkgLog.Logger, db *sql.DB) repository.Repository {
	return &implRepository{
		l:  l,
		db: db,
	}
}
