package notifications

import (
	"database/sql"
	"log/slog"
)

// System defines the public contract for the notification domain.
type System interface {
	Store
	Handler() *Handler
}

type system struct {
	Store
	logger *slog.Logger
}

// New creates a postgres-backed notification system.
func New(db *sql.DB, logger *slog.Logger) System {
	return &system{
		Store:  NewPostgresStore(db),
		logger: logger.With("system", "notifications"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}
