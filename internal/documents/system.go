package documents

import (
	"database/sql"
	"log/slog"

	"docutrail/internal/audit"
	"docutrail/internal/routing"
	"docutrail/pkg/pagination"
	"docutrail/pkg/storage"
)

// System defines the public contract for the document domain.
type System interface {
	Store
	Handler(auditLog audit.Store, ledger routing.Store) *Handler
}

type system struct {
	Store
	blobs  storage.System
	pages  pagination.Config
	logger *slog.Logger
}

// New creates a postgres-backed document system.
func New(db *sql.DB, blobs storage.System, pages pagination.Config, logger *slog.Logger) System {
	return &system{
		Store:  NewPostgresStore(db),
		blobs:  blobs,
		pages:  pages,
		logger: logger.With("system", "documents"),
	}
}

func (s *system) Handler(auditLog audit.Store, ledger routing.Store) *Handler {
	return NewHandler(s, auditLog, ledger, s.blobs, s.pages, s.logger)
}
