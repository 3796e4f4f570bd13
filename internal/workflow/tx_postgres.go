package workflow

import (
	"context"
	"database/sql"

	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/notifications"
	"docutrail/internal/routing"
)

type postgresTx struct {
	db *sql.DB
}

// NewPostgresTx creates a transaction runner over a database connection pool.
func NewPostgresTx(db *sql.DB) Tx {
	return &postgresTx{db: db}
}

func (p *postgresTx) RunInTx(ctx context.Context, fn func(Stores) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&txStores{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type txStores struct {
	tx *sql.Tx
}

func (s *txStores) Documents() documents.Store { return documents.NewPostgresStore(s.tx) }

func (s *txStores) Routing() routing.Store { return routing.NewPostgresStore(s.tx) }

func (s *txStores) Audit() audit.Store { return audit.NewPostgresStore(s.tx) }

func (s *txStores) Notifications() notifications.Store { return notifications.NewPostgresStore(s.tx) }

func (s *txStores) Directory() directory.Store { return directory.NewPostgresStore(s.tx) }
