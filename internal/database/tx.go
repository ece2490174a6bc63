package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
)

// Compile-time check to ensure TxManager implements interfaces.TxManager
var _ interfaces.TxManager = (*TxManager)(nil)

// TxManager runs units of work inside pgx transactions.
type TxManager struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewTxManager creates a transaction manager over the pool.
func NewTxManager(db *pgxpool.Pool, logger *zap.Logger) *TxManager {
	return &TxManager{
		db:     db,
		logger: logger.Named("TxManager"),
	}
}

// WithTransaction executes fn inside a transaction, rolling back on error or
// panic and committing otherwise.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, q interfaces.DBTX) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				m.logger.Error("Failed to rollback transaction after panic",
					zap.Error(rollbackErr),
					zap.Any("panic", p))
			}
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			m.logger.Error("Failed to rollback transaction",
				zap.Error(rollbackErr),
				zap.NamedError("original_error", err))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
