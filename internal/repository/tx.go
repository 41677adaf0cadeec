package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TxRunner executes fn inside a single database transaction. Repositories
// receive the tx handle through their ...Tx methods; fn must not commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewTxRunner returns a TxRunner over db. A positive lockTimeout bounds every
// row-lock wait inside the transaction (PostgreSQL only).
func NewTxRunner(db *gorm.DB, lockTimeout time.Duration) TxRunner {
	return &gormTxRunner{db: db, lockTimeout: lockTimeout}
}

func (r *gormTxRunner) Run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockTimeout > 0 && tx.Dialector.Name() == "postgres" {
			// SET does not accept bind parameters.
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})
	return clasificarError(err)
}

// PostgreSQL error codes surfaced as conflicts.
const (
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// clasificarError maps lock and serialization failures to apperror.ErrConflict.
// Errors that already carry a kind pass through unchanged.
func clasificarError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable:
			return apperror.Conflicto("tx", "Registro bloqueado por otra operación, reintente", err)
		case pgSerializationFailure, pgDeadlockDetected:
			return apperror.Conflicto("tx", "Conflicto de concurrencia, reintente", err)
		case pgUniqueViolation:
			return apperror.Conflicto("tx", "El registro ya existe", err)
		}
	}
	return err
}
