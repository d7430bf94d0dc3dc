package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	maxAttempts = 3

	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// Transaction runs fn in a single database transaction. On Postgres the
// transaction is serializable and retried when the server aborts it with a
// serialization failure.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	opts := TxOptions(db)
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = db.WithContext(ctx).Transaction(fn, opts...)
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

// TxOptions picks the isolation level the dialect supports.
func TxOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}
	return false
}

// IsDuplicateKey reports a unique constraint violation. Requires gorm's TranslateError.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// NewSession returns a condition-free handle that stays on tx's connection.
func NewSession(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true})
}
