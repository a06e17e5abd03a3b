package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrSessionClosed is returned when a committed or rolled back session is reused
var ErrSessionClosed = errors.New("session already closed")

// Session is a unit of work: one database transaction holding one pooled
// connection until Commit or Rollback. Rollback after Commit is a no-op, so
//
//	s, err := database.Begin(ctx, db)
//	if err != nil { ... }
//	defer s.Rollback()
//	... s.Tx() ...
//	return s.Commit()
//
// releases the connection on every path.
type Session struct {
	tx     *gorm.DB
	closed bool
}

// Begin opens a unit of work against db
func Begin(ctx context.Context, db *gorm.DB) (*Session, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &Session{tx: tx}, nil
}

// Tx returns the transaction handle for reads and writes in this unit of work
func (s *Session) Tx() *gorm.DB {
	return s.tx
}

// Commit makes every write of the unit visible and releases the connection
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the unit's writes and releases the connection
func (s *Session) Rollback() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Transaction runs fn in a unit of work, committing when fn returns nil and
// rolling back when it returns an error or panics.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// IsConstraintViolation reports whether err came from a foreign key, unique
// or check constraint rejecting a write. The SQLite dialector leaves check
// failures untranslated, so those are matched on the driver error.
func IsConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var liteErr sqlite3.Error
	return errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintCheck
}
