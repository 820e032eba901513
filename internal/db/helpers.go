package db

import "database/sql"

// Queryer is satisfied by *sql.DB and *sql.Tx, letting repositories run
// reads either directly or inside a transaction.
type Queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Execer additionally allows writes.
type Execer interface {
	Queryer
	Exec(query string, args ...any) (sql.Result, error)
}

// WithTx runs fn inside a transaction. Any error (or panic) rolls the
// whole transaction back; the availability re-check and the hold insert
// must always share one of these.
func WithTx(database *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := database.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
