package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres error codes we care about beyond what gorm translates.
const (
	pgUndefinedTable = "42P01"
)

// IsUndefinedTable reports whether err is Postgres "relation does not exist".
// Used by callers that must tolerate tables which have not been rolled out
// yet (incremental schema migration).
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}

	return false
}

// OpenWithDSN opens an additional gorm connection with an explicit DSN,
// bypassing the global pool. The repair tool uses this for its elevated
// service credential.
func OpenWithDSN(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open service connection: %w", err)
	}

	return conn, nil
}
