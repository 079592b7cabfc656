package postgres

import (
	"errors"
	"fmt"

	"github.com/goto/ticketsearch/core/search"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

var (
	errNilDBClient       = errors.New("db client is nil")
	errNilPostgresClient = errors.New("postgres client is nil")
	errDuplicateKey      = errors.New("duplicate key")
)

// missingSchemaCodes are raised when a table, column or extension function
// a backend relies on is not installed.
var missingSchemaCodes = map[string]bool{
	pgerrcode.UndefinedTable:    true,
	pgerrcode.UndefinedFunction: true,
	pgerrcode.UndefinedObject:   true,
	pgerrcode.UndefinedColumn:   true,
	pgerrcode.InvalidSchemaName: true,
}

// checkPostgresError maps a missing schema to search.ErrBackendUnavailable
// and a unique violation to errDuplicateKey. Other errors are returned as
// is.
func checkPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case missingSchemaCodes[pgErr.Code]:
		return fmt.Errorf("%w: %s", search.ErrBackendUnavailable, pgErr.Message)
	case pgErr.Code == pgerrcode.UniqueViolation:
		return fmt.Errorf("%w [%s]", errDuplicateKey, pgErr.Detail)
	}
	return err
}

// backendError classifies err for the orchestrator.
func backendError(backend, op string, err error) error {
	err = checkPostgresError(err)
	if errors.Is(err, search.ErrBackendUnavailable) {
		return err
	}

	be := search.BackendError{Backend: backend, Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		be.Code = pgErr.Code
	}
	return be
}
