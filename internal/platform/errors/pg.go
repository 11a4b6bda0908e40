package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes with a mapping other than ErrorCodeDB
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrQueryCanceled             = "57014" // statement_timeout
	pgErrCannotConnectNow          = "57P03"
	pgErrReadOnlySQLTransaction    = "25006"
)

// pgCode maps a Postgres error to an ErrorCode; ok is false when err carries no PgError
func pgCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeDB, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgErrQueryCanceled, pgErrCannotConnectNow, pgErrReadOnlySQLTransaction:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a store error with the ErrorCode its SQLSTATE maps to.
// Project errors pass through unchanged and nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, isPg := pgCode(err)
	if _, ours := As(err); ours && !isPg {
		return err
	}
	return Wrap(err, code, msg)
}
