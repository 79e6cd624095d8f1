package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrEditConflict    = errors.New("edit conflict")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrCheckViolation  = errors.New("check constraint violation")
)

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// translateError maps constraint violations onto the repository's sentinel errors.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeForeignKeyViolation:
		return ErrRecordNotFound
	case codeUniqueViolation:
		return ErrDuplicateRecord
	case codeCheckViolation:
		return ErrCheckViolation
	default:
		return err
	}
}
