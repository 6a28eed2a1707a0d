package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"taskboard/internal/domain"
)

// Postgres error codes we care about.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRep      = "22P02"
)

// translate maps driver-level failures to domain error kinds. This is the only
// place in the codebase that understands Postgres error codes; everything
// above the repositories sees domain errors only.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return domain.ErrDuplicateEmail
		case pqForeignKeyViolation:
			return domain.ErrOwnerNotFound
		case pqInvalidTextRep:
			// An id that is not even a valid UUID cannot reference any row.
			return domain.ErrNotFound
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrInternal, err)
}
