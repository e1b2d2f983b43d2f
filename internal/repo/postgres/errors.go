package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

const uniqueViolationCode = "23505"

// mapError translates driver errors into the domain error taxonomy. This is
// the only place storage error codes are inspected.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrUniqueViolation
	}
	return err
}
