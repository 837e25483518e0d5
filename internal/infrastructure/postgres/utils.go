package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/recruitment-api/internal/domain"
)

// Códigos SQLSTATE de violaciones de integridad.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapErr anota err con la operación. Las violaciones de unicidad, FK o CHECK
// se traducen a domain.ErrIntegrity.
func wrapErr(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation:
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, domain.ErrIntegrity)
	}
	return fmt.Errorf("%s: %w", op, err)
}
