package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// auditColumns columnas de auditoría, en el orden que espera auditDest.
const auditColumns = `created_at, updated_at, created_by_id, updated_by_id`

func auditDest(a *entity.Audit) []any {
	return []any{&a.CreatedAt, &a.UpdatedAt, &a.CreatedByID, &a.UpdatedByID}
}

// collect recorre rows con scan y cierra el cursor.
func collect[T any](rows pgx.Rows, op string, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var list []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return list, nil
}
