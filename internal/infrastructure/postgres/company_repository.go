package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, industry, location, website, description, active, ` + auditColumns

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa y asigna su ID.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	const query = `
		INSERT INTO companies (name, industry, location, website, description, active,
		                       created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.Name, c.Industry, c.Location, c.Website, c.Description, c.Active,
		c.CreatedAt, c.UpdatedAt, c.CreatedByID, c.UpdatedByID,
	).Scan(&c.ID)
	if err != nil {
		return wrapErr("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID; (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get company", err)
	}
	return c, nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	const query = `
		UPDATE companies
		   SET name = $2, industry = $3, location = $4, website = $5, description = $6, active = $7,
		       updated_at = $8, updated_by_id = $9
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Industry, c.Location, c.Website, c.Description, c.Active,
		c.UpdatedAt, c.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update company", err)
	}
	return nil
}

// List devuelve empresas en orden de inserción.
func (r *CompanyRepo) List(ctx context.Context, page repository.Page) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, wrapErr("list companies", err)
	}
	return collect(rows, "scan company", scanCompany)
}

// Delete elimina una empresa; vacantes y postulaciones caen por ON DELETE CASCADE.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return wrapErr("delete company", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	dest := append([]any{&c.ID, &c.Name, &c.Industry, &c.Location, &c.Website, &c.Description, &c.Active}, auditDest(&c.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}
