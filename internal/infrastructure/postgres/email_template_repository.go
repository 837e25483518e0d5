package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.EmailTemplateRepository = (*EmailTemplateRepo)(nil)

const emailTemplateColumns = `id, name, description, type, subject_template, html_content, is_active, ` + auditColumns

// EmailTemplateRepo adaptador PostgreSQL de plantillas de correo.
type EmailTemplateRepo struct {
	q Querier
}

// NewEmailTemplateRepository construye el adaptador. Acepta pool o tx (Querier).
func NewEmailTemplateRepository(q Querier) *EmailTemplateRepo {
	return &EmailTemplateRepo{q: q}
}

func (r *EmailTemplateRepo) Create(ctx context.Context, t *entity.EmailTemplate) error {
	const query = `
		INSERT INTO email_templates (name, description, type, subject_template, html_content, is_active,
		                             created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.Name, t.Description, t.Type, t.SubjectTemplate, t.HTMLContent, t.IsActive,
		t.CreatedAt, t.UpdatedAt, t.CreatedByID, t.UpdatedByID,
	).Scan(&t.ID)
	if err != nil {
		return wrapErr("insert email template", err)
	}
	return nil
}

func (r *EmailTemplateRepo) GetByID(ctx context.Context, id int64) (*entity.EmailTemplate, error) {
	return r.getOne(ctx, "get email template",
		`SELECT `+emailTemplateColumns+` FROM email_templates WHERE id = $1`, id)
}

// GetActive primera plantilla activa del tipo; name vacío no filtra por nombre.
func (r *EmailTemplateRepo) GetActive(ctx context.Context, templateType, name string) (*entity.EmailTemplate, error) {
	return r.getOne(ctx, "get active email template",
		`SELECT `+emailTemplateColumns+` FROM email_templates
		  WHERE is_active AND type = $1 AND ($2 = '' OR name = $2)
		  ORDER BY id LIMIT 1`,
		templateType, name)
}

func (r *EmailTemplateRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.EmailTemplate, error) {
	t, err := scanEmailTemplate(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return t, nil
}

func (r *EmailTemplateRepo) Update(ctx context.Context, t *entity.EmailTemplate) error {
	const query = `
		UPDATE email_templates
		   SET name = $2, description = $3, type = $4, subject_template = $5, html_content = $6,
		       is_active = $7, updated_at = $8, updated_by_id = $9
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Description, t.Type, t.SubjectTemplate, t.HTMLContent,
		t.IsActive, t.UpdatedAt, t.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update email template", err)
	}
	return nil
}

func (r *EmailTemplateRepo) List(ctx context.Context, f repository.EmailTemplateFilter, page repository.Page) ([]*entity.EmailTemplate, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	query := `SELECT ` + emailTemplateColumns + ` FROM email_templates`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, page.Limit, page.Skip)
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list email templates", err)
	}
	return collect(rows, "scan email template", scanEmailTemplate)
}

func (r *EmailTemplateRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM email_templates WHERE id = $1`, id); err != nil {
		return wrapErr("delete email template", err)
	}
	return nil
}

func scanEmailTemplate(row pgx.Row) (*entity.EmailTemplate, error) {
	var t entity.EmailTemplate
	dest := append([]any{
		&t.ID, &t.Name, &t.Description, &t.Type, &t.SubjectTemplate, &t.HTMLContent, &t.IsActive,
	}, auditDest(&t.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}
