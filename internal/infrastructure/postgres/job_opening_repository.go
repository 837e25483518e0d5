package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.JobOpeningRepository = (*JobOpeningRepo)(nil)

const jobOpeningColumns = `id, company_id, interview_template_id, title, description, requirements, location,
	salary_range, job_type, experience_level, status, ` + auditColumns

// JobOpeningRepo adaptador PostgreSQL de vacantes.
type JobOpeningRepo struct {
	q Querier
}

// NewJobOpeningRepository construye el adaptador. Acepta pool o tx (Querier).
func NewJobOpeningRepository(q Querier) *JobOpeningRepo {
	return &JobOpeningRepo{q: q}
}

func (r *JobOpeningRepo) Create(ctx context.Context, j *entity.JobOpening) error {
	const query = `
		INSERT INTO job_openings (company_id, interview_template_id, title, description, requirements, location,
		                          salary_range, job_type, experience_level, status,
		                          created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		j.CompanyID, j.InterviewTemplateID, j.Title, j.Description, j.Requirements, j.Location,
		j.SalaryRange, string(j.JobType), j.ExperienceLevel, string(j.Status),
		j.CreatedAt, j.UpdatedAt, j.CreatedByID, j.UpdatedByID,
	).Scan(&j.ID)
	if err != nil {
		return wrapErr("insert job opening", err)
	}
	return nil
}

func (r *JobOpeningRepo) GetByID(ctx context.Context, id int64) (*entity.JobOpening, error) {
	j, err := scanJobOpening(r.q.QueryRow(ctx, `SELECT `+jobOpeningColumns+` FROM job_openings WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get job opening", err)
	}
	return j, nil
}

func (r *JobOpeningRepo) Update(ctx context.Context, j *entity.JobOpening) error {
	const query = `
		UPDATE job_openings
		   SET interview_template_id = $2, title = $3, description = $4, requirements = $5, location = $6,
		       salary_range = $7, job_type = $8, experience_level = $9, status = $10,
		       updated_at = $11, updated_by_id = $12
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		j.ID, j.InterviewTemplateID, j.Title, j.Description, j.Requirements, j.Location,
		j.SalaryRange, string(j.JobType), j.ExperienceLevel, string(j.Status),
		j.UpdatedAt, j.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update job opening", err)
	}
	return nil
}

// List filtra por empresa y estado cuando vienen informados.
func (r *JobOpeningRepo) List(ctx context.Context, f repository.JobOpeningFilter, page repository.Page) ([]*entity.JobOpening, error) {
	var (
		where []string
		args  []any
	)
	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		where = append(where, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + jobOpeningColumns + ` FROM job_openings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, page.Limit, page.Skip)
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list job openings", err)
	}
	return collect(rows, "scan job opening", scanJobOpening)
}

func (r *JobOpeningRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM job_openings WHERE id = $1`, id); err != nil {
		return wrapErr("delete job opening", err)
	}
	return nil
}

func scanJobOpening(row pgx.Row) (*entity.JobOpening, error) {
	var (
		j               entity.JobOpening
		jobType, status string
	)
	dest := append([]any{
		&j.ID, &j.CompanyID, &j.InterviewTemplateID, &j.Title, &j.Description, &j.Requirements, &j.Location,
		&j.SalaryRange, &jobType, &j.ExperienceLevel, &status,
	}, auditDest(&j.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	j.JobType = entity.JobType(jobType)
	j.Status = entity.JobStatus(status)
	return &j, nil
}
