package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `a.id, a.candidate_id, a.job_opening_id, a.status, a.applied_date, a.resume_version,
	a.cover_letter, a.notes, a.interview_feedback, a.salary_expectation,
	a.created_at, a.updated_at, a.created_by_id, a.updated_by_id`

// applicationDetailFrom join explícito con candidato, vacante y empresa.
const applicationDetailFrom = `
	FROM applications a
	JOIN candidates c   ON c.id = a.candidate_id
	JOIN job_openings j ON j.id = a.job_opening_id
	JOIN companies co   ON co.id = j.company_id`

// ApplicationRepo adaptador PostgreSQL de postulaciones.
type ApplicationRepo struct {
	q Querier
}

// NewApplicationRepository construye el adaptador. Acepta pool o tx (Querier).
func NewApplicationRepository(q Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *entity.Application) error {
	const query = `
		INSERT INTO applications (candidate_id, job_opening_id, status, applied_date, resume_version, cover_letter,
		                          notes, interview_feedback, salary_expectation,
		                          created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.CandidateID, a.JobOpeningID, string(a.Status), a.AppliedDate, a.ResumeVersion, a.CoverLetter,
		a.Notes, a.InterviewFeedback, a.SalaryExpectation,
		a.CreatedAt, a.UpdatedAt, a.CreatedByID, a.UpdatedByID,
	).Scan(&a.ID)
	if err != nil {
		return wrapErr("insert application", err)
	}
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	return r.getOne(ctx, "get application", `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
}

func (r *ApplicationRepo) GetByCandidateAndJob(ctx context.Context, candidateID, jobOpeningID int64) (*entity.Application, error) {
	return r.getOne(ctx, "get application by candidate and job",
		`SELECT `+applicationColumns+` FROM applications a WHERE a.candidate_id = $1 AND a.job_opening_id = $2`,
		candidateID, jobOpeningID)
}

func (r *ApplicationRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Application, error) {
	a, err := scanApplication(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return a, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, a *entity.Application) error {
	const query = `
		UPDATE applications
		   SET status = $2, resume_version = $3, cover_letter = $4, notes = $5, interview_feedback = $6,
		       salary_expectation = $7, updated_at = $8, updated_by_id = $9
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, string(a.Status), a.ResumeVersion, a.CoverLetter, a.Notes, a.InterviewFeedback,
		a.SalaryExpectation, a.UpdatedAt, a.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update application", err)
	}
	return nil
}

func (r *ApplicationRepo) List(ctx context.Context, f repository.ApplicationFilter, page repository.Page) ([]*entity.Application, error) {
	where, args := applicationWhere(f)
	args = append(args, page.Limit, page.Skip)
	query := fmt.Sprintf(`SELECT %s FROM applications a%s ORDER BY a.id LIMIT $%d OFFSET $%d`,
		applicationColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list applications", err)
	}
	return collect(rows, "scan application", scanApplication)
}

func (r *ApplicationRepo) ListDetailed(ctx context.Context, f repository.ApplicationFilter, page repository.Page) ([]*entity.ApplicationDetail, error) {
	where, args := applicationWhere(f)
	args = append(args, page.Limit, page.Skip)
	query := fmt.Sprintf(`SELECT %s, c.first_name, c.last_name, c.email, j.title, co.id, co.name %s%s ORDER BY a.id LIMIT $%d OFFSET $%d`,
		applicationColumns, applicationDetailFrom, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list application details", err)
	}
	return collect(rows, "scan application detail", scanApplicationDetail)
}

func (r *ApplicationRepo) GetDetail(ctx context.Context, id int64) (*entity.ApplicationDetail, error) {
	query := `SELECT ` + applicationColumns + `, c.first_name, c.last_name, c.email, j.title, co.id, co.name` +
		applicationDetailFrom + ` WHERE a.id = $1`
	d, err := scanApplicationDetail(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get application detail", err)
	}
	return d, nil
}

// Delete elimina la postulación; el proceso de entrevistas cae en cascada.
func (r *ApplicationRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id); err != nil {
		return wrapErr("delete application", err)
	}
	return nil
}

func applicationWhere(f repository.ApplicationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.CandidateID != nil {
		args = append(args, *f.CandidateID)
		conds = append(conds, fmt.Sprintf("a.candidate_id = $%d", len(args)))
	}
	if f.JobOpeningID != nil {
		args = append(args, *f.JobOpeningID)
		conds = append(conds, fmt.Sprintf("a.job_opening_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func applicationDest(a *entity.Application, status *string) []any {
	return append([]any{
		&a.ID, &a.CandidateID, &a.JobOpeningID, status, &a.AppliedDate, &a.ResumeVersion,
		&a.CoverLetter, &a.Notes, &a.InterviewFeedback, &a.SalaryExpectation,
	}, auditDest(&a.Audit)...)
}

func scanApplication(row pgx.Row) (*entity.Application, error) {
	var (
		a      entity.Application
		status string
	)
	if err := row.Scan(applicationDest(&a, &status)...); err != nil {
		return nil, err
	}
	a.Status = entity.ApplicationStatus(status)
	return &a, nil
}

func scanApplicationDetail(row pgx.Row) (*entity.ApplicationDetail, error) {
	var (
		d           entity.ApplicationDetail
		status      string
		first, last string
	)
	dest := append(applicationDest(&d.Application, &status),
		&first, &last, &d.CandidateEmail, &d.JobTitle, &d.CompanyID, &d.CompanyName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	d.Status = entity.ApplicationStatus(status)
	c := entity.Candidate{FirstName: first, LastName: last}
	d.CandidateName = c.FullName()
	return &d, nil
}
