package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.CandidateRepository = (*CandidateRepo)(nil)

const candidateColumns = `id, user_id, first_name, last_name, email, phone, resume_url, linkedin_url, skills,
	experience_years, current_company, current_position, education, available_from, notes, ` + auditColumns

// CandidateRepo adaptador PostgreSQL de candidatos.
type CandidateRepo struct {
	q Querier
}

// NewCandidateRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCandidateRepository(q Querier) *CandidateRepo {
	return &CandidateRepo{q: q}
}

func (r *CandidateRepo) Create(ctx context.Context, c *entity.Candidate) error {
	const query = `
		INSERT INTO candidates (user_id, first_name, last_name, email, phone, resume_url, linkedin_url, skills,
		                        experience_years, current_company, current_position, education, available_from, notes,
		                        created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.ResumeURL, c.LinkedinURL, c.Skills,
		c.ExperienceYears, c.CurrentCompany, c.CurrentPosition, c.Education, c.AvailableFrom, c.Notes,
		c.CreatedAt, c.UpdatedAt, c.CreatedByID, c.UpdatedByID,
	).Scan(&c.ID)
	if err != nil {
		return wrapErr("insert candidate", err)
	}
	return nil
}

func (r *CandidateRepo) GetByID(ctx context.Context, id int64) (*entity.Candidate, error) {
	return r.getOne(ctx, "get candidate", `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
}

func (r *CandidateRepo) GetByEmail(ctx context.Context, email string) (*entity.Candidate, error) {
	return r.getOne(ctx, "get candidate by email", `SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email)
}

func (r *CandidateRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Candidate, error) {
	return r.getOne(ctx, "get candidate by user", `SELECT `+candidateColumns+` FROM candidates WHERE user_id = $1`, userID)
}

func (r *CandidateRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Candidate, error) {
	c, err := scanCandidate(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return c, nil
}

func (r *CandidateRepo) Update(ctx context.Context, c *entity.Candidate) error {
	const query = `
		UPDATE candidates
		   SET first_name = $2, last_name = $3, email = $4, phone = $5, resume_url = $6, linkedin_url = $7,
		       skills = $8, experience_years = $9, current_company = $10, current_position = $11,
		       education = $12, available_from = $13, notes = $14, updated_at = $15, updated_by_id = $16
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.ResumeURL, c.LinkedinURL,
		c.Skills, c.ExperienceYears, c.CurrentCompany, c.CurrentPosition,
		c.Education, c.AvailableFrom, c.Notes, c.UpdatedAt, c.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update candidate", err)
	}
	return nil
}

func (r *CandidateRepo) List(ctx context.Context, page repository.Page) ([]*entity.Candidate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, wrapErr("list candidates", err)
	}
	return collect(rows, "scan candidate", scanCandidate)
}

// Delete elimina el perfil; sus postulaciones caen en cascada. La cuenta de usuario se conserva.
func (r *CandidateRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id); err != nil {
		return wrapErr("delete candidate", err)
	}
	return nil
}

func scanCandidate(row pgx.Row) (*entity.Candidate, error) {
	var c entity.Candidate
	dest := append([]any{
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.ResumeURL, &c.LinkedinURL, &c.Skills,
		&c.ExperienceYears, &c.CurrentCompany, &c.CurrentPosition, &c.Education, &c.AvailableFrom, &c.Notes,
	}, auditDest(&c.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}
