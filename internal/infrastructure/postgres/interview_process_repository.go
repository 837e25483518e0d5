package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.InterviewProcessRepository = (*InterviewProcessRepo)(nil)

const (
	processColumns = `id, application_id, template_id, current_step, status, ` + auditColumns
	stepColumns    = `id, process_id, template_step_id, step_order, status, scheduled_at, completed_at,
	interviewer_id, location, meeting_link, score, feedback, ` + auditColumns
)

// InterviewProcessRepo adaptador PostgreSQL de procesos de entrevista y sus etapas.
type InterviewProcessRepo struct {
	q Querier
}

// NewInterviewProcessRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInterviewProcessRepository(q Querier) *InterviewProcessRepo {
	return &InterviewProcessRepo{q: q}
}

func (r *InterviewProcessRepo) Create(ctx context.Context, p *entity.InterviewProcess) error {
	const query = `
		INSERT INTO interview_processes (application_id, template_id, current_step, status,
		                                 created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.ApplicationID, p.TemplateID, p.CurrentStep, string(p.Status),
		p.CreatedAt, p.UpdatedAt, p.CreatedByID, p.UpdatedByID,
	).Scan(&p.ID)
	if err != nil {
		return wrapErr("insert interview process", err)
	}
	return nil
}

func (r *InterviewProcessRepo) GetByID(ctx context.Context, id int64) (*entity.InterviewProcess, error) {
	return r.getProcess(ctx, "get interview process",
		`SELECT `+processColumns+` FROM interview_processes WHERE id = $1`, id)
}

func (r *InterviewProcessRepo) GetByApplicationID(ctx context.Context, applicationID int64) (*entity.InterviewProcess, error) {
	return r.getProcess(ctx, "get interview process by application",
		`SELECT `+processColumns+` FROM interview_processes WHERE application_id = $1`, applicationID)
}

func (r *InterviewProcessRepo) getProcess(ctx context.Context, op, query string, arg any) (*entity.InterviewProcess, error) {
	p, err := scanProcess(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return p, nil
}

func (r *InterviewProcessRepo) Update(ctx context.Context, p *entity.InterviewProcess) error {
	const query = `
		UPDATE interview_processes
		   SET current_step = $2, status = $3, updated_at = $4, updated_by_id = $5
		 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, p.ID, p.CurrentStep, string(p.Status), p.UpdatedAt, p.UpdatedByID); err != nil {
		return wrapErr("update interview process", err)
	}
	return nil
}

// Delete elimina el proceso y sus etapas (cascada).
func (r *InterviewProcessRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM interview_processes WHERE id = $1`, id); err != nil {
		return wrapErr("delete interview process", err)
	}
	return nil
}

func (r *InterviewProcessRepo) CreateStep(ctx context.Context, s *entity.InterviewStep) error {
	const query = `
		INSERT INTO interview_steps (process_id, template_step_id, step_order, status, scheduled_at, completed_at,
		                             interviewer_id, location, meeting_link, score, feedback,
		                             created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.ProcessID, s.TemplateStepID, s.Order, string(s.Status), s.ScheduledAt, s.CompletedAt,
		s.InterviewerID, s.Location, s.MeetingLink, s.Score, s.Feedback,
		s.CreatedAt, s.UpdatedAt, s.CreatedByID, s.UpdatedByID,
	).Scan(&s.ID)
	if err != nil {
		return wrapErr("insert interview step", err)
	}
	return nil
}

func (r *InterviewProcessRepo) GetStep(ctx context.Context, id int64) (*entity.InterviewStep, error) {
	s, err := scanStep(r.q.QueryRow(ctx, `SELECT `+stepColumns+` FROM interview_steps WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get interview step", err)
	}
	return s, nil
}

func (r *InterviewProcessRepo) UpdateStep(ctx context.Context, s *entity.InterviewStep) error {
	const query = `
		UPDATE interview_steps
		   SET status = $2, scheduled_at = $3, completed_at = $4, interviewer_id = $5, location = $6,
		       meeting_link = $7, score = $8, feedback = $9, updated_at = $10, updated_by_id = $11
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, string(s.Status), s.ScheduledAt, s.CompletedAt, s.InterviewerID, s.Location,
		s.MeetingLink, s.Score, s.Feedback, s.UpdatedAt, s.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update interview step", err)
	}
	return nil
}

func (r *InterviewProcessRepo) ListSteps(ctx context.Context, processID int64) ([]entity.InterviewStep, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+stepColumns+` FROM interview_steps WHERE process_id = $1 ORDER BY step_order, id`, processID)
	if err != nil {
		return nil, wrapErr("list interview steps", err)
	}
	list, err := collect(rows, "scan interview step", scanStep)
	if err != nil {
		return nil, err
	}
	steps := make([]entity.InterviewStep, 0, len(list))
	for _, s := range list {
		steps = append(steps, *s)
	}
	return steps, nil
}

// StepContext join explícito etapa → etapa de plantilla → proceso → postulación → candidato/vacante/empresa.
func (r *InterviewProcessRepo) StepContext(ctx context.Context, stepID int64) (*entity.StepContext, error) {
	const query = `
		SELECT ts.name, ts.duration_minutes, ts.step_order,
		       (SELECT count(*) FROM interview_template_steps x WHERE x.template_id = ts.template_id),
		       a.id, c.first_name, c.last_name, c.email, j.title, co.name
		  FROM interview_steps s
		  JOIN interview_template_steps ts ON ts.id = s.template_step_id
		  JOIN interview_processes p       ON p.id = s.process_id
		  JOIN applications a              ON a.id = p.application_id
		  JOIN candidates c                ON c.id = a.candidate_id
		  JOIN job_openings j              ON j.id = a.job_opening_id
		  JOIN companies co                ON co.id = j.company_id
		 WHERE s.id = $1`
	var sc entity.StepContext
	err := r.q.QueryRow(ctx, query, stepID).Scan(
		&sc.StepName, &sc.DurationMinutes, &sc.TemplateStepOrder, &sc.TemplateStepCount,
		&sc.ApplicationID, &sc.CandidateFirst, &sc.CandidateLast, &sc.CandidateEmail, &sc.JobTitle, &sc.CompanyName,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get interview step context", err)
	}
	return &sc, nil
}

func scanProcess(row pgx.Row) (*entity.InterviewProcess, error) {
	var (
		p      entity.InterviewProcess
		status string
	)
	dest := append([]any{&p.ID, &p.ApplicationID, &p.TemplateID, &p.CurrentStep, &status}, auditDest(&p.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.Status = entity.StepStatus(status)
	return &p, nil
}

func scanStep(row pgx.Row) (*entity.InterviewStep, error) {
	var (
		s      entity.InterviewStep
		status string
	)
	dest := append([]any{
		&s.ID, &s.ProcessID, &s.TemplateStepID, &s.Order, &status, &s.ScheduledAt, &s.CompletedAt,
		&s.InterviewerID, &s.Location, &s.MeetingLink, &s.Score, &s.Feedback,
	}, auditDest(&s.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Status = entity.StepStatus(status)
	return &s, nil
}
