package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.InterviewTemplateRepository = (*InterviewTemplateRepo)(nil)

const (
	templateColumns     = `id, name, description, is_active, ` + auditColumns
	templateStepColumns = `id, template_id, name, description, step_type, step_order, duration_minutes,
	required_participants, evaluation_criteria, passing_score, ` + auditColumns
)

// InterviewTemplateRepo adaptador PostgreSQL de plantillas de entrevista y sus etapas.
type InterviewTemplateRepo struct {
	q Querier
}

// NewInterviewTemplateRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInterviewTemplateRepository(q Querier) *InterviewTemplateRepo {
	return &InterviewTemplateRepo{q: q}
}

// Create inserta la cabecera y todas sus etapas. Debe ejecutarse dentro de una tx.
func (r *InterviewTemplateRepo) Create(ctx context.Context, tpl *entity.InterviewTemplate) error {
	const query = `
		INSERT INTO interview_templates (name, description, is_active, created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		tpl.Name, tpl.Description, tpl.IsActive,
		tpl.CreatedAt, tpl.UpdatedAt, tpl.CreatedByID, tpl.UpdatedByID,
	).Scan(&tpl.ID)
	if err != nil {
		return wrapErr("insert interview template", err)
	}
	for i := range tpl.Steps {
		step := &tpl.Steps[i]
		step.TemplateID = tpl.ID
		if err := r.insertStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (r *InterviewTemplateRepo) insertStep(ctx context.Context, s *entity.InterviewTemplateStep) error {
	const query = `
		INSERT INTO interview_template_steps (template_id, name, description, step_type, step_order, duration_minutes,
		                                      required_participants, evaluation_criteria, passing_score,
		                                      created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.TemplateID, s.Name, s.Description, string(s.StepType), s.Order, s.DurationMinutes,
		jsonList(s.RequiredParticipants), jsonList(s.EvaluationCriteria), s.PassingScore,
		s.CreatedAt, s.UpdatedAt, s.CreatedByID, s.UpdatedByID,
	).Scan(&s.ID)
	if err != nil {
		return wrapErr("insert interview template step", err)
	}
	return nil
}

func (r *InterviewTemplateRepo) GetByID(ctx context.Context, id int64) (*entity.InterviewTemplate, error) {
	tpl, err := scanTemplate(r.q.QueryRow(ctx, `SELECT `+templateColumns+` FROM interview_templates WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get interview template", err)
	}
	if tpl.Steps, err = r.listSteps(ctx, tpl.ID); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Update solo modifica la cabecera; las etapas son inmutables tras la creación.
func (r *InterviewTemplateRepo) Update(ctx context.Context, tpl *entity.InterviewTemplate) error {
	const query = `
		UPDATE interview_templates
		   SET name = $2, description = $3, is_active = $4, updated_at = $5, updated_by_id = $6
		 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query,
		tpl.ID, tpl.Name, tpl.Description, tpl.IsActive, tpl.UpdatedAt, tpl.UpdatedByID,
	); err != nil {
		return wrapErr("update interview template", err)
	}
	return nil
}

func (r *InterviewTemplateRepo) List(ctx context.Context, activeOnly bool, page repository.Page) ([]*entity.InterviewTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM interview_templates`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, page.Limit, page.Skip)
	if err != nil {
		return nil, wrapErr("list interview templates", err)
	}
	list, err := collect(rows, "scan interview template", scanTemplate)
	if err != nil {
		return nil, err
	}
	for _, tpl := range list {
		if tpl.Steps, err = r.listSteps(ctx, tpl.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete falla con ErrIntegrity si algún proceso usa la plantilla (FK RESTRICT).
// Las vacantes quedan sin plantilla y las etapas se eliminan en cascada.
func (r *InterviewTemplateRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM interview_templates WHERE id = $1`, id); err != nil {
		return wrapErr("delete interview template", err)
	}
	return nil
}

func (r *InterviewTemplateRepo) listSteps(ctx context.Context, templateID int64) ([]entity.InterviewTemplateStep, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+templateStepColumns+` FROM interview_template_steps WHERE template_id = $1 ORDER BY step_order`,
		templateID)
	if err != nil {
		return nil, wrapErr("list interview template steps", err)
	}
	list, err := collect(rows, "scan interview template step", scanTemplateStep)
	if err != nil {
		return nil, err
	}
	steps := make([]entity.InterviewTemplateStep, 0, len(list))
	for _, s := range list {
		steps = append(steps, *s)
	}
	return steps, nil
}

func scanTemplate(row pgx.Row) (*entity.InterviewTemplate, error) {
	var t entity.InterviewTemplate
	dest := append([]any{&t.ID, &t.Name, &t.Description, &t.IsActive}, auditDest(&t.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTemplateStep(row pgx.Row) (*entity.InterviewTemplateStep, error) {
	var (
		s        entity.InterviewTemplateStep
		stepType string
	)
	dest := append([]any{
		&s.ID, &s.TemplateID, &s.Name, &s.Description, &stepType, &s.Order, &s.DurationMinutes,
		&s.RequiredParticipants, &s.EvaluationCriteria, &s.PassingScore,
	}, auditDest(&s.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.StepType = entity.StepType(stepType)
	return &s, nil
}

// jsonList evita persistir JSON null en columnas JSONB de listas.
func jsonList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
