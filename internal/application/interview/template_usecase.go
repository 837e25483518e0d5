package interview

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// TemplateUseCase casos de uso de plantillas de entrevista.
type TemplateUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(tx ports.TxRunner, log zerolog.Logger) *TemplateUseCase {
	return &TemplateUseCase{tx: tx, log: log}
}

// Create persiste la plantilla con sus etapas. Los órdenes deben ser 1..N sin huecos ni repetidos.
func (uc *TemplateUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateInterviewTemplateRequest) (*dto.InterviewTemplateResponse, error) {
	if err := authorize(actor, policy.Create, policy.InterviewTemplate); err != nil {
		return nil, err
	}
	steps := make([]dto.TemplateStepRequest, len(in.Steps))
	copy(steps, in.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	for i, s := range steps {
		if s.Order != i+1 {
			return nil, domain.Errorf(domain.ErrValidation, "Step orders must be consecutive starting at 1")
		}
	}

	now := time.Now().UTC()
	tpl := &entity.InterviewTemplate{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	tpl.StampCreated(actor.ActorID(), now)
	for _, s := range steps {
		step := entity.InterviewTemplateStep{
			Name:                 s.Name,
			Description:          s.Description,
			StepType:             entity.StepType(s.StepType),
			Order:                s.Order,
			DurationMinutes:      s.DurationMinutes,
			RequiredParticipants: nonNil(s.RequiredParticipants),
			EvaluationCriteria:   nonNil(s.EvaluationCriteria),
			PassingScore:         s.PassingScore,
		}
		step.StampCreated(actor.ActorID(), now)
		tpl.Steps = append(tpl.Steps, step)
	}

	if err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		return repos.InterviewTemplates.Create(ctx, tpl)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("template_id", tpl.ID).Int("steps", len(tpl.Steps)).Msg("plantilla de entrevista creada")
	return entityToTemplateResponse(tpl), nil
}

// ListActive lista las plantillas activas (consulta pública).
func (uc *TemplateUseCase) ListActive(ctx context.Context, page repository.Page) ([]dto.InterviewTemplateResponse, error) {
	var list []*entity.InterviewTemplate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.InterviewTemplates.List(ctx, true, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InterviewTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *entityToTemplateResponse(t))
	}
	return out, nil
}

// GetByID obtiene una plantilla con sus etapas.
func (uc *TemplateUseCase) GetByID(ctx context.Context, id int64) (*dto.InterviewTemplateResponse, error) {
	var tpl *entity.InterviewTemplate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		tpl, err = mustTemplate(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entityToTemplateResponse(tpl), nil
}

// Update modifica nombre, descripción o estado. Las etapas no se editan: los procesos ya
// iniciados dependen de ellas.
func (uc *TemplateUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateInterviewTemplateRequest) (*dto.InterviewTemplateResponse, error) {
	if err := authorize(actor, policy.Update, policy.InterviewTemplate); err != nil {
		return nil, err
	}
	var tpl *entity.InterviewTemplate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		tpl, err = mustTemplate(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			tpl.Name = *in.Name
		}
		if in.Description != nil {
			tpl.Description = *in.Description
		}
		if in.IsActive != nil {
			tpl.IsActive = *in.IsActive
		}
		tpl.StampUpdated(actor.ActorID(), time.Now().UTC())
		return repos.InterviewTemplates.Update(ctx, tpl)
	})
	if err != nil {
		return nil, err
	}
	return entityToTemplateResponse(tpl), nil
}

// Delete elimina la plantilla y sus etapas.
func (uc *TemplateUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := authorize(actor, policy.Delete, policy.InterviewTemplate); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := mustTemplate(ctx, repos, id); err != nil {
			return err
		}
		return repos.InterviewTemplates.Delete(ctx, id)
	})
}

func mustTemplate(ctx context.Context, repos repository.Repositories, id int64) (*entity.InterviewTemplate, error) {
	tpl, err := repos.InterviewTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.NotFound("Interview template")
	}
	return tpl, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func entityToTemplateResponse(t *entity.InterviewTemplate) *dto.InterviewTemplateResponse {
	out := &dto.InterviewTemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		Steps:       make([]dto.InterviewTemplateStepResponse, 0, len(t.Steps)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	for _, s := range t.Steps {
		out.Steps = append(out.Steps, dto.InterviewTemplateStepResponse{
			ID:                   s.ID,
			Name:                 s.Name,
			Description:          s.Description,
			StepType:             string(s.StepType),
			Order:                s.Order,
			DurationMinutes:      s.DurationMinutes,
			RequiredParticipants: s.RequiredParticipants,
			EvaluationCriteria:   s.EvaluationCriteria,
			PassingScore:         s.PassingScore,
		})
	}
	return out
}
