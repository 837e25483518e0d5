package interview

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

const (
	defaultLocation = "Remote"
	defaultFeedback = "No specific feedback provided."
	scheduledLayout = "2006-01-02 15:04"
)

// Notifier envío de correos con plantilla dentro de la transacción del caso de uso.
// Lo implementa *notification.EmailService.
type Notifier interface {
	Send(ctx context.Context, templates repository.EmailTemplateRepository, recipient, templateType, name string, vars map[string]any) error
}

// ProcessUseCase flujo de entrevistas: inicio del proceso y actualización de etapas.
// No hay avance automático: cada etapa la actualiza un reclutador.
type ProcessUseCase struct {
	tx       ports.TxRunner
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewProcessUseCase construye el caso de uso.
func NewProcessUseCase(tx ports.TxRunner, notifier Notifier, log zerolog.Logger) *ProcessUseCase {
	return &ProcessUseCase{
		tx:       tx,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start crea el proceso de la postulación con una etapa pendiente por cada etapa de la
// plantilla de la vacante (mismo orden), pasa la postulación a interviewing y avisa al candidato.
func (uc *ProcessUseCase) Start(ctx context.Context, actor *entity.User, applicationID int64) (*dto.InterviewProcessResponse, error) {
	if err := authorize(actor, policy.Start, policy.InterviewProcess); err != nil {
		return nil, err
	}
	now := uc.now()
	var detail entity.ProcessDetail

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		app, err := repos.Applications.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return domain.NotFound("Application")
		}
		existing, err := repos.InterviewProcesses.GetByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Errorf(domain.ErrValidation, "Interview process already started for this application")
		}
		job, err := repos.JobOpenings.GetByID(ctx, app.JobOpeningID)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.NotFound("Job opening")
		}
		if job.InterviewTemplateID == nil {
			return domain.Errorf(domain.ErrValidation, "Job opening has no interview template assigned")
		}
		tpl, err := repos.InterviewTemplates.GetByID(ctx, *job.InterviewTemplateID)
		if err != nil {
			return err
		}
		if tpl == nil {
			return domain.Errorf(domain.ErrValidation, "Interview template not found")
		}

		process := entity.InterviewProcess{
			ApplicationID: applicationID,
			TemplateID:    tpl.ID,
			CurrentStep:   0,
			Status:        entity.StepStatusPending,
		}
		process.StampCreated(actor.ActorID(), now)
		if err := repos.InterviewProcesses.Create(ctx, &process); err != nil {
			return err
		}
		detail.Process = process
		for _, ts := range tpl.Steps {
			step := entity.InterviewStep{
				ProcessID:      process.ID,
				TemplateStepID: ts.ID,
				Order:          ts.Order,
				Status:         entity.StepStatusPending,
			}
			step.StampCreated(actor.ActorID(), now)
			if err := repos.InterviewProcesses.CreateStep(ctx, &step); err != nil {
				return err
			}
			detail.Steps = append(detail.Steps, step)
		}

		app.Status = entity.ApplicationStatusInterviewing
		app.StampUpdated(actor.ActorID(), now)
		if err := repos.Applications.Update(ctx, app); err != nil {
			return err
		}

		candidate, err := repos.Candidates.GetByID(ctx, app.CandidateID)
		if err != nil {
			return err
		}
		company, err := repos.Companies.GetByID(ctx, job.CompanyID)
		if err != nil {
			return err
		}
		if candidate == nil || company == nil {
			return nil
		}
		return uc.notify(ctx, repos, candidate.Email, entity.EmailTypeProcessStarted, map[string]any{
			"candidate_name": candidate.FullName(),
			"job_title":      job.Title,
			"company_name":   company.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("process_id", detail.Process.ID).
		Int64("application_id", applicationID).
		Int("steps", len(detail.Steps)).
		Int64("actor_id", actor.ID).
		Msg("proceso de entrevistas iniciado")
	return toProcessResponse(&detail), nil
}

// UpdateStep aplica solo los campos presentes. completed sella CompletedAt; scheduled envía
// el aviso de programación; passed/failed envía el resultado indicando si era la última etapa.
func (uc *ProcessUseCase) UpdateStep(ctx context.Context, actor *entity.User, stepID int64, in dto.UpdateInterviewStepRequest) (*dto.InterviewStepResponse, error) {
	if err := authorize(actor, policy.Update, policy.InterviewStep); err != nil {
		return nil, err
	}
	now := uc.now()
	var step *entity.InterviewStep

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		step, err = repos.InterviewProcesses.GetStep(ctx, stepID)
		if err != nil {
			return err
		}
		if step == nil {
			return domain.NotFound("Interview step")
		}

		applyStepUpdate(step, in)
		if step.Status == entity.StepStatusCompleted && in.Status != nil {
			step.CompletedAt = &now
		}
		step.StampUpdated(actor.ActorID(), now)
		if err := repos.InterviewProcesses.UpdateStep(ctx, step); err != nil {
			return err
		}

		if in.Status == nil {
			return nil
		}
		switch {
		case step.Status == entity.StepStatusScheduled:
			return uc.sendScheduled(ctx, repos, step)
		case step.Status.IsResult():
			return uc.sendResult(ctx, repos, step)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("step_id", stepID).Str("status", string(step.Status)).Int64("actor_id", actor.ID).Msg("etapa de entrevista actualizada")
	out := toStepResponse(step)
	return &out, nil
}

// GetProcess devuelve un proceso con sus etapas.
func (uc *ProcessUseCase) GetProcess(ctx context.Context, processID int64) (*dto.InterviewProcessResponse, error) {
	var detail *entity.ProcessDetail
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.InterviewProcesses.GetByID(ctx, processID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("Interview process")
		}
		detail, err = loadDetail(ctx, repos, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProcessResponse(detail), nil
}

// GetByApplication devuelve el proceso de una postulación.
func (uc *ProcessUseCase) GetByApplication(ctx context.Context, applicationID int64) (*dto.InterviewProcessResponse, error) {
	var detail *entity.ProcessDetail
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.InterviewProcesses.GetByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("Interview process")
		}
		detail, err = loadDetail(ctx, repos, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProcessResponse(detail), nil
}

// Delete elimina el proceso y sus etapas. La postulación conserva su estado.
func (uc *ProcessUseCase) Delete(ctx context.Context, actor *entity.User, processID int64) error {
	if err := authorize(actor, policy.Delete, policy.InterviewProcess); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.InterviewProcesses.GetByID(ctx, processID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("Interview process")
		}
		return repos.InterviewProcesses.Delete(ctx, processID)
	})
}

func (uc *ProcessUseCase) sendScheduled(ctx context.Context, repos repository.Repositories, step *entity.InterviewStep) error {
	sc, err := repos.InterviewProcesses.StepContext(ctx, step.ID)
	if err != nil || sc == nil {
		return err
	}
	location := step.Location
	if location == "" {
		location = defaultLocation
	}
	scheduledAt := ""
	if step.ScheduledAt != nil {
		scheduledAt = step.ScheduledAt.UTC().Format(scheduledLayout)
	}
	return uc.notify(ctx, repos, sc.CandidateEmail, entity.EmailTypeInterviewSched, map[string]any{
		"candidate_name": sc.CandidateFirst,
		"interview_type": sc.StepName,
		"scheduled_at":   scheduledAt,
		"duration":       sc.DurationMinutes,
		"location":       location,
		"meeting_link":   step.MeetingLink,
	})
}

func (uc *ProcessUseCase) sendResult(ctx context.Context, repos repository.Repositories, step *entity.InterviewStep) error {
	sc, err := repos.InterviewProcesses.StepContext(ctx, step.ID)
	if err != nil || sc == nil {
		return err
	}
	templateType := entity.EmailTypeInterviewFailure
	if step.Status == entity.StepStatusPassed {
		templateType = entity.EmailTypeInterviewSuccess
	}
	feedback := step.Feedback
	if feedback == "" {
		feedback = defaultFeedback
	}
	return uc.notify(ctx, repos, sc.CandidateEmail, templateType, map[string]any{
		"candidate_name": sc.CandidateFirst,
		"interview_type": sc.StepName,
		"job_title":      sc.JobTitle,
		"company_name":   sc.CompanyName,
		"feedback":       feedback,
		"is_final_step":  sc.TemplateStepOrder == sc.TemplateStepCount,
	})
}

// notify envía el correo; si no hay plantilla activa del tipo solo se registra.
func (uc *ProcessUseCase) notify(ctx context.Context, repos repository.Repositories, to, templateType string, vars map[string]any) error {
	err := uc.notifier.Send(ctx, repos.EmailTemplates, to, templateType, "", vars)
	if errors.Is(err, domain.ErrTemplateNotFound) {
		uc.log.Warn().Str("type", templateType).Str("to", to).Msg("sin plantilla activa, notificación omitida")
		return nil
	}
	return err
}

func applyStepUpdate(step *entity.InterviewStep, in dto.UpdateInterviewStepRequest) {
	if in.Status != nil {
		step.Status = entity.StepStatus(*in.Status)
	}
	if in.ScheduledAt != nil {
		step.ScheduledAt = in.ScheduledAt
	}
	if in.InterviewerID != nil {
		step.InterviewerID = in.InterviewerID
	}
	if in.Location != nil {
		step.Location = *in.Location
	}
	if in.MeetingLink != nil {
		step.MeetingLink = *in.MeetingLink
	}
	if in.Score != nil {
		step.Score = in.Score
	}
	if in.Feedback != nil {
		step.Feedback = *in.Feedback
	}
}

func loadDetail(ctx context.Context, repos repository.Repositories, p *entity.InterviewProcess) (*entity.ProcessDetail, error) {
	steps, err := repos.InterviewProcesses.ListSteps(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &entity.ProcessDetail{Process: *p, Steps: steps}, nil
}

func toProcessResponse(d *entity.ProcessDetail) *dto.InterviewProcessResponse {
	out := &dto.InterviewProcessResponse{
		ID:            d.Process.ID,
		ApplicationID: d.Process.ApplicationID,
		TemplateID:    d.Process.TemplateID,
		CurrentStep:   d.Process.CurrentStep,
		Status:        string(d.Process.Status),
		Steps:         make([]dto.InterviewStepResponse, 0, len(d.Steps)),
		CreatedAt:     d.Process.CreatedAt,
		UpdatedAt:     d.Process.UpdatedAt,
	}
	for i := range d.Steps {
		out.Steps = append(out.Steps, toStepResponse(&d.Steps[i]))
	}
	return out
}

func toStepResponse(s *entity.InterviewStep) dto.InterviewStepResponse {
	return dto.InterviewStepResponse{
		ID:             s.ID,
		ProcessID:      s.ProcessID,
		TemplateStepID: s.TemplateStepID,
		Order:          s.Order,
		Status:         string(s.Status),
		ScheduledAt:    s.ScheduledAt,
		CompletedAt:    s.CompletedAt,
		InterviewerID:  s.InterviewerID,
		Location:       s.Location,
		MeetingLink:    s.MeetingLink,
		Score:          s.Score,
		Feedback:       s.Feedback,
		UpdatedAt:      s.UpdatedAt,
	}
}
