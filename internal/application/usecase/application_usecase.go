package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// ApplicationUseCase casos de uso de postulaciones.
type ApplicationUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
}

// NewApplicationUseCase construye el caso de uso.
func NewApplicationUseCase(tx ports.TxRunner, log zerolog.Logger) *ApplicationUseCase {
	return &ApplicationUseCase{tx: tx, log: log}
}

// Create postula un candidato a una vacante abierta. Un actor CANDIDATE solo puede
// postular su propio perfil.
func (uc *ApplicationUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := authorize(actor, policy.Create, policy.Application); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	app := &entity.Application{
		CandidateID:       in.CandidateID,
		JobOpeningID:      in.JobOpeningID,
		Status:            entity.ApplicationStatusApplied,
		AppliedDate:       now,
		ResumeVersion:     in.ResumeVersion,
		CoverLetter:       in.CoverLetter,
		Notes:             in.Notes,
		SalaryExpectation: in.SalaryExpectation,
	}
	app.StampCreated(actor.ActorID(), now)

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		job, err := repos.JobOpenings.GetByID(ctx, in.JobOpeningID)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.Errorf(domain.ErrValidation, "Job opening not found")
		}
		if !job.AcceptsApplications() {
			return domain.Errorf(domain.ErrValidation, "Job opening is not accepting applications")
		}
		candidate, err := repos.Candidates.GetByID(ctx, in.CandidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return domain.Errorf(domain.ErrValidation, "Candidate not found")
		}
		if actor.Role == entity.RoleCandidate && candidate.UserID != actor.ID {
			return domain.Errorf(domain.ErrForbidden, "Candidates can only apply with their own profile")
		}
		existing, err := repos.Applications.GetByCandidateAndJob(ctx, in.CandidateID, in.JobOpeningID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Errorf(domain.ErrValidation, "Candidate has already applied for this position")
		}
		return repos.Applications.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("application_id", app.ID).
		Int64("candidate_id", app.CandidateID).
		Int64("job_opening_id", app.JobOpeningID).
		Msg("postulación creada")
	return entityToApplicationResponse(app), nil
}

// GetByID devuelve la postulación con los datos de candidato, vacante y empresa.
func (uc *ApplicationUseCase) GetByID(ctx context.Context, id int64) (*dto.ApplicationResponse, error) {
	var detail *entity.ApplicationDetail
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		detail, err = repos.Applications.GetDetail(ctx, id)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.NotFound("Application")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detailToApplicationResponse(detail), nil
}

// List lista postulaciones filtrando por candidato, vacante o estado.
func (uc *ApplicationUseCase) List(ctx context.Context, filter repository.ApplicationFilter, page repository.Page) (*dto.ApplicationListResponse, error) {
	var list []*entity.Application
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Applications.List(ctx, filter, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApplicationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *entityToApplicationResponse(a))
	}
	return &dto.ApplicationListResponse{Items: items, Page: pageResponse(page)}, nil
}

// UpdateStatus cambia la etapa y, si vienen, el feedback de entrevista y las notas.
func (uc *ApplicationUseCase) UpdateStatus(ctx context.Context, actor *entity.User, id int64, in dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	status := in.Status
	return uc.Update(ctx, actor, id, dto.UpdateApplicationRequest{
		Status:            &status,
		InterviewFeedback: in.InterviewFeedback,
		Notes:             in.Notes,
	})
}

// Update aplica una actualización parcial de la postulación.
func (uc *ApplicationUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	if err := authorize(actor, policy.Update, policy.Application); err != nil {
		return nil, err
	}
	var app *entity.Application
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		app, err = mustApplication(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Status != nil {
			app.Status = entity.ApplicationStatus(*in.Status)
		}
		setString(&app.ResumeVersion, in.ResumeVersion)
		setString(&app.CoverLetter, in.CoverLetter)
		setString(&app.Notes, in.Notes)
		setString(&app.InterviewFeedback, in.InterviewFeedback)
		setString(&app.SalaryExpectation, in.SalaryExpectation)
		app.StampUpdated(actor.ActorID(), time.Now().UTC())
		return repos.Applications.Update(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("application_id", id).Str("status", string(app.Status)).Msg("postulación actualizada")
	return entityToApplicationResponse(app), nil
}

// Delete elimina la postulación y su proceso de entrevistas.
func (uc *ApplicationUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := authorize(actor, policy.Delete, policy.Application); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := mustApplication(ctx, repos, id); err != nil {
			return err
		}
		return repos.Applications.Delete(ctx, id)
	})
}

func mustApplication(ctx context.Context, repos repository.Repositories, id int64) (*entity.Application, error) {
	a, err := repos.Applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("Application")
	}
	return a, nil
}

func entityToApplicationResponse(a *entity.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:                a.ID,
		CandidateID:       a.CandidateID,
		JobOpeningID:      a.JobOpeningID,
		Status:            string(a.Status),
		AppliedDate:       a.AppliedDate,
		ResumeVersion:     a.ResumeVersion,
		CoverLetter:       a.CoverLetter,
		Notes:             a.Notes,
		InterviewFeedback: a.InterviewFeedback,
		SalaryExpectation: a.SalaryExpectation,
		UpdatedAt:         a.UpdatedAt,
	}
}

func detailToApplicationResponse(d *entity.ApplicationDetail) *dto.ApplicationResponse {
	out := entityToApplicationResponse(&d.Application)
	out.CandidateName = d.CandidateName
	out.CandidateEmail = d.CandidateEmail
	out.JobTitle = d.JobTitle
	out.CompanyName = d.CompanyName
	return out
}
