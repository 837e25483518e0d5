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

// JobOpeningUseCase casos de uso de vacantes.
type JobOpeningUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
}

// NewJobOpeningUseCase construye el caso de uso.
func NewJobOpeningUseCase(tx ports.TxRunner, log zerolog.Logger) *JobOpeningUseCase {
	return &JobOpeningUseCase{tx: tx, log: log}
}

// Create publica una vacante. La empresa debe existir y, si se indica, también la plantilla.
func (uc *JobOpeningUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateJobOpeningRequest) (*dto.JobOpeningResponse, error) {
	if err := authorize(actor, policy.Create, policy.JobOpening); err != nil {
		return nil, err
	}
	status := entity.JobStatusOpen
	if in.Status != "" {
		status = entity.JobStatus(in.Status)
	}
	job := &entity.JobOpening{
		CompanyID:           in.CompanyID,
		InterviewTemplateID: in.InterviewTemplateID,
		Title:               in.Title,
		Description:         in.Description,
		Requirements:        in.Requirements,
		Location:            in.Location,
		SalaryRange:         in.SalaryRange,
		JobType:             entity.JobType(in.JobType),
		ExperienceLevel:     in.ExperienceLevel,
		Status:              status,
	}
	job.StampCreated(actor.ActorID(), time.Now().UTC())

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		company, err := repos.Companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.Errorf(domain.ErrValidation, "Company not found")
		}
		if err := checkTemplateExists(ctx, repos, job.InterviewTemplateID); err != nil {
			return err
		}
		return repos.JobOpenings.Create(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("job_opening_id", job.ID).Int64("company_id", job.CompanyID).Msg("vacante creada")
	return entityToJobOpeningResponse(job), nil
}

// GetByID obtiene una vacante por ID.
func (uc *JobOpeningUseCase) GetByID(ctx context.Context, id int64) (*dto.JobOpeningResponse, error) {
	var job *entity.JobOpening
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		job, err = mustJobOpening(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entityToJobOpeningResponse(job), nil
}

// List lista vacantes filtrando opcionalmente por empresa y estado.
func (uc *JobOpeningUseCase) List(ctx context.Context, filter repository.JobOpeningFilter, page repository.Page) (*dto.JobOpeningListResponse, error) {
	var list []*entity.JobOpening
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.JobOpenings.List(ctx, filter, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Int("count", len(list)).Msg("listado de vacantes")
	items := make([]dto.JobOpeningResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *entityToJobOpeningResponse(j))
	}
	return &dto.JobOpeningListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update reemplaza los campos presentes.
func (uc *JobOpeningUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateJobOpeningRequest) (*dto.JobOpeningResponse, error) {
	if err := authorize(actor, policy.Update, policy.JobOpening); err != nil {
		return nil, err
	}
	var job *entity.JobOpening
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		job, err = mustJobOpening(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.InterviewTemplateID != nil {
			if err := checkTemplateExists(ctx, repos, in.InterviewTemplateID); err != nil {
				return err
			}
			job.InterviewTemplateID = in.InterviewTemplateID
		}
		setString(&job.Title, in.Title)
		setString(&job.Description, in.Description)
		setString(&job.Requirements, in.Requirements)
		setString(&job.Location, in.Location)
		setString(&job.SalaryRange, in.SalaryRange)
		setString(&job.ExperienceLevel, in.ExperienceLevel)
		if in.JobType != nil {
			job.JobType = entity.JobType(*in.JobType)
		}
		if in.Status != nil {
			job.Status = entity.JobStatus(*in.Status)
		}
		job.StampUpdated(actor.ActorID(), time.Now().UTC())
		return repos.JobOpenings.Update(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("job_opening_id", id).Str("status", string(job.Status)).Msg("vacante actualizada")
	return entityToJobOpeningResponse(job), nil
}

// Delete elimina la vacante y, en cascada, sus postulaciones.
func (uc *JobOpeningUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := authorize(actor, policy.Delete, policy.JobOpening); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := mustJobOpening(ctx, repos, id); err != nil {
			return err
		}
		return repos.JobOpenings.Delete(ctx, id)
	})
	if err == nil {
		uc.log.Info().Int64("job_opening_id", id).Msg("vacante eliminada")
	}
	return err
}

func checkTemplateExists(ctx context.Context, repos repository.Repositories, id *int64) error {
	if id == nil {
		return nil
	}
	tpl, err := repos.InterviewTemplates.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if tpl == nil {
		return domain.Errorf(domain.ErrValidation, "Interview template not found")
	}
	return nil
}

func mustJobOpening(ctx context.Context, repos repository.Repositories, id int64) (*entity.JobOpening, error) {
	job, err := repos.JobOpenings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.NotFound("Job opening")
	}
	return job, nil
}

func entityToJobOpeningResponse(j *entity.JobOpening) *dto.JobOpeningResponse {
	return &dto.JobOpeningResponse{
		ID:                  j.ID,
		CompanyID:           j.CompanyID,
		InterviewTemplateID: j.InterviewTemplateID,
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Location:            j.Location,
		SalaryRange:         j.SalaryRange,
		JobType:             string(j.JobType),
		ExperienceLevel:     j.ExperienceLevel,
		Status:              string(j.Status),
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}
