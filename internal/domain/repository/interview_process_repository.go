package repository

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// InterviewProcessRepository puerto de persistencia para procesos y etapas de entrevista.
type InterviewProcessRepository interface {
	Create(ctx context.Context, process *entity.InterviewProcess) error
	GetByID(ctx context.Context, id int64) (*entity.InterviewProcess, error)
	GetByApplicationID(ctx context.Context, applicationID int64) (*entity.InterviewProcess, error)
	Update(ctx context.Context, process *entity.InterviewProcess) error
	Delete(ctx context.Context, id int64) error

	CreateStep(ctx context.Context, step *entity.InterviewStep) error
	GetStep(ctx context.Context, id int64) (*entity.InterviewStep, error)
	UpdateStep(ctx context.Context, step *entity.InterviewStep) error
	ListSteps(ctx context.Context, processID int64) ([]entity.InterviewStep, error)
	// StepContext devuelve los datos relacionados de la etapa (plantilla, candidato, vacante).
	StepContext(ctx context.Context, stepID int64) (*entity.StepContext, error)
}
