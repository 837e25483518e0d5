package repository

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// ApplicationFilter filtros opcionales del listado de postulaciones.
type ApplicationFilter struct {
	CandidateID  *int64
	JobOpeningID *int64
	Status       *entity.ApplicationStatus
}

// ApplicationRepository puerto de persistencia para Application.
type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id int64) (*entity.Application, error)
	GetByCandidateAndJob(ctx context.Context, candidateID, jobOpeningID int64) (*entity.Application, error)
	Update(ctx context.Context, app *entity.Application) error
	List(ctx context.Context, filter ApplicationFilter, page Page) ([]*entity.Application, error)
	// ListDetailed igual que List pero con candidato, vacante y empresa (exportación).
	ListDetailed(ctx context.Context, filter ApplicationFilter, page Page) ([]*entity.ApplicationDetail, error)
	GetDetail(ctx context.Context, id int64) (*entity.ApplicationDetail, error)
	Delete(ctx context.Context, id int64) error
}
