package repository

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// JobOpeningFilter filtros opcionales del listado de vacantes.
type JobOpeningFilter struct {
	CompanyID *int64
	Status    *entity.JobStatus
}

// JobOpeningRepository puerto de persistencia para JobOpening.
type JobOpeningRepository interface {
	Create(ctx context.Context, job *entity.JobOpening) error
	GetByID(ctx context.Context, id int64) (*entity.JobOpening, error)
	Update(ctx context.Context, job *entity.JobOpening) error
	List(ctx context.Context, filter JobOpeningFilter, page Page) ([]*entity.JobOpening, error)
	Delete(ctx context.Context, id int64) error
}
