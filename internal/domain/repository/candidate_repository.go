package repository

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// CandidateRepository puerto de persistencia para Candidate.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *entity.Candidate) error
	GetByID(ctx context.Context, id int64) (*entity.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*entity.Candidate, error)
	GetByUserID(ctx context.Context, userID int64) (*entity.Candidate, error)
	Update(ctx context.Context, candidate *entity.Candidate) error
	List(ctx context.Context, page Page) ([]*entity.Candidate, error)
	Delete(ctx context.Context, id int64) error
}
