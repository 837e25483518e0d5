package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/auth"
	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// CandidateUseCase casos de uso de candidatos. Cada candidato tiene su cuenta CANDIDATE
// y el email de ambos se mantiene sincronizado.
type CandidateUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
}

// NewCandidateUseCase construye el caso de uso.
func NewCandidateUseCase(tx ports.TxRunner, log zerolog.Logger) *CandidateUseCase {
	return &CandidateUseCase{tx: tx, log: log}
}

// Create registra un candidato. Si ya existe una cuenta CANDIDATE sin perfil con ese email
// se enlaza; si no, se crea la cuenta con la contraseña indicada o una aleatoria.
func (uc *CandidateUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateCandidateRequest) (*dto.CandidateResponse, error) {
	if err := authorize(actor, policy.Create, policy.Candidate); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(in.Email)
	now := time.Now().UTC()
	candidate := &entity.Candidate{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           email,
		Phone:           in.Phone,
		ResumeURL:       in.ResumeURL,
		LinkedinURL:     in.LinkedinURL,
		Skills:          in.Skills,
		ExperienceYears: in.ExperienceYears,
		CurrentCompany:  in.CurrentCompany,
		CurrentPosition: in.CurrentPosition,
		Education:       in.Education,
		AvailableFrom:   in.AvailableFrom,
		Notes:           in.Notes,
	}
	candidate.StampCreated(actor.ActorID(), now)

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Candidates.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Errorf(domain.ErrValidation, "Candidate with email %s already exists", email)
		}
		user, err := candidateAccount(ctx, repos, actor, email, in.Password, now)
		if err != nil {
			return err
		}
		candidate.UserID = user.ID
		return repos.Candidates.Create(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("candidate_id", candidate.ID).Int64("user_id", candidate.UserID).Msg("candidato creado")
	return entityToCandidateResponse(candidate), nil
}

// candidateAccount devuelve la cuenta CANDIDATE libre para email o la crea.
func candidateAccount(ctx context.Context, repos repository.Repositories, actor *entity.User, email, password string, now time.Time) (*entity.User, error) {
	user, err := repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if user.Role != entity.RoleCandidate {
			return nil, domain.Errorf(domain.ErrValidation, "Email %s is already registered", email)
		}
		linked, err := repos.Candidates.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if linked != nil {
			return nil, domain.Errorf(domain.ErrValidation, "Candidate with email %s already exists", email)
		}
		return user, nil
	}
	if password == "" {
		password = auth.RandomPassword()
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user = &entity.User{Email: email, PasswordHash: hash, Role: entity.RoleCandidate, IsActive: true}
	user.StampCreated(actor.ActorID(), now)
	if err := repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID obtiene un candidato por ID.
func (uc *CandidateUseCase) GetByID(ctx context.Context, id int64) (*dto.CandidateResponse, error) {
	var candidate *entity.Candidate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		candidate, err = mustCandidate(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entityToCandidateResponse(candidate), nil
}

// List lista candidatos en orden de inserción.
func (uc *CandidateUseCase) List(ctx context.Context, page repository.Page) (*dto.CandidateListResponse, error) {
	var list []*entity.Candidate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Candidates.List(ctx, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CandidateResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCandidateResponse(c))
	}
	return &dto.CandidateListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update reemplaza los campos presentes. Un cambio de email se replica en la cuenta.
func (uc *CandidateUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateCandidateRequest) (*dto.CandidateResponse, error) {
	if err := authorize(actor, policy.Update, policy.Candidate); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var candidate *entity.Candidate
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		candidate, err = mustCandidate(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Email != nil {
			email := auth.NormalizeEmail(*in.Email)
			if email != candidate.Email {
				if err := uc.changeEmail(ctx, repos, actor, candidate, email, now); err != nil {
					return err
				}
			}
		}
		setString(&candidate.FirstName, in.FirstName)
		setString(&candidate.LastName, in.LastName)
		setString(&candidate.Phone, in.Phone)
		setString(&candidate.ResumeURL, in.ResumeURL)
		setString(&candidate.LinkedinURL, in.LinkedinURL)
		setString(&candidate.Skills, in.Skills)
		setString(&candidate.CurrentCompany, in.CurrentCompany)
		setString(&candidate.CurrentPosition, in.CurrentPosition)
		setString(&candidate.Education, in.Education)
		setString(&candidate.Notes, in.Notes)
		if in.ExperienceYears != nil {
			candidate.ExperienceYears = *in.ExperienceYears
		}
		if in.AvailableFrom != nil {
			candidate.AvailableFrom = in.AvailableFrom
		}
		candidate.StampUpdated(actor.ActorID(), now)
		return repos.Candidates.Update(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("candidate_id", id).Msg("candidato actualizado")
	return entityToCandidateResponse(candidate), nil
}

func (uc *CandidateUseCase) changeEmail(ctx context.Context, repos repository.Repositories, actor *entity.User, c *entity.Candidate, email string, now time.Time) error {
	other, err := repos.Candidates.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != c.ID {
		return domain.Errorf(domain.ErrValidation, "Candidate with email %s already exists", email)
	}
	taken, err := repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken != nil && taken.ID != c.UserID {
		return domain.Errorf(domain.ErrValidation, "Email %s is already registered", email)
	}
	owner, err := repos.Users.GetByID(ctx, c.UserID)
	if err != nil {
		return err
	}
	if owner != nil {
		owner.Email = email
		owner.StampUpdated(actor.ActorID(), now)
		if err := repos.Users.Update(ctx, owner); err != nil {
			return err
		}
	}
	c.Email = email
	return nil
}

// Delete elimina el perfil (y sus postulaciones en cascada). La cuenta de usuario se conserva.
func (uc *CandidateUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := authorize(actor, policy.Delete, policy.Candidate); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := mustCandidate(ctx, repos, id); err != nil {
			return err
		}
		return repos.Candidates.Delete(ctx, id)
	})
}

func mustCandidate(ctx context.Context, repos repository.Repositories, id int64) (*entity.Candidate, error) {
	c, err := repos.Candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("Candidate")
	}
	return c, nil
}

func entityToCandidateResponse(c *entity.Candidate) *dto.CandidateResponse {
	return &dto.CandidateResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		ResumeURL:       c.ResumeURL,
		LinkedinURL:     c.LinkedinURL,
		Skills:          c.Skills,
		ExperienceYears: c.ExperienceYears,
		CurrentCompany:  c.CurrentCompany,
		CurrentPosition: c.CurrentPosition,
		Education:       c.Education,
		AvailableFrom:   c.AvailableFrom,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
