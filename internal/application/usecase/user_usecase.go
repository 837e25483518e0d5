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

// UserUseCase administración de cuentas (solo ADMIN).
type UserUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(tx ports.TxRunner, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{tx: tx, log: log}
}

// Create da de alta una cuenta con el rol indicado.
func (uc *UserUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := authorize(actor, policy.Create, policy.User); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Email:        auth.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         entity.Role(in.Role),
		IsActive:     true,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.StampCreated(actor.ActorID(), time.Now().UTC())

	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Errorf(domain.ErrValidation, "Email %s is already registered", user.Email)
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Int64("actor_id", actor.ID).Msg("usuario creado")
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, actor *entity.User, id int64) (*dto.UserResponse, error) {
	if err := authorize(actor, policy.Read, policy.User); err != nil {
		return nil, err
	}
	var user *entity.User
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = mustUser(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista cuentas en orden de inserción.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User, page repository.Page) (*dto.UserListResponse, error) {
	if err := authorize(actor, policy.Read, policy.User); err != nil {
		return nil, err
	}
	var list []*entity.User
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Users.List(ctx, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update cambia rol, estado o contraseña. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := authorize(actor, policy.Update, policy.User); err != nil {
		return nil, err
	}
	if id == actor.ID && in.IsActive != nil && !*in.IsActive {
		return nil, domain.Errorf(domain.ErrValidation, "Admins cannot deactivate their own account")
	}
	var user *entity.User
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = mustUser(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Role != nil {
			user.Role = entity.Role(*in.Role)
		}
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		if in.Password != nil {
			hash, err := auth.HashPassword(*in.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		user.StampUpdated(actor.ActorID(), time.Now().UTC())
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("usuario actualizado")
	return auth.ToUserResponse(user), nil
}

func mustUser(ctx context.Context, repos repository.Repositories, id int64) (*entity.User, error) {
	user, err := repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User")
	}
	return user, nil
}
