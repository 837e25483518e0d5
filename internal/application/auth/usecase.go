package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
	"github.com/jhoicas/recruitment-api/pkg/jwt"
)

// dummyHash se compara cuando el usuario no existe para igualar el tiempo de respuesta.
var dummyHash, _ = HashPassword("recruitment-api-timing")

// AuthUseCase casos de uso de autenticación: login, resolución del token y registro público.
type AuthUseCase struct {
	tx     ports.TxRunner
	jwtCfg jwt.Config
	log    zerolog.Logger
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx ports.TxRunner, jwtCfg jwt.Config, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		tx:     tx,
		jwtCfg: jwtCfg,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate verifica email/password. Un usuario inactivo sí se autentica;
// el rechazo ocurre al resolver el token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	var user *entity.User
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users.GetByEmail(ctx, NormalizeEmail(email))
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		CheckPassword(dummyHash, password)
		return nil, domain.Errorf(domain.ErrInvalidCredentials, "Incorrect username or password")
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, domain.Errorf(domain.ErrInvalidCredentials, "Incorrect username or password")
	}
	return user, nil
}

// IssueToken firma el token de acceso del usuario.
func (uc *AuthUseCase) IssueToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg, user.Email, string(user.Role), uc.now())
}

// Login flujo password de OAuth2: credenciales → token bearer.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		uc.log.Warn().Str("email", NormalizeEmail(in.Username)).Msg("login rechazado")
		return nil, err
	}
	token, err := uc.IssueToken(user)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("token emitido")
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// ResolveCurrentUser valida el token y carga el usuario que nombra su subject.
// Token inválido o usuario inexistente → ErrUnauthenticated; usuario inactivo → ErrInactiveAccount.
func (uc *AuthUseCase) ResolveCurrentUser(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.Parse(uc.jwtCfg, token)
	if err != nil {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "Could not validate credentials")
	}
	var user *entity.User
	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users.GetByEmail(ctx, claims.Subject)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "Could not validate credentials")
	}
	if !user.IsActive {
		return nil, domain.Errorf(domain.ErrInactiveAccount, "Inactive user")
	}
	return user, nil
}

// Register autorregistro: crea la cuenta CANDIDATE y su perfil en la misma transacción.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{Email: email, PasswordHash: hash, Role: entity.RoleCandidate, IsActive: true}

	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Errorf(domain.ErrValidation, "Email %s is already registered", email)
		}
		taken, err := repos.Candidates.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken != nil {
			return domain.Errorf(domain.ErrValidation, "Candidate with email %s already exists", email)
		}
		user.StampCreated(nil, now)
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		candidate := &entity.Candidate{
			UserID:    user.ID,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     email,
			Phone:     in.Phone,
		}
		candidate.StampCreated(user.ActorID(), now)
		return repos.Candidates.Create(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("candidato registrado")
	return ToUserResponse(user), nil
}

// BootstrapAdmin crea el administrador inicial si no hay un usuario con ese email.
// Devuelve true si lo creó.
func (uc *AuthUseCase) BootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	email = NormalizeEmail(email)
	created := false
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users.GetByEmail(ctx, email)
		if err != nil || existing != nil {
			return err
		}
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		admin := &entity.User{Email: email, PasswordHash: hash, Role: entity.RoleAdmin, IsActive: true}
		admin.StampCreated(nil, uc.now())
		if err := repos.Users.Create(ctx, admin); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrIntegrity) {
		return false, err
	}
	if created {
		uc.log.Info().Str("email", email).Msg("administrador inicial creado")
	}
	return created, nil
}

// ToUserResponse mapea la cuenta sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
