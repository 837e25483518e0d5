package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, role, is_active, ` + auditColumns

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado → domain.ErrIntegrity.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
		INSERT INTO users (email, password_hash, role, is_active, created_at, updated_at, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, string(u.Role), u.IsActive,
		u.CreatedAt, u.UpdatedAt, u.CreatedByID, u.UpdatedByID,
	).Scan(&u.ID)
	if err != nil {
		return wrapErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (ya normalizado).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// Update actualiza email, hash, rol y estado.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	const query = `
		UPDATE users
		   SET email = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6, updated_by_id = $7
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.IsActive, u.UpdatedAt, u.UpdatedByID,
	)
	if err != nil {
		return wrapErr("update user", err)
	}
	return nil
}

// List lista usuarios en orden de inserción.
func (r *UserRepo) List(ctx context.Context, page repository.Page) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	return collect(rows, "scan user", scanUser)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		role string
	)
	dest := append([]any{&u.ID, &u.Email, &u.PasswordHash, &role, &u.IsActive}, auditDest(&u.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
