package pg

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"

	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

var _ ports.IUserRepository = (*UserRepo)(nil)

// uniqueViolation — код ошибки PostgreSQL для нарушения UNIQUE.
const uniqueViolation = "23505"

// UserRepo реализует ports.IUserRepository для PostgreSQL.
type UserRepo struct {
	db  *DB
	log *slog.Logger
}

// NewUserRepo возвращает репозиторий пользователей.
func NewUserRepo(db *DB, log *slog.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// CreateUser сохраняет нового пользователя. Занятый email — domain.ErrUserExists.
func (r *UserRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		r.log.Debug("CreateUser failed", "error", err)
		return mapUniqueErr(err)
	}
	return nil
}

// GetUserByID ищет пользователя по ID.
func (r *UserRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByEmail ищет пользователя по email (хранится в нижнем регистре).
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		r.log.Debug("get user failed", "error", err)
		return nil, err
	}
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
	return &u, nil
}

// UpdateUser обновляет имя, email и updated_at.
func (r *UserRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2, email = $3, updated_at = $4 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.UpdatedAt)
	if err != nil {
		r.log.Debug("UpdateUser failed", "error", err)
		return mapUniqueErr(err)
	}
	return requireAffected(res)
}

// DeleteUser удаляет пользователя; его операции удаляются каскадом.
func (r *UserRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.log.Debug("DeleteUser failed", "error", err)
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func mapUniqueErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrUserExists
	}
	return err
}
