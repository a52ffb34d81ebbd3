package postgres

import (
	"context"

	"github.com/26nm/careerpath/internal/database"
	"github.com/26nm/careerpath/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Email, u.PasswordHash,
	)
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET email = $2, password_hash = $3, updated_at = now() WHERE id = $1`,
		u.ID, u.Email, u.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
