package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, username)
		VALUES ($1, $2)
		RETURNING created_at
	`, u.ID, u.Username)

	if err := row.Scan(&u.CreatedAt); err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return repository.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) ([]entity.User, error) {
	if !validUUID(id) {
		return []entity.User{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id::text, username, created_at
		FROM users
		WHERE user_id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return collectUsers(rows)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id::text, username, created_at
		FROM users
		WHERE username = $1
	`, username)
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]entity.User, error) {
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
		var u entity.User
		err := row.Scan(&u.ID, &u.Username, &u.CreatedAt)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
