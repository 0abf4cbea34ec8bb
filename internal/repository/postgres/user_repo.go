package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateOrGetByAuth0ID inserts the user if missing and returns the stored row
func (r *UserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string) (*domain.User, error) {
	query := `
		INSERT INTO users (auth0_id, email)
		VALUES ($1, $2)
		ON CONFLICT (auth0_id) DO UPDATE
		SET email = CASE WHEN EXCLUDED.email = '' THEN users.email ELSE EXCLUDED.email END
		RETURNING id, auth0_id, email, created_at
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, auth0ID, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Auth0ID, &u.Email, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
