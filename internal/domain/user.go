package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an Auth0 subject that owns a workspace
type User struct {
	ID        uuid.UUID `json:"id"`
	Auth0ID   string    `json:"auth0Id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string) (*User, error)
}
