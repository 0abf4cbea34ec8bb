package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// WorkspaceService resolves workspaces for authenticated callers. It serves
// both the HTTP auth middleware and the websocket token validator.
type WorkspaceService struct {
	workspaceRepo domain.WorkspaceRepository
	userRepo      domain.UserRepository
}

// NewWorkspaceService creates a new WorkspaceService
func NewWorkspaceService(workspaceRepo domain.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo}
}

// SetUserRepository enables provisioning: unknown subjects get a user and an
// empty workspace on their first request
func (s *WorkspaceService) SetUserRepository(userRepo domain.UserRepository) {
	s.userRepo = userRepo
}

// GetWorkspaceByAuth0ID returns the workspace ID owned by an Auth0 subject
func (s *WorkspaceService) GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	if auth0ID == "" {
		return 0, domain.ErrUnauthorized
	}

	workspace, err := s.workspaceRepo.GetByUserAuth0ID(ctx, auth0ID)
	if err == nil {
		return workspace.ID, nil
	}
	if !errors.Is(err, domain.ErrWorkspaceNotFound) || s.userRepo == nil {
		return 0, err
	}

	workspace, err = s.provision(ctx, auth0ID)
	if err != nil {
		return 0, err
	}
	return workspace.ID, nil
}

func (s *WorkspaceService) provision(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	user, err := s.userRepo.CreateOrGetByAuth0ID(ctx, auth0ID, "")
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	workspace, err := s.workspaceRepo.CreateForUser(ctx, user.ID, domain.DefaultWorkspaceName)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default workspace")
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Int32("workspace_id", workspace.ID).Msg("Created new user with default workspace")
	return workspace, nil
}
