package service

import (
	"context"
	"sort"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
)

// AccountService handles account-related business logic
type AccountService struct {
	accountRepo domain.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccounts retrieves all accounts for a workspace
func (s *AccountService) GetAccounts(ctx context.Context, workspaceID int32) ([]*domain.Account, error) {
	return s.accountRepo.GetAllByWorkspace(ctx, workspaceID)
}

// GetAccountByID retrieves an account by ID within a workspace, with its
// operations newest first. The repository value is not modified.
func (s *AccountService) GetAccountByID(ctx context.Context, workspaceID int32, id string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	result := *account
	result.Operations = make([]domain.Operation, len(account.Operations))
	copy(result.Operations, account.Operations)
	sort.SliceStable(result.Operations, func(i, j int) bool {
		return result.Operations[i].Date.After(result.Operations[j].Date)
	})
	return &result, nil
}
