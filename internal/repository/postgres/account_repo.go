package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountSelect = `
	SELECT a.id, a.workspace_id, a.name, a.balance, a.sort_index, a.created_at, a.updated_at,
	       c.id, c.ticker, c.name, c.units
	FROM accounts a
	JOIN currencies c ON c.id = a.currency_id
`

// GetAllByWorkspace retrieves all accounts of a workspace with their operations
func (r *AccountRepository) GetAllByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, accountSelect+` WHERE a.workspace_id = $1 ORDER BY a.sort_index, a.id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	byID := make(map[string]*domain.Account)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
		byID[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	opRows, err := r.pool.Query(ctx, `
		SELECT o.id, o.account_id, o.hash, o.type, o.value, o.fee, o.date
		FROM operations o
		JOIN accounts a ON a.id = o.account_id
		WHERE a.workspace_id = $1
		ORDER BY o.date DESC, o.id
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer opRows.Close()

	for opRows.Next() {
		op, err := scanOperation(opRows)
		if err != nil {
			return nil, err
		}
		if account, ok := byID[op.AccountID]; ok {
			account.Operations = append(account.Operations, op)
		}
	}
	if err := opRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return accounts, nil
}

// GetByID retrieves one account of a workspace with its operations
func (r *AccountRepository) GetByID(ctx context.Context, workspaceID int32, id string) (*domain.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, accountSelect+` WHERE a.workspace_id = $1 AND a.id = $2`, workspaceID, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, hash, type, value, fee, date
		FROM operations
		WHERE account_id = $1
		ORDER BY date DESC, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		account.Operations = append(account.Operations, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account := &domain.Account{}
	var balance pgtype.Numeric
	err := row.Scan(
		&account.ID,
		&account.WorkspaceID,
		&account.Name,
		&balance,
		&account.Index,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.Currency.ID,
		&account.Currency.Ticker,
		&account.Currency.Name,
		&account.Currency.Units,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	account.Balance = pgNumericToDecimal(balance)
	return account, nil
}

func scanOperation(row pgx.Row) (domain.Operation, error) {
	var op domain.Operation
	var opType string
	var value, fee pgtype.Numeric
	if err := row.Scan(&op.ID, &op.AccountID, &op.Hash, &opType, &value, &fee, &op.Date); err != nil {
		return domain.Operation{}, fmt.Errorf("failed to scan operation: %w", err)
	}
	op.Type = domain.OperationType(opType)
	op.Value = pgNumericToDecimal(value)
	op.Fee = pgNumericToDecimal(fee)
	return op, nil
}
