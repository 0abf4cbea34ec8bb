package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/dafibh/fortuna/portfolio-backend/internal/portfolio"
	"github.com/dafibh/fortuna/portfolio-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Path       string              `json:"path"`
	Index      int                 `json:"index"`
	Currency   CurrencyResponse    `json:"currency"`
	Balance    string              `json:"balance"`
	Operations []OperationResponse `json:"operations"`
}

// GetAccount godoc
// @Summary Get an account
// @Description Get one account with its operations, newest first
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} AccountResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id := c.Param("id")
	account, err := h.accountService.GetAccountByID(c.Request().Context(), workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("account_id", id).Msg("Failed to get account")
		return NewInternalError(c, "Failed to get account")
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// GetAccounts godoc
// @Summary List accounts
// @Description List the workspace accounts in user order, without operations
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AccountResponse
// @Failure 401 {object} ProblemDetails
// @Router /accounts [get]
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	accounts, err := h.accountService.GetAccounts(c.Request().Context(), workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get accounts")
		return NewInternalError(c, "Failed to get accounts")
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toAccountResponse(account)
		response[i].Operations = []OperationResponse{}
	}
	return c.JSON(http.StatusOK, response)
}

func toAccountResponse(a *domain.Account) AccountResponse {
	ops := make([]OperationResponse, len(a.Operations))
	for i, op := range a.Operations {
		ops[i] = toOperationResponse(op, a.Currency.Units)
	}
	return AccountResponse{
		ID:         a.ID,
		Name:       a.Name,
		Path:       portfolio.AccountPath(a.ID),
		Index:      a.Index,
		Currency:   toCurrencyResponse(a.Currency),
		Balance:    a.Balance.StringFixed(a.Currency.Units),
		Operations: ops,
	}
}
