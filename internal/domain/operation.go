package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OperationType string

const (
	OperationTypeIn   OperationType = "IN"
	OperationTypeOut  OperationType = "OUT"
	OperationTypeFees OperationType = "FEES"
)

// Operation is a single transaction record of an account. Value is always a
// non-negative magnitude in the account currency; the direction comes from Type.
type Operation struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Hash      string          `json:"hash"`
	Type      OperationType   `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Fee       decimal.Decimal `json:"fee"`
	Date      time.Time       `json:"date"`
}

// Delta returns the signed effect of the operation on the account balance
func (o Operation) Delta() decimal.Decimal {
	if o.Type == OperationTypeIn {
		return o.Value
	}
	return o.Value.Neg()
}
