package models

import (
	"errors"
	"strings"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (r CreateTransactionRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "account_id is required")
	}
	if !domain.TransactionType(strings.TrimSpace(r.Type)).Valid() {
		errs = append(errs, "type must be credit or debit")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionResponse struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func NewTransactionResponse(record domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          record.ID,
		AccountID:   record.AccountID,
		Type:        string(record.Type),
		Amount:      record.Amount.StringFixed(2),
		Description: record.Description,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
}

func NewTransactionResponses(records []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewTransactionResponse(record))
	}
	return out
}
