package models

import (
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type AccountResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	CreatedAt   string `json:"created_at"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		UserID:      account.UserID,
		AccountType: string(account.AccountType),
		Balance:     account.Balance.StringFixed(2),
		CreatedAt:   account.CreatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}
