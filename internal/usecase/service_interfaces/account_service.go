package service_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
)

type AccountService interface {
	ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID string, userID string) (commons.Response[models.AccountResponse], error)
	GetBalance(ctx context.Context, userID string) (commons.Response[models.BalanceResponse], error)
}
