package service_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
)

type TransactionService interface {
	CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, accountID string, userID string) (commons.Response[[]models.TransactionResponse], error)
	GetRecent(ctx context.Context, userID string, limit int) (commons.Response[[]models.TransactionResponse], error)
}
