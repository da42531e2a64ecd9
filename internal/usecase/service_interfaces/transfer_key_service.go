package service_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
)

type TransferKeyService interface {
	Create(ctx context.Context, userID string, req models.CreateTransferKeyRequest) (commons.Response[models.CreateTransferKeyResponse], error)
	Get(ctx context.Context, key string) (commons.Response[models.TransferKeyDetailsResponse], error)
}
