package service_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
)

type PixService interface {
	CreateKey(ctx context.Context, userID string, req models.CreatePixKeyRequest) (commons.Response[models.PixKeyResponse], error)
	ListKeys(ctx context.Context, userID string) (commons.Response[[]models.PixKeyResponse], error)
	UpdateKeyStatus(ctx context.Context, keyID string, userID string, req models.UpdatePixKeyStatusRequest) (commons.Response[models.PixKeyResponse], error)
	DeleteKey(ctx context.Context, keyID string, userID string) (commons.Response[struct{}], error)
	GetKeyDetails(ctx context.Context, keyValue string) (commons.Response[models.PixKeyDetailsResponse], error)
	GetPrimaryKey(ctx context.Context, userID string) (commons.Response[models.PixKeyResponse], error)
	CreatePixTransfer(ctx context.Context, userID string, req models.PixTransferRequest) (commons.Response[models.TransactionResponse], error)
}
