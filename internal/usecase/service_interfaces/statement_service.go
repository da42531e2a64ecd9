package service_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
)

type StatementService interface {
	GetStatement(ctx context.Context, userID string, query models.StatementQuery) (commons.Response[models.StatementResponse], error)
}
