package repo_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type PixKeyRepository interface {
	// Create persists a new key. domain.ErrPixKeyTaken is returned when
	// another active key already holds the same value.
	Create(ctx context.Context, key domain.PixKey) (domain.PixKey, error)
	// GetActiveByValue resolves an alias value; inactive keys never resolve.
	GetActiveByValue(ctx context.Context, keyValue string) (domain.PixKey, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.PixKey, error)
	UpdateStatus(ctx context.Context, keyID string, userID string, status domain.PixKeyStatus) (domain.PixKey, error)
	Delete(ctx context.Context, keyID string, userID string) error
	// GetPrimaryByUserID picks "the" key of a user who has several: an active
	// cpf key, else an active random key, else any active key.
	GetPrimaryByUserID(ctx context.Context, userID string) (domain.PixKey, error)
}
