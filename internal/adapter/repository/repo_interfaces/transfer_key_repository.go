package repo_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type TransferKeyRepository interface {
	Create(ctx context.Context, key domain.TransferKey) (domain.TransferKey, error)
	// GetByKey returns the details of an unexpired key together with the
	// requesting user's display name. Used keys are still returned as long as
	// they have not expired; callers must inspect IsUsed.
	GetByKey(ctx context.Context, key string) (domain.TransferKeyDetails, error)
	// MarkUsed idempotently flags the key as consumed.
	MarkUsed(ctx context.Context, key string) error
}
