package repo_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	// GetByID returns the account only when it belongs to userID;
	// domain.ErrRecordNotFound otherwise.
	GetByID(ctx context.Context, accountID string, userID string) (domain.Account, error)
	// ListByUserID returns the user's accounts oldest first.
	ListByUserID(ctx context.Context, userID string) ([]domain.Account, error)
	// GetPrimaryByUserID returns the user's oldest account, which by
	// convention is the primary one for balances and pix transfers.
	GetPrimaryByUserID(ctx context.Context, userID string) (domain.Account, error)
}
