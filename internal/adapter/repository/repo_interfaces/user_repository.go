package repo_interfaces

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type UserRepository interface {
	// CreateWithAccount registers the user and provisions their default
	// checking account in one transaction. domain.ErrEmailTaken is returned
	// when the email is already registered.
	CreateWithAccount(ctx context.Context, user domain.User, account domain.Account) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	// UpdateProfile changes only the fields passed non-nil.
	UpdateProfile(ctx context.Context, id string, fullName *string, phone *string) (domain.User, error)
}
