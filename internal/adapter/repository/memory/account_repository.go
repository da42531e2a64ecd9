package memory

import (
	"context"
	"sort"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account.ID = r.store.nextID("acc")
	account.CreatedAt = r.store.now()
	r.store.accounts[account.ID] = account
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string, userID string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok || account.UserID != userID {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) ListByUserID(_ context.Context, userID string) ([]domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, account := range r.store.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].CreatedAt.Before(accounts[j].CreatedAt) })
	return accounts, nil
}

func (r *AccountRepository) GetPrimaryByUserID(ctx context.Context, userID string) (domain.Account, error) {
	accounts, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return domain.Account{}, err
	}
	if len(accounts) == 0 {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return accounts[0], nil
}
