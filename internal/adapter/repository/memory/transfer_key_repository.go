package memory

import (
	"context"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type TransferKeyRepository struct {
	store *Store
}

func NewTransferKeyRepository(store *Store) *TransferKeyRepository {
	return &TransferKeyRepository{store: store}
}

func (r *TransferKeyRepository) Create(_ context.Context, key domain.TransferKey) (domain.TransferKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key.CreatedAt = r.store.now()
	r.store.transferKeys[key.Key] = key
	return key, nil
}

func (r *TransferKeyRepository) GetByKey(_ context.Context, key string) (domain.TransferKeyDetails, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.transferKeys[key]
	if !ok || !stored.ExpiresAt.After(time.Now().UTC()) {
		return domain.TransferKeyDetails{}, domain.ErrRecordNotFound
	}

	details := domain.TransferKeyDetails{
		Amount:      stored.Amount,
		IsUsed:      stored.IsUsed,
		RecipientID: stored.UserID,
	}
	if owner, ok := r.store.users[stored.UserID]; ok {
		details.RecipientName = owner.FullName
	}
	return details, nil
}

func (r *TransferKeyRepository) MarkUsed(_ context.Context, key string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.transferKeys[key]
	if !ok {
		return domain.ErrRecordNotFound
	}
	stored.IsUsed = true
	r.store.transferKeys[key] = stored
	return nil
}
