package memory

import (
	"context"
	"sort"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type PixKeyRepository struct {
	store *Store
}

func NewPixKeyRepository(store *Store) *PixKeyRepository {
	return &PixKeyRepository{store: store}
}

func (r *PixKeyRepository) Create(_ context.Context, key domain.PixKey) (domain.PixKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if key.Status == domain.PixKeyStatusActive && r.activeValueExists(key.KeyValue, "") {
		return domain.PixKey{}, domain.ErrPixKeyTaken
	}

	key.ID = r.store.nextID("pix")
	key.CreatedAt = r.store.now()
	r.store.pixKeys[key.ID] = key
	return key, nil
}

func (r *PixKeyRepository) GetActiveByValue(_ context.Context, keyValue string) (domain.PixKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, key := range r.store.pixKeys {
		if key.KeyValue == keyValue && key.Status == domain.PixKeyStatusActive {
			return key, nil
		}
	}
	return domain.PixKey{}, domain.ErrRecordNotFound
}

func (r *PixKeyRepository) ListByUserID(_ context.Context, userID string) ([]domain.PixKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	keys := make([]domain.PixKey, 0)
	for _, key := range r.store.pixKeys {
		if key.UserID == userID {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CreatedAt.Before(keys[j].CreatedAt) })
	return keys, nil
}

func (r *PixKeyRepository) UpdateStatus(_ context.Context, keyID string, userID string, status domain.PixKeyStatus) (domain.PixKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key, ok := r.store.pixKeys[keyID]
	if !ok || key.UserID != userID {
		return domain.PixKey{}, domain.ErrRecordNotFound
	}

	if status == domain.PixKeyStatusActive && r.activeValueExists(key.KeyValue, keyID) {
		return domain.PixKey{}, domain.ErrPixKeyTaken
	}

	key.Status = status
	r.store.pixKeys[keyID] = key
	return key, nil
}

func (r *PixKeyRepository) Delete(_ context.Context, keyID string, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key, ok := r.store.pixKeys[keyID]
	if !ok || key.UserID != userID {
		return domain.ErrRecordNotFound
	}
	delete(r.store.pixKeys, keyID)
	return nil
}

func (r *PixKeyRepository) GetPrimaryByUserID(ctx context.Context, userID string) (domain.PixKey, error) {
	keys, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return domain.PixKey{}, err
	}

	preferences := []domain.PixKeyType{domain.PixKeyTypeCPF, domain.PixKeyTypeRandom}
	for _, preferred := range preferences {
		for _, key := range keys {
			if key.Status == domain.PixKeyStatusActive && key.KeyType == preferred {
				return key, nil
			}
		}
	}
	for _, key := range keys {
		if key.Status == domain.PixKeyStatusActive {
			return key, nil
		}
	}
	return domain.PixKey{}, domain.ErrRecordNotFound
}

// activeValueExists assumes the store lock is held.
func (r *PixKeyRepository) activeValueExists(keyValue string, excludeID string) bool {
	for _, key := range r.store.pixKeys {
		if key.ID != excludeID && key.KeyValue == keyValue && key.Status == domain.PixKeyStatusActive {
			return true
		}
	}
	return false
}
