package memory

import (
	"context"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) CreateWithAccount(_ context.Context, user domain.User, account domain.Account) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	user.ID = r.store.nextID("usr")
	user.CreatedAt = r.store.now()
	r.store.users[user.ID] = user

	account.ID = r.store.nextID("acc")
	account.UserID = user.ID
	account.CreatedAt = r.store.now()
	r.store.accounts[account.ID] = account

	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, fullName *string, phone *string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	if fullName != nil {
		user.FullName = *fullName
	}
	if phone != nil {
		user.Phone = phone
	}
	r.store.users[id] = user
	return user, nil
}
