package memory

import "github.com/mockqv/Lumina-Bank/internal/domain"

// Seed helpers bypass the repository contracts so tests can install exact
// fixtures, including historical timestamps.

func (s *Store) SeedUser(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = s.nextID("usr")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	s.users[user.ID] = user
	return user
}

func (s *Store) SeedAccount(account domain.Account) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account.ID == "" {
		account.ID = s.nextID("acc")
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = s.now()
	}
	s.accounts[account.ID] = account
	return account
}

func (s *Store) SeedTransaction(record domain.Transaction) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = s.nextID("txn")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}
	s.transactions = append(s.transactions, record)
	return record
}

func (s *Store) SeedPixKey(key domain.PixKey) domain.PixKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key.ID == "" {
		key.ID = s.nextID("pix")
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = s.now()
	}
	s.pixKeys[key.ID] = key
	return key
}

func (s *Store) SeedTransferKey(key domain.TransferKey) domain.TransferKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key.CreatedAt.IsZero() {
		key.CreatedAt = s.now()
	}
	s.transferKeys[key.Key] = key
	return key
}

// Account returns the current stored account, for balance assertions.
func (s *Store) Account(accountID string) (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	return account, ok
}

// TransferKey returns the current stored transfer key.
func (s *Store) TransferKey(key string) (domain.TransferKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.transferKeys[key]
	return stored, ok
}
