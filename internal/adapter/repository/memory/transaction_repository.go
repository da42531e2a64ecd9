package memory

import (
	"context"
	"sort"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) PostTransaction(_ context.Context, accountID string, userID string, txType domain.TransactionType, amount decimal.Decimal, description string) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok || account.UserID != userID {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}

	if txType == domain.TransactionTypeDebit && account.Balance.LessThan(amount) {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	return r.apply(account, txType, amount, description), nil
}

func (r *TransactionRepository) PostPixTransfer(_ context.Context, posting domain.PixTransferPosting) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sender, ok := r.store.accounts[posting.SenderAccountID]
	if !ok || sender.UserID != posting.SenderUserID {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	recipient, ok := r.store.accounts[posting.RecipientAccountID]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}

	if sender.Balance.LessThan(posting.Amount) {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	if posting.TransferKey != "" {
		key, ok := r.store.transferKeys[posting.TransferKey]
		if !ok || key.IsUsed || !key.ExpiresAt.After(time.Now().UTC()) {
			return domain.Transaction{}, domain.ErrTransferKeyInvalid
		}
		key.IsUsed = true
		r.store.transferKeys[posting.TransferKey] = key
	}

	r.apply(sender, domain.TransactionTypeDebit, posting.Amount, posting.DebitDescription)
	credit := r.apply(recipient, domain.TransactionTypeCredit, posting.Amount, posting.CreditDescription)
	return credit, nil
}

// apply assumes the store lock is held and the funds check already passed.
func (r *TransactionRepository) apply(account domain.Account, txType domain.TransactionType, amount decimal.Decimal, description string) domain.Transaction {
	if txType == domain.TransactionTypeCredit {
		account.Balance = account.Balance.Add(amount)
	} else {
		account.Balance = account.Balance.Sub(amount)
	}
	r.store.accounts[account.ID] = account

	record := domain.Transaction{
		ID:          r.store.nextID("txn"),
		AccountID:   account.ID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   r.store.now(),
	}
	r.store.transactions = append(r.store.transactions, record)
	return record
}

func (r *TransactionRepository) ListByAccountID(_ context.Context, accountID string, ascending bool) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records := r.filter(func(record domain.Transaction) bool { return record.AccountID == accountID })
	sortByTime(records, ascending)
	return records, nil
}

func (r *TransactionRepository) ListRecentByUserID(_ context.Context, userID string, limit int) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records := r.filter(func(record domain.Transaction) bool {
		account, ok := r.store.accounts[record.AccountID]
		return ok && account.UserID == userID
	})
	sortByTime(records, false)
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *TransactionRepository) ListFrom(_ context.Context, accountID string, since time.Time) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records := r.filter(func(record domain.Transaction) bool {
		return record.AccountID == accountID && !record.CreatedAt.Before(since)
	})
	sortByTime(records, false)
	return records, nil
}

func (r *TransactionRepository) CountInRange(ctx context.Context, accountID string, start time.Time, end time.Time, txType *domain.TransactionType) (int64, error) {
	records, err := r.ListInRange(ctx, accountID, start, end, txType, 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

func (r *TransactionRepository) ListInRange(_ context.Context, accountID string, start time.Time, end time.Time, txType *domain.TransactionType, limit int, offset int) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records := r.filter(func(record domain.Transaction) bool {
		if record.AccountID != accountID {
			return false
		}
		if record.CreatedAt.Before(start) || !record.CreatedAt.Before(end) {
			return false
		}
		return txType == nil || record.Type == *txType
	})
	sortByTime(records, true)

	if offset >= len(records) {
		return []domain.Transaction{}, nil
	}
	records = records[offset:]
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *TransactionRepository) filter(keep func(domain.Transaction) bool) []domain.Transaction {
	records := make([]domain.Transaction, 0)
	for _, record := range r.store.transactions {
		if keep(record) {
			records = append(records, record)
		}
	}
	return records
}

func sortByTime(records []domain.Transaction, ascending bool) {
	sort.Slice(records, func(i, j int) bool {
		if ascending {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
