package repo_interfaces

import (
	"context"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	// PostTransaction applies one deposit or withdrawal as a single atomic
	// unit: lock the account row, check funds for a debit, move the balance
	// and append the ledger entry. Returns domain.ErrRecordNotFound when the
	// account does not belong to userID and domain.ErrInsufficientBalance when
	// a debit exceeds the balance; in both cases nothing is applied.
	PostTransaction(ctx context.Context, accountID string, userID string, txType domain.TransactionType, amount decimal.Decimal, description string) (domain.Transaction, error)

	// PostPixTransfer runs the whole alias-transfer posting atomically and
	// returns the recipient-side credit entry. A sender debit is never
	// observable without its matching recipient credit.
	PostPixTransfer(ctx context.Context, posting domain.PixTransferPosting) (domain.Transaction, error)

	ListByAccountID(ctx context.Context, accountID string, ascending bool) ([]domain.Transaction, error)
	// ListRecentByUserID returns the newest entries across every account the
	// user owns.
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
	// ListFrom returns every entry created at or after since, newest first.
	// The statement reconstruction walks this backwards to derive historical
	// balances.
	ListFrom(ctx context.Context, accountID string, since time.Time) ([]domain.Transaction, error)
	CountInRange(ctx context.Context, accountID string, start time.Time, end time.Time, txType *domain.TransactionType) (int64, error)
	// ListInRange returns entries with start <= created_at < end ascending,
	// optionally filtered by type, one page at a time.
	ListInRange(ctx context.Context, accountID string, start time.Time, end time.Time, txType *domain.TransactionType, limit int, offset int) ([]domain.Transaction, error)
}
