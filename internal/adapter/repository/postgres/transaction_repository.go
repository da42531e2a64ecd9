package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) PostTransaction(ctx context.Context, accountID string, userID string, txType domain.TransactionType, amount decimal.Decimal, description string) (domain.Transaction, error) {
	logger.Info("transaction repository post transaction", logger.Fields{
		"accountId": accountID,
		"type":      txType,
		"amount":    amount,
	})

	if !txType.Valid() {
		return domain.Transaction{}, fmt.Errorf("transaction type must be credit or debit")
	}
	if !amount.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("transaction amount must be greater than zero")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin posting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	balance, err := lockAccountForUpdate(ctx, tx, accountID, userID)
	if err != nil {
		return domain.Transaction{}, err
	}

	delta := amount
	if txType == domain.TransactionTypeDebit {
		if amount.GreaterThan(balance) {
			err = domain.ErrInsufficientBalance
			return domain.Transaction{}, err
		}
		delta = amount.Neg()
	}

	if err = applyBalanceDelta(ctx, tx, accountID, delta); err != nil {
		return domain.Transaction{}, err
	}

	record, err := appendTransaction(ctx, tx, accountID, txType, amount, description)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Transaction{}, fmt.Errorf("commit posting transaction: %w", err)
	}

	logger.Info("transaction repository post transaction success", logger.Fields{
		"transactionId": record.ID,
		"accountId":     accountID,
	})
	return record, nil
}

func (r *TransactionRepository) PostPixTransfer(ctx context.Context, posting domain.PixTransferPosting) (domain.Transaction, error) {
	logger.Info("transaction repository post pix transfer", logger.Fields{
		"senderAccountId":    posting.SenderAccountID,
		"recipientAccountId": posting.RecipientAccountID,
		"amount":             posting.Amount,
	})

	if !posting.Amount.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("transfer amount must be greater than zero")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin pix tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin pix transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Both rows are locked in canonical id order so two opposite transfers
	// between the same pair of accounts cannot deadlock. Debit-before-credit
	// stays the logical order below.
	senderBalance, err := lockTransferAccounts(ctx, tx, posting)
	if err != nil {
		return domain.Transaction{}, err
	}

	if posting.Amount.GreaterThan(senderBalance) {
		err = domain.ErrInsufficientBalance
		return domain.Transaction{}, err
	}

	if err = applyBalanceDelta(ctx, tx, posting.SenderAccountID, posting.Amount.Neg()); err != nil {
		return domain.Transaction{}, err
	}
	if _, err = appendTransaction(ctx, tx, posting.SenderAccountID, domain.TransactionTypeDebit, posting.Amount, posting.DebitDescription); err != nil {
		return domain.Transaction{}, err
	}

	if err = applyBalanceDelta(ctx, tx, posting.RecipientAccountID, posting.Amount); err != nil {
		return domain.Transaction{}, err
	}

	var creditRecord domain.Transaction
	creditRecord, err = appendTransaction(ctx, tx, posting.RecipientAccountID, domain.TransactionTypeCredit, posting.Amount, posting.CreditDescription)
	if err != nil {
		return domain.Transaction{}, err
	}

	if posting.TransferKey != "" {
		if err = consumeTransferKey(ctx, tx, posting.TransferKey); err != nil {
			return domain.Transaction{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit pix tx failed", err, logger.Fields{
			"senderAccountId": posting.SenderAccountID,
		})
		return domain.Transaction{}, fmt.Errorf("commit pix transfer transaction: %w", err)
	}

	logger.Info("transaction repository post pix transfer success", logger.Fields{
		"senderAccountId":    posting.SenderAccountID,
		"recipientAccountId": posting.RecipientAccountID,
		"creditTransaction":  creditRecord.ID,
	})
	return creditRecord, nil
}

// lockTransferAccounts locks sender and recipient in canonical order and
// returns the sender's balance as of the lock. The sender lock also verifies
// ownership.
func lockTransferAccounts(ctx context.Context, tx *sql.Tx, posting domain.PixTransferPosting) (decimal.Decimal, error) {
	lockSender := func() (decimal.Decimal, error) {
		return lockAccountForUpdate(ctx, tx, posting.SenderAccountID, posting.SenderUserID)
	}
	lockRecipient := func() (decimal.Decimal, error) {
		return lockAccountByID(ctx, tx, posting.RecipientAccountID)
	}

	if posting.SenderAccountID <= posting.RecipientAccountID {
		senderBalance, err := lockSender()
		if err != nil {
			return decimal.Zero, err
		}
		if posting.SenderAccountID != posting.RecipientAccountID {
			if _, err := lockRecipient(); err != nil {
				return decimal.Zero, err
			}
		}
		return senderBalance, nil
	}

	if _, err := lockRecipient(); err != nil {
		return decimal.Zero, err
	}
	return lockSender()
}

// consumeTransferKey is the hard stop against double spending a payment
// request: the conditional update only matches an unused, unexpired key.
func consumeTransferKey(ctx context.Context, tx *sql.Tx, key string) error {
	const query = `
UPDATE transfer_keys
SET is_used = TRUE
WHERE key = $1
  AND is_used = FALSE
  AND expires_at > NOW()`

	result, err := tx.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("consume transfer key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume transfer key rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrTransferKeyInvalid
	}

	return nil
}

func appendTransaction(ctx context.Context, tx *sql.Tx, accountID string, txType domain.TransactionType, amount decimal.Decimal, description string) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (account_id, type, amount, description)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	record := domain.Transaction{
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: description,
	}
	if err := tx.QueryRowContext(ctx, query, accountID, txType, amount, description).Scan(&record.ID, &record.CreatedAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("append transaction record: %w", err)
	}

	return record, nil
}

const transactionColumns = `id, account_id, type, amount, description, created_at`

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string, ascending bool) ([]domain.Transaction, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`
SELECT %s
FROM transactions
WHERE account_id = $1
ORDER BY created_at %s`, transactionColumns, direction)

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transaction repository list by account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions by account: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	const query = `
SELECT t.id, t.account_id, t.type, t.amount, t.description, t.created_at
FROM transactions t
JOIN accounts a ON a.id = t.account_id
WHERE a.user_id = $1
ORDER BY t.created_at DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		logger.Error("transaction repository list recent failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) ListFrom(ctx context.Context, accountID string, since time.Time) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM transactions
WHERE account_id = $1
  AND created_at >= $2
ORDER BY created_at DESC`, transactionColumns)

	rows, err := r.db.QueryContext(ctx, query, accountID, since)
	if err != nil {
		logger.Error("transaction repository list from failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions from: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) CountInRange(ctx context.Context, accountID string, start time.Time, end time.Time, txType *domain.TransactionType) (int64, error) {
	const query = `
SELECT COUNT(1)
FROM transactions
WHERE account_id = $1
  AND created_at >= $2
  AND created_at < $3
  AND ($4::text IS NULL OR type = $4)`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, accountID, start, end, typeFilter(txType)).Scan(&count); err != nil {
		logger.Error("transaction repository count in range failed", err, logger.Fields{
			"accountId": accountID,
		})
		return 0, fmt.Errorf("count transactions in range: %w", err)
	}

	return count, nil
}

func (r *TransactionRepository) ListInRange(ctx context.Context, accountID string, start time.Time, end time.Time, txType *domain.TransactionType, limit int, offset int) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM transactions
WHERE account_id = $1
  AND created_at >= $2
  AND created_at < $3
  AND ($4::text IS NULL OR type = $4)
ORDER BY created_at ASC
LIMIT $5 OFFSET $6`, transactionColumns)

	rows, err := r.db.QueryContext(ctx, query, accountID, start, end, typeFilter(txType), limit, offset)
	if err != nil {
		logger.Error("transaction repository list in range failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions in range: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func typeFilter(txType *domain.TransactionType) sql.NullString {
	if txType == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*txType), Valid: true}
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var record domain.Transaction
		var description sql.NullString
		if err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&record.Type,
			&record.Amount,
			&description,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		record.Description = description.String
		transactions = append(transactions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return transactions, nil
}
