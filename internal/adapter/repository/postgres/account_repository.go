package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"userId":      account.UserID,
		"accountType": account.AccountType,
	})

	const query = `
INSERT INTO accounts (user_id, account_type, balance)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.UserID,
		account.AccountType,
		account.Balance,
	).Scan(&account.ID, &account.CreatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"userId": account.UserID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string, userID string) (domain.Account, error) {
	const query = `
SELECT id, user_id, account_type, balance, created_at
FROM accounts
WHERE id = $1 AND user_id = $2`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, accountID, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.AccountType,
		&account.Balance,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get by id failed", err, logger.Fields{
			"accountId": accountID,
			"userId":    userID,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	const query = `
SELECT id, user_id, account_type, balance, created_at
FROM accounts
WHERE user_id = $1
ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("account repository list by user failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, fmt.Errorf("list accounts by user: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.AccountType,
			&account.Balance,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) GetPrimaryByUserID(ctx context.Context, userID string) (domain.Account, error) {
	// The oldest account is the primary one by convention.
	const query = `
SELECT id, user_id, account_type, balance, created_at
FROM accounts
WHERE user_id = $1
ORDER BY created_at ASC
LIMIT 1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.AccountType,
		&account.Balance,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get primary failed", err, logger.Fields{
			"userId": userID,
		})
		return domain.Account{}, fmt.Errorf("get primary account: %w", err)
	}

	return account, nil
}

// lockAccountForUpdate takes an exclusive row lock on the account, verifying
// ownership, and returns the balance as of the lock. The lock is held until
// the surrounding transaction commits or rolls back.
func lockAccountForUpdate(ctx context.Context, tx *sql.Tx, accountID string, userID string) (decimal.Decimal, error) {
	const query = `
SELECT balance
FROM accounts
WHERE id = $1 AND user_id = $2
FOR UPDATE`

	var balance decimal.Decimal
	if err := tx.QueryRowContext(ctx, query, accountID, userID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrRecordNotFound
		}
		return decimal.Zero, fmt.Errorf("lock account for update: %w", err)
	}

	return balance, nil
}

// lockAccountByID is the ownerless variant used for the credit side of a pix
// transfer, where the recipient account was already resolved.
func lockAccountByID(ctx context.Context, tx *sql.Tx, accountID string) (decimal.Decimal, error) {
	const query = `
SELECT balance
FROM accounts
WHERE id = $1
FOR UPDATE`

	var balance decimal.Decimal
	if err := tx.QueryRowContext(ctx, query, accountID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrRecordNotFound
		}
		return decimal.Zero, fmt.Errorf("lock account for update: %w", err)
	}

	return balance, nil
}

// applyBalanceDelta must only be called while holding the row lock from a
// matching lockAccountForUpdate/lockAccountByID in the same transaction.
// Overdraft checks are the caller's responsibility.
func applyBalanceDelta(ctx context.Context, tx *sql.Tx, accountID string, delta decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric
WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, accountID, delta)
	if err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply balance delta rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
