package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

type TransferKeyRepository struct {
	db *sql.DB
}

func NewTransferKeyRepository(db *sql.DB) *TransferKeyRepository {
	return &TransferKeyRepository{db: db}
}

func (r *TransferKeyRepository) Create(ctx context.Context, key domain.TransferKey) (domain.TransferKey, error) {
	logger.Info("transfer key repository create", logger.Fields{
		"userId": key.UserID,
		"amount": key.Amount,
	})

	const query = `
INSERT INTO transfer_keys (key, user_id, amount, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		key.Key,
		key.UserID,
		key.Amount,
		key.ExpiresAt,
	).Scan(&key.CreatedAt); err != nil {
		logger.Error("transfer key repository create failed", err, logger.Fields{
			"userId": key.UserID,
		})
		return domain.TransferKey{}, fmt.Errorf("create transfer key: %w", err)
	}

	return key, nil
}

// GetByKey intentionally filters on expiry only; a used key still reads back
// so callers can show "already used" instead of "not found".
func (r *TransferKeyRepository) GetByKey(ctx context.Context, key string) (domain.TransferKeyDetails, error) {
	const query = `
SELECT tk.amount, tk.is_used, u.id, u.full_name
FROM transfer_keys tk
JOIN users u ON u.id = tk.user_id
WHERE tk.key = $1
  AND tk.expires_at > NOW()`

	var details domain.TransferKeyDetails
	if err := r.db.QueryRowContext(ctx, query, key).Scan(
		&details.Amount,
		&details.IsUsed,
		&details.RecipientID,
		&details.RecipientName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TransferKeyDetails{}, domain.ErrRecordNotFound
		}
		logger.Error("transfer key repository get failed", err, nil)
		return domain.TransferKeyDetails{}, fmt.Errorf("get transfer key: %w", err)
	}

	return details, nil
}

func (r *TransferKeyRepository) MarkUsed(ctx context.Context, key string) error {
	const query = `UPDATE transfer_keys SET is_used = TRUE WHERE key = $1`

	result, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		logger.Error("transfer key repository mark used failed", err, nil)
		return fmt.Errorf("mark transfer key used: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark transfer key used rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
