package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

type PixKeyRepository struct {
	db *sql.DB
}

func NewPixKeyRepository(db *sql.DB) *PixKeyRepository {
	return &PixKeyRepository{db: db}
}

const pixKeyColumns = `id, user_id, key_type, key_value, status, created_at`

func (r *PixKeyRepository) Create(ctx context.Context, key domain.PixKey) (domain.PixKey, error) {
	logger.Info("pix key repository create", logger.Fields{
		"userId":  key.UserID,
		"keyType": key.KeyType,
	})

	const query = `
INSERT INTO pix_keys (user_id, key_type, key_value, status)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	if key.Status == "" {
		key.Status = domain.PixKeyStatusActive
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		key.UserID,
		key.KeyType,
		key.KeyValue,
		key.Status,
	).Scan(&key.ID, &key.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.PixKey{}, domain.ErrPixKeyTaken
		}
		logger.Error("pix key repository create failed", err, logger.Fields{
			"userId": key.UserID,
		})
		return domain.PixKey{}, fmt.Errorf("create pix key: %w", err)
	}

	return key, nil
}

func (r *PixKeyRepository) GetActiveByValue(ctx context.Context, keyValue string) (domain.PixKey, error) {
	const query = `
SELECT id, user_id, key_type, key_value, status, created_at
FROM pix_keys
WHERE key_value = $1 AND status = 'active'`

	key, err := r.scanOne(r.db.QueryRowContext(ctx, query, keyValue))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.PixKey{}, err
		}
		logger.Error("pix key repository get active by value failed", err, nil)
		return domain.PixKey{}, fmt.Errorf("get active pix key by value: %w", err)
	}

	return key, nil
}

func (r *PixKeyRepository) ListByUserID(ctx context.Context, userID string) ([]domain.PixKey, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM pix_keys
WHERE user_id = $1
ORDER BY created_at ASC`, pixKeyColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("pix key repository list by user failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, fmt.Errorf("list pix keys by user: %w", err)
	}
	defer rows.Close()

	keys := make([]domain.PixKey, 0)
	for rows.Next() {
		var key domain.PixKey
		if err := rows.Scan(
			&key.ID,
			&key.UserID,
			&key.KeyType,
			&key.KeyValue,
			&key.Status,
			&key.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pix key row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pix key rows: %w", err)
	}

	return keys, nil
}

func (r *PixKeyRepository) UpdateStatus(ctx context.Context, keyID string, userID string, status domain.PixKeyStatus) (domain.PixKey, error) {
	logger.Info("pix key repository update status", logger.Fields{
		"keyId":  keyID,
		"status": status,
	})

	const query = `
UPDATE pix_keys
SET status = $3
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, key_type, key_value, status, created_at`

	key, err := r.scanOne(r.db.QueryRowContext(ctx, query, keyID, userID, status))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.PixKey{}, err
		}
		if isUniqueViolation(err) {
			// Re-activating a key whose value was registered again elsewhere.
			return domain.PixKey{}, domain.ErrPixKeyTaken
		}
		logger.Error("pix key repository update status failed", err, logger.Fields{
			"keyId": keyID,
		})
		return domain.PixKey{}, fmt.Errorf("update pix key status: %w", err)
	}

	return key, nil
}

func (r *PixKeyRepository) Delete(ctx context.Context, keyID string, userID string) error {
	logger.Info("pix key repository delete", logger.Fields{
		"keyId": keyID,
	})

	const query = `DELETE FROM pix_keys WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, keyID, userID)
	if err != nil {
		logger.Error("pix key repository delete failed", err, logger.Fields{
			"keyId": keyID,
		})
		return fmt.Errorf("delete pix key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pix key rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *PixKeyRepository) GetPrimaryByUserID(ctx context.Context, userID string) (domain.PixKey, error) {
	// Preference order: active cpf key, then active random key, then any
	// active key.
	queries := []string{
		`SELECT ` + pixKeyColumns + ` FROM pix_keys WHERE user_id = $1 AND status = 'active' AND key_type = 'cpf' ORDER BY created_at ASC LIMIT 1`,
		`SELECT ` + pixKeyColumns + ` FROM pix_keys WHERE user_id = $1 AND status = 'active' AND key_type = 'random' ORDER BY created_at ASC LIMIT 1`,
		`SELECT ` + pixKeyColumns + ` FROM pix_keys WHERE user_id = $1 AND status = 'active' ORDER BY created_at ASC LIMIT 1`,
	}

	for _, query := range queries {
		key, err := r.scanOne(r.db.QueryRowContext(ctx, query, userID))
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.Error("pix key repository get primary failed", err, logger.Fields{
				"userId": userID,
			})
			return domain.PixKey{}, fmt.Errorf("get primary pix key: %w", err)
		}
	}

	return domain.PixKey{}, domain.ErrRecordNotFound
}

func (r *PixKeyRepository) scanOne(row *sql.Row) (domain.PixKey, error) {
	var key domain.PixKey
	if err := row.Scan(
		&key.ID,
		&key.UserID,
		&key.KeyType,
		&key.KeyValue,
		&key.Status,
		&key.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PixKey{}, domain.ErrRecordNotFound
		}
		return domain.PixKey{}, err
	}

	return key, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
